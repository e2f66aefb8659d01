// Command chat-with-csv serves the chat-with-your-CSV web UI on a local port.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanhariharan/Chat-With-Csv/internal/adapters/embedding"
	"github.com/sanhariharan/Chat-With-Csv/internal/adapters/filewatcher"
	"github.com/sanhariharan/Chat-With-Csv/internal/adapters/ingest"
	"github.com/sanhariharan/Chat-With-Csv/internal/adapters/llm"
	"github.com/sanhariharan/Chat-With-Csv/internal/adapters/vectorindex"
	"github.com/sanhariharan/Chat-With-Csv/internal/config"
	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
	"github.com/sanhariharan/Chat-With-Csv/internal/domain/usecases"
	httpserver "github.com/sanhariharan/Chat-With-Csv/internal/infrastructure/http"
	"github.com/sanhariharan/Chat-With-Csv/pkg/log"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("loading configuration", err)
	}

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Adapters.
	ingestor := ingest.NewCSVIngestor()
	embedder := embedding.NewOllamaAdapter(cfg.Ollama.BaseURL, cfg.Ollama.EmbedModel)
	model := llm.NewOllamaLLMAdapter(cfg.Ollama.BaseURL, cfg.Ollama.Model)
	index := vectorindex.NewIndex()

	// No model, no chat. Refuse to start rather than fail on the first turn.
	if err := model.CheckModel(ctx); err != nil {
		log.Fatal("language model unavailable", err)
	}

	// Usecases.
	ingestUC := usecases.NewIngestUseCase(ingestor, embedder, index, cfg.Index.Dir)
	chatUC := usecases.NewChatUseCase(embedder, index, model, cfg.Index.TopK, entities.GenerationOptions{
		MaxNewTokens: cfg.Ollama.MaxNewTokens,
		Temperature:  cfg.Ollama.Temperature,
	})
	sessions := usecases.NewSessionManager(ingestUC, chatUC)

	// Pick up an index snapshot left by a previous run.
	if session, err := sessions.Restore(ctx); err != nil {
		log.Warnf("could not restore index snapshot: %v", err)
	} else if session.State != entities.StateEmpty {
		log.Infof("restored index snapshot with %d entries", session.DocCount)
	}

	if cfg.Watch.Enabled {
		go watchForCSVs(ctx, cfg.Watch.Dir, sessions)
	}

	server := httpserver.NewServer(sessions, cfg.Server.Port, cfg.Server.Mode)
	if err := server.Start(ctx); err != nil {
		log.Fatal("http server failed", err)
	}
	log.Info("server stopped")
}

// watchForCSVs ingests CSV files dropped into the watched directory through
// the same upload path the UI uses.
func watchForCSVs(ctx context.Context, dir string, sessions *usecases.SessionManager) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Warnf("could not create watch directory %s: %v", dir, err)
		return
	}

	watcher, err := filewatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		log.Warnf("file watcher unavailable: %v", err)
		return
	}
	defer watcher.Stop()

	paths, err := watcher.Watch(ctx, dir)
	if err != nil {
		log.Warnf("could not watch %s: %v", dir, err)
		return
	}
	log.Infof("watching %s for CSV files", dir)

	for path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Warnf("could not open %s: %v", path, err)
			continue
		}
		session, err := sessions.Upload(ctx, path, f)
		f.Close()
		if err != nil {
			log.Error("drop-in ingestion failed", err)
			continue
		}
		log.Infof("ingested %s: %d rows indexed", path, session.DocCount)
	}
}
