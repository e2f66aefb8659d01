package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "9090"
ollama:
  model: llama2:13b-chat
  temperature: 0.2
index:
  top_k: 6
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("unexpected port: %s", cfg.Server.Port)
	}
	if cfg.Ollama.Model != "llama2:13b-chat" {
		t.Errorf("unexpected model: %s", cfg.Ollama.Model)
	}
	if cfg.Ollama.Temperature != 0.2 {
		t.Errorf("unexpected temperature: %f", cfg.Ollama.Temperature)
	}
	if cfg.Index.TopK != 6 {
		t.Errorf("unexpected top_k: %d", cfg.Index.TopK)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "server:\n  mode: debug\n"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("port should default to 8080, got %s", cfg.Server.Port)
	}
	if cfg.Ollama.BaseURL != "http://localhost:11434" {
		t.Errorf("unexpected base url: %s", cfg.Ollama.BaseURL)
	}
	if cfg.Ollama.MaxNewTokens != 512 {
		t.Errorf("max_new_tokens should default to 512, got %d", cfg.Ollama.MaxNewTokens)
	}
	if cfg.Ollama.Temperature != 0.5 {
		t.Errorf("temperature should default to 0.5, got %f", cfg.Ollama.Temperature)
	}
	if cfg.Index.Dir != "vectorstore/db" {
		t.Errorf("unexpected index dir: %s", cfg.Index.Dir)
	}
	if cfg.Index.TopK != 4 {
		t.Errorf("top_k should default to 4, got %d", cfg.Index.TopK)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing config file should fail")
	}
}
