// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not concrete implementations;
// adapters implement them.
package ports

import (
	"context"
	"io"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
)

// DocumentIngestor turns an uploaded byte stream into row documents.
type DocumentIngestor interface {
	// Ingest parses the stream and returns one document per data row,
	// header excluded. name identifies the source in document metadata.
	Ingest(ctx context.Context, name string, r io.Reader) ([]entities.Document, error)
}

// EmbeddingService generates vector embeddings for text.
// Deterministic for a fixed model: the same text yields the same vector.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex supports bulk construction, similarity search and snapshot
// persistence. Build replaces any previous contents: the index is rebuilt
// from scratch on every upload, never merged.
type VectorIndex interface {
	// Build constructs the index from entries. Fails on empty input or
	// dimensionality mismatch across entries.
	Build(ctx context.Context, entries []entities.IndexEntry) error

	// Search returns the min(k, Len) most similar documents, best first.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredDocument, error)

	// Save snapshots the index under dir, replacing any prior snapshot.
	// The on-disk format is opaque to callers.
	Save(ctx context.Context, dir string) error

	// Load restores the index from a snapshot written by Save.
	Load(ctx context.Context, dir string) error

	// Len reports the number of indexed entries.
	Len() int
}

// LLMService generates text responses from a language model.
type LLMService interface {
	// Generate produces an answer for the prompt, honoring the options'
	// token bound and sampling temperature.
	Generate(ctx context.Context, prompt string, opts entities.GenerationOptions) (string, error)

	// CheckModel verifies the model weights are loadable. Called once at
	// startup; failure means no chat is possible at all.
	CheckModel(ctx context.Context) error
}

// FileWatcher monitors a directory for dropped-in files.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits created/modified
	// file paths until ctx is done.
	Watch(ctx context.Context, dir string) (<-chan string, error)

	// Stop stops the watcher.
	Stop() error
}
