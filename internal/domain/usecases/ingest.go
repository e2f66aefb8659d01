// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only.
package usecases

import (
	"context"
	"errors"
	"io"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
	"github.com/sanhariharan/Chat-With-Csv/internal/domain/ports"
)

// IngestUseCase turns an uploaded file into a built and persisted vector
// index: parse rows, embed them, rebuild the index, snapshot it to disk.
type IngestUseCase struct {
	ingestor ports.DocumentIngestor
	embedder ports.EmbeddingService
	index    ports.VectorIndex
	indexDir string
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
func NewIngestUseCase(
	ingestor ports.DocumentIngestor,
	embedder ports.EmbeddingService,
	index ports.VectorIndex,
	indexDir string,
) *IngestUseCase {
	return &IngestUseCase{
		ingestor: ingestor,
		embedder: embedder,
		index:    index,
		indexDir: indexDir,
	}
}

// Ingest runs the full upload pipeline and returns the number of indexed
// documents. The index is rebuilt from scratch; a prior snapshot at the
// configured directory is overwritten.
func (uc *IngestUseCase) Ingest(ctx context.Context, name string, r io.Reader) (int, error) {
	docs, err := uc.ingestor.Ingest(ctx, name, r)
	if err != nil {
		return 0, &entities.IngestError{Name: name, Err: err}
	}
	if len(docs) == 0 {
		return 0, &entities.IndexBuildError{Err: errors.New("no data rows in file")}
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	vectors, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return 0, &entities.EmbeddingError{Err: err}
	}

	entries := make([]entities.IndexEntry, len(docs))
	for i := range docs {
		entries[i] = entities.IndexEntry{Vector: vectors[i], Doc: docs[i]}
	}

	if err := uc.index.Build(ctx, entries); err != nil {
		return 0, &entities.IndexBuildError{Err: err}
	}
	if err := uc.index.Save(ctx, uc.indexDir); err != nil {
		return 0, &entities.IndexBuildError{Err: err}
	}

	return len(docs), nil
}

// Restore loads a previously persisted snapshot, if one exists, and returns
// the number of restored entries. A missing snapshot is not an error.
func (uc *IngestUseCase) Restore(ctx context.Context) (int, error) {
	if err := uc.index.Load(ctx, uc.indexDir); err != nil {
		return 0, err
	}
	return uc.index.Len(), nil
}
