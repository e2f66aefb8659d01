// Package vectorindex provides the similarity-search index.
// Adapter implementing ports.VectorIndex: entries live in memory for
// search, with a SQLite snapshot for persistence across runs.
package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
)

// Index is a brute-force cosine-similarity index. Search scans every entry;
// at CSV-demo scale that beats carrying an ANN library.
type Index struct {
	mu      sync.RWMutex
	dim     int
	entries []entities.IndexEntry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Build replaces the index contents with the given entries. Fails on empty
// input or when entry dimensionalities disagree.
func (ix *Index) Build(ctx context.Context, entries []entities.IndexEntry) error {
	if len(entries) == 0 {
		return errors.New("no entries to index")
	}

	dim := len(entries[0].Vector)
	if dim == 0 {
		return errors.New("zero-length embedding")
	}
	for i, e := range entries {
		if len(e.Vector) != dim {
			return fmt.Errorf("entry %d has dimension %d, want %d", i, len(e.Vector), dim)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.dim = dim
	ix.entries = append([]entities.IndexEntry(nil), entries...)
	return nil
}

// Search returns the min(topK, Len) most similar documents, best first.
func (ix *Index) Search(ctx context.Context, embedding []float32, topK int) ([]entities.ScoredDocument, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.entries) == 0 {
		return nil, errors.New("index is empty")
	}
	if topK <= 0 {
		topK = 4
	}
	if topK > len(ix.entries) {
		topK = len(ix.entries)
	}

	scored := make([]entities.ScoredDocument, len(ix.entries))
	for i, e := range ix.entries {
		scored[i] = entities.ScoredDocument{
			Doc:   e.Doc,
			Score: cosineSimilarity(embedding, e.Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored[:topK], nil
}

// Len reports the number of indexed entries.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
