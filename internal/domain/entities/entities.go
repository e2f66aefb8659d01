// Package entities contains core business entities.
// These are pure domain objects with no external dependencies.
package entities

// Document is one semantically retrievable unit of text - here, one CSV data
// row rendered as "column: value" lines plus source metadata.
type Document struct {
	Text     string
	Metadata map[string]string
}

// IndexEntry pairs a document with its embedding for index construction.
type IndexEntry struct {
	Vector []float32
	Doc    Document
}

// ScoredDocument is a retrieval result with its similarity to the query.
type ScoredDocument struct {
	Doc   Document
	Score float64
}

// Turn is one completed conversational exchange. Immutable once appended.
type Turn struct {
	Query  string
	Answer string
}

// Transcript holds the parallel render sequences for the chat UI: index i in
// Past and Generated refers to the same exchange.
type Transcript struct {
	Past      []string
	Generated []string
}

// GenerationOptions bound and shape a single LLM generation call.
type GenerationOptions struct {
	MaxNewTokens int
	Temperature  float64
}
