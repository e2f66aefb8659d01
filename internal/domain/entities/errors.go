package entities

import "fmt"

// The error types below form the failure taxonomy of the application.
// Each wraps its underlying cause so callers can use errors.As to decide
// whether a failure is retryable (bad file, bad turn) or fatal (no model).

// IngestError reports a file that could not be parsed into row documents.
type IngestError struct {
	Name string // uploaded file name
	Err  error
}

func (e *IngestError) Error() string {
	return fmt.Sprintf("ingesting %q: %v", e.Name, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// EmbeddingError reports an unavailable or misbehaving embedding model.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// IndexBuildError reports an empty or inconsistent document set.
type IndexBuildError struct {
	Err error
}

func (e *IndexBuildError) Error() string {
	return fmt.Sprintf("building index: %v", e.Err)
}

func (e *IndexBuildError) Unwrap() error { return e.Err }

// ModelLoadError reports missing or unloadable language model weights.
// Fatal for the whole session: no chat is possible without a model.
type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("loading model %q: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error { return e.Err }

// OrchestratorError wraps any failure during a single chat turn. Prior
// history and the index remain valid; the user may retry.
type OrchestratorError struct {
	Query string
	Err   error
}

func (e *OrchestratorError) Error() string {
	return fmt.Sprintf("answering %q: %v", e.Query, e.Err)
}

func (e *OrchestratorError) Unwrap() error { return e.Err }
