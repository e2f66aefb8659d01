package entities

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")

	cases := []error{
		&IngestError{Name: "f.csv", Err: cause},
		&EmbeddingError{Err: cause},
		&IndexBuildError{Err: cause},
		&ModelLoadError{Model: "m", Err: cause},
		&OrchestratorError{Query: "q", Err: cause},
	}

	for _, err := range cases {
		if !errors.Is(err, cause) {
			t.Errorf("%T should unwrap to its cause", err)
		}
		if err.Error() == "" {
			t.Errorf("%T should have a message", err)
		}
	}
}

func TestOrchestratorError_WrapsFailureTaxonomy(t *testing.T) {
	inner := &EmbeddingError{Err: errors.New("model gone")}
	err := &OrchestratorError{Query: "q", Err: fmt.Errorf("embedding query: %w", inner)}

	var embedErr *EmbeddingError
	if !errors.As(err, &embedErr) {
		t.Error("embedding cause should be reachable through the turn error")
	}
}
