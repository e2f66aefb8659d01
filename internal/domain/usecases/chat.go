// chat.go holds the conversational retrieval orchestrator.
package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
	"github.com/sanhariharan/Chat-With-Csv/internal/domain/ports"
)

// ChatUseCase answers one query grounded in the indexed rows: embed the
// query, retrieve the top-K rows, compose a prompt carrying retrieved
// context plus the prior turns, generate. It never mutates history - the
// caller appends the completed turn, which keeps this free of hidden state.
type ChatUseCase struct {
	embedder ports.EmbeddingService
	index    ports.VectorIndex
	llm      ports.LLMService
	topK     int
	genOpts  entities.GenerationOptions
}

// NewChatUseCase creates a ChatUseCase with injected dependencies.
func NewChatUseCase(
	embedder ports.EmbeddingService,
	index ports.VectorIndex,
	llm ports.LLMService,
	topK int,
	genOpts entities.GenerationOptions,
) *ChatUseCase {
	if topK <= 0 {
		topK = 4
	}
	return &ChatUseCase{
		embedder: embedder,
		index:    index,
		llm:      llm,
		topK:     topK,
		genOpts:  genOpts,
	}
}

// Answer runs one retrieval-augmented turn and returns the model's answer
// as-is. Any step failure wraps into an OrchestratorError; no retry, no
// partial answer.
func (uc *ChatUseCase) Answer(ctx context.Context, query string, history []entities.Turn) (string, error) {
	queryEmbedding, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return "", &entities.OrchestratorError{Query: query, Err: fmt.Errorf("embedding query: %w", err)}
	}

	results, err := uc.index.Search(ctx, queryEmbedding, uc.topK)
	if err != nil {
		return "", &entities.OrchestratorError{Query: query, Err: fmt.Errorf("searching index: %w", err)}
	}

	prompt := uc.buildPrompt(query, history, results)

	answer, err := uc.llm.Generate(ctx, prompt, uc.genOpts)
	if err != nil {
		return "", &entities.OrchestratorError{Query: query, Err: fmt.Errorf("generating answer: %w", err)}
	}

	return answer, nil
}

// buildPrompt composes retrieved rows, chronological history and the new
// question into a single prompt.
func (uc *ChatUseCase) buildPrompt(query string, history []entities.Turn, results []entities.ScoredDocument) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful assistant. Answer the question using the CSV rows below.\n\n")
	sb.WriteString("Context:\n")
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[Source: %s, row %s]\n%s",
			r.Doc.Metadata["source"], r.Doc.Metadata["row"], r.Doc.Text))
	}
	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		for _, t := range history {
			sb.WriteString("User: ")
			sb.WriteString(t.Query)
			sb.WriteString("\nAssistant: ")
			sb.WriteString(t.Answer)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
