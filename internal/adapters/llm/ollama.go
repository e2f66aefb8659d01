// Package llm provides the Ollama LLM adapter.
// Adapter implementing ports.LLMService.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sanhariharan/Chat-With-Csv/internal/domain/entities"
	"github.com/sanhariharan/Chat-With-Csv/pkg/log"
)

// OllamaLLMAdapter implements ports.LLMService using the Ollama API. The
// model weights live on local disk under Ollama's management; CheckModel
// confirms they are loadable before any chat is offered.
type OllamaLLMAdapter struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewOllamaLLMAdapter creates a new Ollama LLM adapter.
func NewOllamaLLMAdapter(baseURL, model string) *OllamaLLMAdapter {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama2:7b-chat"
	}
	return &OllamaLLMAdapter{
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: 300 * time.Second, // inference latency is unbounded
		},
	}
}

// ollamaGenerateRequest is the Ollama generate API request.
type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

// ollamaOptions carries generation parameters.
type ollamaOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float64 `json:"temperature"`
}

// ollamaGenerateResponse is the Ollama generate API response.
type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate produces an answer for the prompt. Blocking; generation stops at
// or before the configured token bound.
func (a *OllamaLLMAdapter) Generate(ctx context.Context, prompt string, opts entities.GenerationOptions) (string, error) {
	reqBody := ollamaGenerateRequest{
		Model:  a.model,
		Prompt: prompt,
		Stream: false,
		Options: ollamaOptions{
			NumPredict:  opts.MaxNewTokens,
			Temperature: opts.Temperature,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/api/generate", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var genResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	log.Infof("generated %d chars in %v", len(genResp.Response), time.Since(start))
	return genResp.Response, nil
}

// ollamaShowRequest is the Ollama show API request.
type ollamaShowRequest struct {
	Model string `json:"model"`
}

// CheckModel verifies the model is present in the local Ollama store.
// A failure here is a ModelLoadError: fatal, chat cannot work without it.
func (a *OllamaLLMAdapter) CheckModel(ctx context.Context) error {
	jsonData, err := json.Marshal(ollamaShowRequest{Model: a.model})
	if err != nil {
		return &entities.ModelLoadError{Model: a.model, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.baseURL+"/api/show", bytes.NewReader(jsonData))
	if err != nil {
		return &entities.ModelLoadError{Model: a.model, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return &entities.ModelLoadError{Model: a.model, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &entities.ModelLoadError{
			Model: a.model,
			Err:   fmt.Errorf("model not available, Ollama returned status %d", resp.StatusCode),
		}
	}
	return nil
}
