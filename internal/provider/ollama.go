package provider

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const defaultOllamaModel = "llama3.2"

// OllamaCompleter implements Completer against a local Ollama server.
type OllamaCompleter struct {
	llm   *ollama.LLM
	model string
}

// OllamaOption configures an OllamaCompleter.
type OllamaOption func(*ollamaSettings)

type ollamaSettings struct {
	serverURL string
	model     string
}

// WithServerURL sets a custom Ollama server URL.
func WithServerURL(url string) OllamaOption {
	return func(s *ollamaSettings) { s.serverURL = url }
}

// WithOllamaModel sets the model name.
func WithOllamaModel(model string) OllamaOption {
	return func(s *ollamaSettings) { s.model = model }
}

// NewOllama creates an Ollama-backed completer.
func NewOllama(opts ...OllamaOption) (*OllamaCompleter, error) {
	settings := ollamaSettings{model: defaultOllamaModel}
	for _, opt := range opts {
		opt(&settings)
	}

	llmOpts := []ollama.Option{ollama.WithModel(settings.model)}
	if settings.serverURL != "" {
		llmOpts = append(llmOpts, ollama.WithServerURL(settings.serverURL))
	}

	llm, err := ollama.New(llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}
	return &OllamaCompleter{llm: llm, model: settings.model}, nil
}

func (p *OllamaCompleter) Name() string { return "ollama" }

// Model returns the configured model name.
func (p *OllamaCompleter) Model() string { return p.model }

func (p *OllamaCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	callOpts := []llms.CallOption{llms.WithTemperature(0)}
	if len(req.Stop) > 0 {
		callOpts = append(callOpts, llms.WithStopWords(req.Stop))
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, p.llm, req.Prompt, callOpts...)
	if err != nil {
		return "", fmt.Errorf("ollama complete: %w: %v", ErrUnavailable, err)
	}

	// Ollama honors stop words, but truncate anyway: the loop's contract
	// is that no stop sequence survives into the returned text.
	return truncateAtStop(out, req.Stop), nil
}

// Embeddings exposes the underlying client for embedding construction
// (the retrieval scenario embeds documents with the same model).
func (p *OllamaCompleter) Embeddings() *ollama.LLM { return p.llm }
