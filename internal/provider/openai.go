package provider

import (
	"context"
	"fmt"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompleter implements Completer for any OpenAI-compatible chat API
// (OpenAI, OpenRouter, DeepSeek, Groq, etc.).
type OpenAICompleter struct {
	client *openai.Client
	model  string
}

// OpenAIOption configures an OpenAICompleter.
type OpenAIOption func(*openaiSettings)

type openaiSettings struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// WithBaseURL sets a custom API base URL.
func WithBaseURL(url string) OpenAIOption {
	return func(s *openaiSettings) { s.baseURL = url }
}

// WithModel sets the default model.
func WithModel(model string) OpenAIOption {
	return func(s *openaiSettings) { s.model = model }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(s *openaiSettings) { s.httpClient = c }
}

// NewOpenAI creates a new OpenAI-compatible completer.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAICompleter {
	settings := openaiSettings{model: openai.GPT4o}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg := openai.DefaultConfig(apiKey)
	if settings.baseURL != "" {
		cfg.BaseURL = settings.baseURL
	}
	if settings.httpClient != nil {
		cfg.HTTPClient = settings.httpClient
	}

	return &OpenAICompleter{
		client: openai.NewClientWithConfig(cfg),
		model:  settings.model,
	}
}

func (p *OpenAICompleter) Name() string { return "openai" }

func (p *OpenAICompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Stop: req.Stop,
		// go-openai drops a plain zero through omitempty; the smallest
		// nonzero float still selects greedy-ish sampling.
		Temperature: math.SmallestNonzeroFloat32,
	})
	if err != nil {
		return "", fmt.Errorf("openai complete: %w: %v", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai complete: no choices in response")
	}

	// Some OpenAI-compatible gateways ignore the stop parameter; enforce
	// the truncation contract locally.
	return truncateAtStop(resp.Choices[0].Message.Content, req.Stop), nil
}
