// Package generate drafts topic content with a chat-completion API.
package generate

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = openai.GPT4

// ErrNoChoices is wrapped by GenerationError when the API answers without
// any completion.
var ErrNoChoices = errors.New("completion returned no choices")

// Generator turns a prompt into Markdown text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a function to Generator.
type Func func(ctx context.Context, prompt string) (string, error)

// Generate implements Generator.
func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// GenerationError reports a failed generation for one topic.
type GenerationError struct {
	Topic string
	Err   error
}

func (e *GenerationError) Error() string {
	if e.Topic == "" {
		return fmt.Sprintf("generate: %v", e.Err)
	}
	return fmt.Sprintf("generate %q: %v", e.Topic, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Options configure the OpenAI client.
type Options struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. "https://api.openai.com/v1".
	BaseURL string
	Model   string
}

// OpenAI sends each prompt as a single user message and returns the first
// choice verbatim. It does not retry.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates a client from opts.
func NewOpenAI(opts Options) *OpenAI {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	return &OpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Model returns the model requested for every completion.
func (g *OpenAI) Model() string { return g.model }

// Generate implements Generator.
func (g *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", &GenerationError{Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Err: ErrNoChoices}
	}
	return resp.Choices[0].Message.Content, nil
}
