package llm

import (
	"context"
	"errors"
)

// ErrModel wraps any provider failure. Generation errors are always
// surfaced to the request layer; there is no retry of the model call.
var ErrModel = errors.New("model generation failed")

// Provider abstracts one generative-model backend (Gemini, OpenAI,
// Anthropic).
type Provider interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Name() string
	Models() []string
}

// GenerateRequest is a single text-in, text-out generation call.
type GenerateRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	TopP        float64
	TopK        int
	MaxTokens   int
}

type GenerateResponse struct {
	Provider  string
	Model     string
	Content   string
	LatencyMs int64
}

// ModelInfo describes an available model.
type ModelInfo struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
}
