package llm

import (
	"context"
	"fmt"

	"github.com/careerkit/companion/internal/config"
)

// Every generation call is framed with this preamble.
const systemPreamble = "You are a career planning assistant."

// Gateway is the single entry point the guidance layer talks to: one
// prompt in, one response out, provider and generation parameters
// resolved from configuration.
type Gateway interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
	ListModels() []ModelInfo
}

type gateway struct {
	providers       map[string]Provider
	defaultProvider string
	model           string
	temperature     float64
	topP            float64
	topK            int
	maxTokens       int
}

func NewGateway(ctx context.Context, cfg config.LLMConfig) (Gateway, error) {
	g := &gateway{
		providers:       make(map[string]Provider),
		defaultProvider: cfg.DefaultProvider,
		model:           cfg.DefaultModel,
		temperature:     cfg.Temperature,
		topP:            cfg.TopP,
		topK:            cfg.TopK,
		maxTokens:       cfg.MaxTokens,
	}

	if cfg.GeminiKey != "" {
		p, err := NewGeminiProvider(ctx, cfg.GeminiKey)
		if err != nil {
			return nil, fmt.Errorf("init gemini provider: %w", err)
		}
		g.providers["gemini"] = p
	}
	if cfg.OpenAIKey != "" {
		g.providers["openai"] = NewOpenAIProvider(cfg.OpenAIKey)
	}
	if cfg.AnthropicKey != "" {
		g.providers["anthropic"] = NewAnthropicProvider(cfg.AnthropicKey)
	}

	if len(g.providers) == 0 {
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if _, ok := g.providers[g.defaultProvider]; !ok {
		return nil, fmt.Errorf("default provider %q not configured", g.defaultProvider)
	}

	return g, nil
}

func (g *gateway) Generate(ctx context.Context, prompt string) (string, error) {
	p := g.providers[g.defaultProvider]

	resp, err := p.Generate(ctx, GenerateRequest{
		Model:       g.model,
		System:      systemPreamble,
		Prompt:      prompt,
		Temperature: g.temperature,
		TopP:        g.topP,
		TopK:        g.topK,
		MaxTokens:   g.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModel, err)
	}
	return resp.Content, nil
}

func (g *gateway) Model() string {
	return g.model
}

func (g *gateway) ListModels() []ModelInfo {
	var models []ModelInfo
	for _, p := range g.providers {
		for _, m := range p.Models() {
			models = append(models, ModelInfo{Provider: p.Name(), Model: m})
		}
	}
	return models
}
