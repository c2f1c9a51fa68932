package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerkit/companion/internal/config"
)

func TestNewGatewayRequiresAProvider(t *testing.T) {
	_, err := NewGateway(context.Background(), config.LLMConfig{DefaultProvider: "gemini"})
	assert.Error(t, err)
}

func TestNewGatewayRequiresDefaultProvider(t *testing.T) {
	_, err := NewGateway(context.Background(), config.LLMConfig{
		OpenAIKey:       "sk-test",
		DefaultProvider: "gemini",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini")
}

func TestNewGatewayWithOpenAIDefault(t *testing.T) {
	g, err := NewGateway(context.Background(), config.LLMConfig{
		OpenAIKey:       "sk-test",
		AnthropicKey:    "sk-ant-test",
		DefaultProvider: "openai",
		DefaultModel:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", g.Model())
	assert.NotEmpty(t, g.ListModels())
}

func TestGenerateWrapsProviderError(t *testing.T) {
	g := &gateway{
		providers:       map[string]Provider{"stub": failingProvider{}},
		defaultProvider: "stub",
		model:           "stub-model",
	}

	_, err := g.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModel)
}

type failingProvider struct{}

func (failingProvider) Generate(context.Context, GenerateRequest) (*GenerateResponse, error) {
	return nil, assert.AnError
}

func (failingProvider) Name() string     { return "stub" }
func (failingProvider) Models() []string { return nil }
