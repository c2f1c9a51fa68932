package track

import (
	"github.com/google/uuid"

	"github.com/careerkit/companion/pkg/tokenizer"
)

// Tags identify the deployment an interaction was recorded from.
type Tags struct {
	Environment   string
	CloudProvider string
	Service       string
}

// Record is one prompt/response exchange. Created once per successful
// model call, never mutated. CreatedAt is assigned by the recording
// backend at persistence time.
type Record struct {
	ID             string `json:"id"`
	Endpoint       string `json:"endpoint"`
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Response       string `json:"response"`
	PromptLength   int    `json:"prompt_length"`
	ResponseLength int    `json:"response_length"`
	PromptTokens   int    `json:"prompt_tokens"`
	ResponseTokens int    `json:"response_tokens"`
	Environment    string `json:"environment"`
	CloudProvider  string `json:"cloud_provider"`
	Service        string `json:"service"`
}

func NewRecord(endpoint, prompt, response, model string, tags Tags) Record {
	return Record{
		ID:             uuid.NewString(),
		Endpoint:       endpoint,
		Model:          model,
		Prompt:         prompt,
		Response:       response,
		PromptLength:   len(prompt),
		ResponseLength: len(response),
		PromptTokens:   tokenizer.Count(prompt),
		ResponseTokens: tokenizer.Count(response),
		Environment:    tags.Environment,
		CloudProvider:  tags.CloudProvider,
		Service:        tags.Service,
	}
}
