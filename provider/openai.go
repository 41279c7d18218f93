package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/transly"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates with an OpenAI-compatible chat completion API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.3)
	BaseURL     string  // Custom base URL for compatible servers (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Name implements transly.Named.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Translate implements transly.Provider.
func (p *OpenAIProvider) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt(sourceLang, targetLang)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &transly.ProviderError{
			Message:    "OpenAI API call failed",
			Cause:      err,
			StatusCode: statusCode(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &transly.ProviderError{Message: "no response from OpenAI"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildSystemPrompt(sourceLang, targetLang string) string {
	return fmt.Sprintf(`You are a professional translator. Translate the user's message from %s to %s.
- Reply with the translation only: no quotes, notes or explanations.
- Keep placeholders (e.g., {name}, %%s, $1), URLs and email addresses unchanged.
- Preserve line breaks and meaningful whitespace.`,
		transly.GetLanguageName(sourceLang), transly.GetLanguageName(targetLang))
}

func statusCode(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

var (
	_ Provider      = (*OpenAIProvider)(nil)
	_ transly.Named = (*OpenAIProvider)(nil)
)
