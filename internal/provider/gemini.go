package provider

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/okulpanel/rehberlik-api/pkg/config"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient wraps the Google GenAI SDK for document drafting.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a client from config.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig) (*GeminiClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Generate produces text for a single prompt.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &ProviderError{Message: "gemini generate failed", Cause: err}
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return "", &ProviderError{Message: "gemini returned an empty draft"}
	}
	return text, nil
}
