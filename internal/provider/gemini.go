package provider

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"lyriclens/internal/analysis"
	"lyriclens/internal/config"
	"lyriclens/internal/logging"
)

// GeminiProvider analyzes lyrics through the Gemini API with JSON output.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider builds a Gemini-backed provider.
func NewGeminiProvider(cfg config.ProviderConfig) (*GeminiProvider, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Name identifies the provider in results and logs.
func (p *GeminiProvider) Name() string { return "gemini:" + p.model }

// Infer sends the lyrics for analysis and parses the JSON reply.
func (p *GeminiProvider) Infer(ctx context.Context, text string) (analysis.RawOutput, error) {
	timer := logging.StartTimer(logging.CategoryProvider, "gemini infer")
	defer timer.Stop()

	contents := []*genai.Content{
		genai.NewContentFromText(analyzerInstructions+"\n\nLyrics:\n\n"+text, genai.RoleUser),
	}
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return analysis.RawOutput{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reply := result.Text()
	if reply == "" {
		return analysis.RawOutput{}, fmt.Errorf("%w: empty gemini reply", ErrMalformed)
	}
	return parseLLMOutput(reply)
}
