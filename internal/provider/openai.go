package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"lyriclens/internal/analysis"
	"lyriclens/internal/config"
	"lyriclens/internal/logging"
)

const analyzerInstructions = `You analyze song lyrics for Christian thematic content.
Identify positive theological themes (for example: Christ-centered, Gospel presentation,
Redemption, Sacrificial love, Light vs darkness, Worship, Hope, Faith, Mercy, Gratitude)
and content concerns (for example: Blasphemy, Self-deification, Occult, Profanity,
Sexual immorality, Glorified violence, Substance abuse, Materialism, Despair).
For each theme give a confidence in [0,1]. For each concern give a severity
(low, medium, high, critical), a confidence in [0,1], and a one-sentence explanation.
Suggest up to five supporting scripture references. Reply with JSON only.`

// OpenAIProvider analyzes lyrics through an OpenAI-compatible endpoint
// using strict structured output.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var analyzerSchema = generateSchema[llmAnalysis]()

// NewOpenAIProvider builds a provider for the configured endpoint.
func NewOpenAIProvider(cfg config.ProviderConfig) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.TimeoutDuration()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIProvider{client: &client, model: model}
}

// Name identifies the provider in results and logs.
func (p *OpenAIProvider) Name() string { return "openai:" + p.model }

// Infer sends the lyrics for analysis and parses the structured reply.
func (p *OpenAIProvider) Infer(ctx context.Context, text string) (analysis.RawOutput, error) {
	timer := logging.StartTimer(logging.CategoryProvider, "openai infer")
	defer timer.Stop()

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "LyricAnalysis",
			Schema:      analyzerSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Lyric theme and concern analysis JSON"),
			Type:        "json_schema",
		},
	}
	params := responses.ResponseNewParams{
		Model:           p.model,
		MaxOutputTokens: openai.Int(2000),
		Instructions:    openai.String(analyzerInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage("Lyrics:\n\n"+text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{Format: format},
	}

	resp, err := p.callWithRetry(ctx, params)
	if err != nil {
		return analysis.RawOutput{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return parseLLMOutput(resp.OutputText())
}

// callWithRetry retries transient API failures with staggered waits.
func (p *OpenAIProvider) callWithRetry(ctx context.Context, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	waits := []time.Duration{2 * time.Second, 10 * time.Second, 30 * time.Second}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := p.client.Responses.New(ctx, params)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == maxRetries-1 {
			break
		}
		logging.ProviderWarn("openai attempt %d failed, retrying: %v", attempt+1, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(waits[attempt]):
		}
	}
	return nil, lastErr
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "500") ||
		strings.Contains(msg, "server_error") ||
		strings.Contains(msg, "timeout")
}

// generateSchema reflects a strict OpenAI-compatible JSON schema for T.
func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}
