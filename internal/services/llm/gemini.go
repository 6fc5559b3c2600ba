// Package llm provides the Gemini-backed research provider. Every research
// prompt runs with the Google Search tool enabled so responses arrive with
// grounding metadata.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
)

// GeminiProvider implements interfaces.ResearchProvider over the genai client.
type GeminiProvider struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	temp    float32
	limiter *rate.Limiter
	logger  arbor.ILogger
}

// NewGeminiProvider initializes the genai client and the request rate limiter.
func NewGeminiProvider(ctx context.Context, cfg *common.GeminiConfig, logger arbor.ILogger) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set gemini.api_key in config or SCOUT_GEMINI_API_KEY / GEMINI_API_KEY)")
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid gemini timeout '%s': %w", cfg.Timeout, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	logger.Info().
		Str("model", cfg.Model).
		Dur("timeout", timeout).
		Float64("rate_limit", cfg.RateLimit).
		Msg("Gemini provider initialized")

	return &GeminiProvider{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
		temp:    cfg.Temperature,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// Generate sends one prompt and returns the raw text plus grounding sources.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(p.temp),
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	startTime := time.Now()
	resp, err := p.client.Models.GenerateContent(timeoutCtx, p.model, []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}, config)
	if err != nil {
		p.logger.Error().
			Err(err).
			Str("model", p.model).
			Msg("Gemini request failed")
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("gemini returned an empty response")
	}

	result := &interfaces.ModelResponse{Text: text}
	attachGrounding(result, resp)

	p.logger.Debug().
		Str("model", p.model).
		Int("text_length", len(text)).
		Int("sources", len(result.Sources)).
		Dur("duration", time.Since(startTime)).
		Msg("Gemini request completed")

	return result, nil
}

// attachGrounding copies web sources and the search entry point out of the
// first candidate's grounding metadata. Responses without grounding leave the
// result untouched.
func attachGrounding(result *interfaces.ModelResponse, resp *genai.GenerateContentResponse) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return
	}

	meta := resp.Candidates[0].GroundingMetadata
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		result.Sources = append(result.Sources, interfaces.ModelSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	if meta.SearchEntryPoint != nil {
		result.SearchEntryPointHTML = meta.SearchEntryPoint.RenderedContent
	}
}

// Close releases the provider. The genai client holds no connection state that
// needs explicit shutdown.
func (p *GeminiProvider) Close() error {
	p.client = nil
	return nil
}
