package research

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/common"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/prompts"
)

// Service orchestrates the three query flows: build prompt, call the model
// transport once, parse or normalize the response. There is no retry policy;
// a failed call surfaces its error and waits for explicit re-initiation.
type Service struct {
	provider interfaces.ResearchProvider
	prompts  *prompts.Builder
	parser   *Parser
	logger   arbor.ILogger
}

// NewService creates a research service.
func NewService(provider interfaces.ResearchProvider, builder *prompts.Builder, logger arbor.ILogger) *Service {
	return &Service{
		provider: provider,
		prompts:  builder,
		parser:   NewParser(logger),
		logger:   logger,
	}
}

// DeepDive runs a single-ticker research query and returns the parsed result.
// The ticker is normalized before use; the normalized form is what callers
// should display and use for watchlist membership.
func (s *Service) DeepDive(ctx context.Context, ticker string) (*models.SearchResult, error) {
	symbol := common.NormalizeTicker(ticker)
	if !common.IsValidTicker(symbol) {
		return nil, fmt.Errorf("invalid ticker symbol %q", ticker)
	}

	prompt, err := s.prompts.DeepDive(symbol)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	resp, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("ticker", symbol).Msg("Deep dive request failed")
		return nil, &models.TransportError{Err: err}
	}

	result := s.parser.ParseDeepDive(resp.Text)
	result.Citations = BuildCitations(resp.Sources, resp.SearchEntryPointHTML)

	s.logger.Info().
		Str("ticker", symbol).
		Bool("has_summary", result.Summary != nil).
		Int("body_length", len(result.Text)).
		Dur("duration", time.Since(startTime)).
		Msg("Deep dive completed")

	return &result, nil
}

// Trending fetches and normalizes the trending stocks list for a filter.
func (s *Service) Trending(ctx context.Context, filter models.TrendingFilter) ([]models.TrendingStock, error) {
	prompt, err := s.prompts.Trending(filter)
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("filter", string(filter)).Msg("Trending request failed")
		return nil, &models.TransportError{Err: err}
	}

	stocks, err := NormalizeTrending(resp.Text)
	if err != nil {
		s.logger.Error().Err(err).Str("filter", string(filter)).Msg("Trending payload unparseable")
		return nil, err
	}

	s.logger.Info().Str("filter", string(filter)).Int("count", len(stocks)).Msg("Trending list loaded")
	return stocks, nil
}

// Calendar fetches and normalizes the 14-day earnings calendar.
func (s *Service) Calendar(ctx context.Context) ([]models.EarningsEvent, error) {
	prompt, err := s.prompts.Calendar(time.Now())
	if err != nil {
		return nil, err
	}

	resp, err := s.provider.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("Calendar request failed")
		return nil, &models.TransportError{Err: err}
	}

	events, err := NormalizeCalendar(resp.Text)
	if err != nil {
		s.logger.Error().Err(err).Msg("Calendar payload unparseable")
		return nil, err
	}

	s.logger.Info().Int("count", len(events)).Msg("Earnings calendar loaded")
	return events, nil
}
