package research

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/prompts"
)

// mockProvider implements interfaces.ResearchProvider for testing
type mockProvider struct {
	generateFunc func(ctx context.Context, prompt string) (*interfaces.ModelResponse, error)
	lastPrompt   string
}

func (m *mockProvider) Generate(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
	m.lastPrompt = prompt
	if m.generateFunc != nil {
		return m.generateFunc(ctx, prompt)
	}
	return &interfaces.ModelResponse{Text: "[]"}, nil
}

func (m *mockProvider) Close() error { return nil }

func newTestService(provider *mockProvider) *Service {
	return NewService(provider, prompts.NewBuilder(""), createTestLogger())
}

func TestDeepDive_NormalizesTicker(t *testing.T) {
	provider := &mockProvider{
		generateFunc: func(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
			return &interfaces.ModelResponse{
				Text: "Report body.",
				Sources: []interfaces.ModelSource{
					{URI: "https://news.example/nvda", Title: "NVDA beats"},
				},
			}, nil
		},
	}
	service := newTestService(provider)

	result, err := service.DeepDive(context.Background(), "  nvda ")
	require.NoError(t, err)

	assert.Contains(t, provider.lastPrompt, "NVDA")
	assert.NotContains(t, provider.lastPrompt, "{ticker}")
	assert.Equal(t, "Report body.", result.Text)
	require.NotNil(t, result.Citations)
	assert.Len(t, result.Citations.Sources, 1)
}

func TestDeepDive_RejectsInvalidTicker(t *testing.T) {
	service := newTestService(&mockProvider{})

	_, err := service.DeepDive(context.Background(), "not a ticker!!")
	require.Error(t, err)
}

func TestDeepDive_WrapsTransportFailure(t *testing.T) {
	provider := &mockProvider{
		generateFunc: func(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
			return nil, errors.New("connection reset")
		},
	}
	service := newTestService(provider)

	_, err := service.DeepDive(context.Background(), "AAPL")

	var transportErr *models.TransportError
	require.True(t, errors.As(err, &transportErr))
}

func TestTrending_UsesFilterObjective(t *testing.T) {
	provider := &mockProvider{
		generateFunc: func(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
			return &interfaces.ModelResponse{Text: `[{"symbol": "GME", "sector": "Consumer"}]`}, nil
		},
	}
	service := newTestService(provider)

	stocks, err := service.Trending(context.Background(), models.TrendingFilterVolume)
	require.NoError(t, err)
	require.Len(t, stocks, 1)
	assert.Equal(t, "GME", stocks[0].Symbol)
	assert.NotContains(t, provider.lastPrompt, "{objective}")
}

func TestTrending_MalformedListSurfaces(t *testing.T) {
	provider := &mockProvider{
		generateFunc: func(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
			return &interfaces.ModelResponse{Text: `[{"symbol": broken`}, nil
		},
	}
	service := newTestService(provider)

	_, err := service.Trending(context.Background(), models.TrendingFilterGeneral)

	var malformedErr *models.MalformedListError
	require.True(t, errors.As(err, &malformedErr))
}

func TestCalendar_ReturnsEvents(t *testing.T) {
	provider := &mockProvider{
		generateFunc: func(ctx context.Context, prompt string) (*interfaces.ModelResponse, error) {
			return &interfaces.ModelResponse{Text: `[{"symbol": "COST", "date": "Thu, Dec 12"}]`}, nil
		},
	}
	service := newTestService(provider)

	events, err := service.Calendar(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "COST", events[0].Symbol)
	assert.NotContains(t, provider.lastPrompt, "{today}")
}
