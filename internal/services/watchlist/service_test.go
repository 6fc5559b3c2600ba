package watchlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

// fakeStorage implements interfaces.WatchlistStorage in memory
type fakeStorage struct {
	symbols []string
	getErr  error
	putErr  error
}

func (f *fakeStorage) Get(ctx context.Context) ([]string, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.symbols, nil
}

func (f *fakeStorage) Put(ctx context.Context, symbols []string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.symbols = symbols
	return nil
}

func newTestService(storage *fakeStorage) *Service {
	return NewService(storage, arbor.NewLogger())
}

func TestToggle_AddsAndRemoves(t *testing.T) {
	storage := &fakeStorage{}
	service := newTestService(storage)
	ctx := context.Background()

	symbols, added, err := service.Toggle(ctx, "nvda")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"NVDA"}, symbols)

	symbols, added, err = service.Toggle(ctx, "AAPL")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"NVDA", "AAPL"}, symbols)

	// Toggling again removes, case-insensitively.
	symbols, added, err = service.Toggle(ctx, " Nvda ")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, []string{"AAPL"}, symbols)
}

func TestToggle_RejectsInvalidSymbol(t *testing.T) {
	service := newTestService(&fakeStorage{})

	_, _, err := service.Toggle(context.Background(), "not a ticker!!")
	require.Error(t, err)
}

func TestToggle_WriteFailureStillToggles(t *testing.T) {
	storage := &fakeStorage{putErr: errors.New("disk full")}
	service := newTestService(storage)

	symbols, added, err := service.Toggle(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []string{"NVDA"}, symbols)
}

func TestContains(t *testing.T) {
	storage := &fakeStorage{symbols: []string{"NVDA", "AAPL"}}
	service := newTestService(storage)
	ctx := context.Background()

	assert.True(t, service.Contains(ctx, "nvda"))
	assert.True(t, service.Contains(ctx, "AAPL"))
	assert.False(t, service.Contains(ctx, "TSLA"))
}

func TestList_WrapsStorageError(t *testing.T) {
	service := newTestService(&fakeStorage{getErr: errors.New("closed")})

	_, err := service.List(context.Background())
	require.Error(t, err)
}
