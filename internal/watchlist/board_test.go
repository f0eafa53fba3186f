package watchlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/marketdata"
	"stock-watchlist-go/internal/models"
	"stock-watchlist-go/internal/store"
)

func TestBoard_StartsLoading(t *testing.T) {
	svc, _, _ := setupTest(t)

	snap := svc.Board(ada).Snapshot()
	assert.Equal(t, StateLoading, snap.State)
	assert.Empty(t, snap.Items)
}

// The full lifecycle for user 42: search, select at 190.00, duplicate
// select, delete.
func TestBoard_Lifecycle(t *testing.T) {
	svc, market, items := setupTest(t)
	ctx := context.Background()
	market.On("Articles").Return([]models.Article{{Title: "Markets rally"}}, nil)
	market.On("Search", "AAPL").Return([]models.Candidate{{Symbol: "AAPL", Name: "Apple Inc."}}, nil)
	market.On("Quote", "AAPL").Return(decimal.RequireFromString("190.00"), nil)

	board := svc.Board(ada)
	require.NoError(t, board.Load(ctx))
	snap := board.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Len(t, snap.Articles, 1)

	candidates, err := board.Search(ctx, "AAPL")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	item, err := board.Select(ctx, candidates[0].Symbol, candidates[0].Name)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("190.00").Equal(item.Price))
	assert.Equal(t, uint(42), item.UserID)

	snap = board.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "AAPL", snap.Items[0].Symbol)

	// Selecting again fails and leaves exactly one row.
	_, err = board.Select(ctx, "AAPL", "Apple Inc.")
	assert.ErrorIs(t, err, store.ErrDuplicateSymbol)
	snap = board.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.NotEmpty(t, snap.Error)
	assert.Len(t, snap.Items, 1)
	stored, err := items.List(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	require.NoError(t, board.Delete(ctx, item.ID))
	snap = board.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.Empty(t, snap.Items)
	assert.Empty(t, snap.Error)

	stored, err = items.List(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBoard_LoadListsExistingItems(t *testing.T) {
	svc, market, _ := setupTest(t)
	ctx := context.Background()
	market.On("Quote", "AAPL").Return(decimal.NewFromInt(190), nil)
	market.On("Quote", "MSFT").Return(decimal.NewFromInt(410), nil)
	market.On("Articles").Return([]models.Article{}, nil)

	_, err := svc.Select(ctx, ada, "AAPL", "Apple Inc.")
	require.NoError(t, err)
	_, err = svc.Select(ctx, ada, "MSFT", "Microsoft Corporation")
	require.NoError(t, err)

	board := svc.Board(ada)
	require.NoError(t, board.Load(ctx))
	snap := board.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Len(t, snap.Items, 2)
}

func TestBoard_NewsFailureIsNotFatal(t *testing.T) {
	svc, market, _ := setupTest(t)
	market.On("Articles").Return([]models.Article(nil), marketdata.ErrUpstreamUnavailable)

	board := svc.Board(ada)
	require.NoError(t, board.Load(context.Background()))

	snap := board.Snapshot()
	assert.Equal(t, StateEmpty, snap.State)
	assert.NotNil(t, snap.Articles)
	assert.Empty(t, snap.Articles)
	assert.Empty(t, snap.Error)
}

type failingStore struct {
	ItemStore
}

func (failingStore) List(ctx context.Context, userID uint) ([]models.Company, error) {
	return nil, errors.New("connection refused")
}

func TestBoard_ListFailureEndsReadyWithError(t *testing.T) {
	market := new(MockMarketClient)
	market.On("Articles").Return([]models.Article{}, nil).Maybe()
	svc := NewService(market, failingStore{}, zap.NewNop())

	board := svc.Board(ada)
	err := board.Load(context.Background())
	assert.Error(t, err)

	snap := board.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	assert.Contains(t, snap.Error, "connection refused")
}

func TestBoard_NoIdentityEndsReadyWithError(t *testing.T) {
	svc, _, _ := setupTest(t)

	board := svc.Board(auth.Session{})
	err := board.Load(context.Background())
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
	assert.Equal(t, StateReady, board.Snapshot().State)
}

func TestBoard_DeleteNotOwned(t *testing.T) {
	svc, market, _ := setupTest(t)
	ctx := context.Background()
	market.On("Quote", "AAPL").Return(decimal.NewFromInt(190), nil)

	item, err := svc.Select(ctx, ada, "AAPL", "Apple Inc.")
	require.NoError(t, err)

	eve := svc.Board(auth.Session{UserID: 7})
	assert.ErrorIs(t, eve.Delete(ctx, item.ID), ErrNotOwner)
	assert.Equal(t, StateReady, eve.Snapshot().State)
}

func TestBoard_StaleSearchDiscarded(t *testing.T) {
	svc, market, _ := setupTest(t)
	board := svc.Board(ada)

	release := make(chan struct{})
	market.On("Search", "AP").
		Run(func(mock.Arguments) { <-release }).
		Return([]models.Candidate{{Symbol: "APA"}}, nil)
	market.On("Search", "APPL").Return([]models.Candidate{{Symbol: "AAPL"}}, nil)

	type result struct {
		candidates []models.Candidate
		err        error
	}
	slow := make(chan result, 1)
	go func() {
		c, err := board.Search(context.Background(), "AP")
		slow <- result{c, err}
	}()

	// Wait until the slow search has been issued before starting the next one.
	require.Eventually(t, func() bool { return board.searchSeq.Load() == 1 }, time.Second, time.Millisecond)

	latest, err := board.Search(context.Background(), "APPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", latest[0].Symbol)

	close(release)
	r := <-slow
	assert.ErrorIs(t, r.err, ErrStaleResponse)
	assert.Nil(t, r.candidates)
}

func TestBoard_SearchAfterCallerLeftIsStale(t *testing.T) {
	svc, market, _ := setupTest(t)
	market.On("Search", "AAPL").Return([]models.Candidate{{Symbol: "AAPL"}}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Board(ada).Search(ctx, "AAPL")
	assert.ErrorIs(t, err, ErrStaleResponse)
}

// slowListStore takes its listing, then waits before returning it.
type slowListStore struct {
	ItemStore
	listed  chan struct{}
	release chan struct{}
}

func (s *slowListStore) List(ctx context.Context, userID uint) ([]models.Company, error) {
	items, err := s.ItemStore.List(ctx, userID)
	close(s.listed)
	<-s.release
	return items, err
}

func TestBoard_DeleteDuringLoadStaysDeleted(t *testing.T) {
	_, market, items := setupTest(t)
	ctx := context.Background()
	market.On("Articles").Return([]models.Article{}, nil)
	market.On("Quote", "AAPL").Return(decimal.NewFromInt(190), nil)
	market.On("Quote", "MSFT").Return(decimal.NewFromInt(410), nil)

	slow := &slowListStore{ItemStore: items, listed: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(market, slow, zap.NewNop())

	aapl, err := svc.Add(ctx, ada, NewItem{Symbol: "AAPL", Name: "Apple Inc."})
	require.NoError(t, err)

	board := svc.Board(ada)
	loaded := make(chan error, 1)
	go func() { loaded <- board.Load(ctx) }()

	<-slow.listed
	require.NoError(t, board.Delete(ctx, aapl.ID))
	msft, err := board.Select(ctx, "MSFT", "Microsoft Corporation")
	require.NoError(t, err)
	close(slow.release)
	require.NoError(t, <-loaded)

	snap := board.Snapshot()
	assert.Equal(t, StateReady, snap.State)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, msft.ID, snap.Items[0].ID)
}
