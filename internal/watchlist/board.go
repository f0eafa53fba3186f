package watchlist

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stock-watchlist-go/internal/auth"
	"stock-watchlist-go/internal/models"
)

// State is the lifecycle state of a Board.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	// StateEmpty is Ready with no items.
	StateEmpty State = "empty"
)

// Snapshot is a copy of a Board's current view.
type Snapshot struct {
	State    State            `json:"state"`
	Items    []models.Company `json:"items"`
	Articles []models.Article `json:"articles"`
	Error    string           `json:"error,omitempty"`
}

// Board is one user's dashboard. It starts in Loading; every action ends in
// Ready or Empty, carrying the action's error when it failed.
type Board struct {
	svc     *Service
	session auth.Session
	logger  *zap.Logger

	searchSeq atomic.Uint64

	mu       sync.Mutex
	state    State
	items    []models.Company
	articles []models.Article
	err      error
	// Changes made while a Load is in flight, applied on top of its listing.
	removed map[string]struct{}
	added   []models.Company
}

func newBoard(svc *Service, sess auth.Session) *Board {
	return &Board{
		svc:      svc,
		session:  sess,
		logger:   svc.logger.With(zap.Uint("user_id", sess.UserID)),
		state:    StateLoading,
		items:    []models.Company{},
		articles: []models.Article{},
		removed:  make(map[string]struct{}),
	}
}

// Load fetches the user's items and the news feed concurrently. A news
// failure is logged and leaves the feed empty; an identity or list failure
// is returned and recorded on the board.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.state = StateLoading
	b.removed = make(map[string]struct{})
	b.added = nil
	b.mu.Unlock()

	if b.session.UserID == 0 {
		err := fmt.Errorf("%w: no user for dashboard", auth.ErrUnauthorized)
		b.settle(err)
		return err
	}

	var (
		items    []models.Company
		articles = []models.Article{}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = b.svc.items.List(gctx, b.session.UserID)
		return err
	})
	g.Go(func() error {
		a, err := b.svc.market.Articles(gctx)
		if err != nil {
			b.logger.Warn("Failed to load news feed", zap.Error(err))
			return nil
		}
		articles = a
		return nil
	})

	if err := g.Wait(); err != nil {
		b.logger.Error("Failed to load watchlist", zap.Error(err))
		b.settle(err)
		return err
	}

	b.mu.Lock()
	b.items = b.merge(items)
	b.articles = articles
	b.mu.Unlock()
	b.settle(nil)
	return nil
}

// merge drops rows deleted on this board since the load started and keeps
// rows added since then that the listing missed. Called with b.mu held.
func (b *Board) merge(listed []models.Company) []models.Company {
	out := make([]models.Company, 0, len(listed))
	seen := make(map[string]struct{}, len(listed))
	for _, c := range listed {
		if _, gone := b.removed[c.ID]; gone {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	for _, c := range b.added {
		if _, ok := seen[c.ID]; !ok {
			if _, gone := b.removed[c.ID]; !gone {
				out = append(out, c)
			}
		}
	}
	return out
}

// Search runs a symbol lookup. The result is discarded with ErrStaleResponse
// when the caller has gone away or a newer search was started on this board.
func (b *Board) Search(ctx context.Context, query string) ([]models.Candidate, error) {
	seq := b.searchSeq.Add(1)
	results, err := b.svc.Search(ctx, query)
	if ctx.Err() != nil || b.searchSeq.Load() != seq {
		return nil, ErrStaleResponse
	}
	return results, err
}

// Select quotes and persists a candidate, then appends it to the board.
func (b *Board) Select(ctx context.Context, symbol, name string) (*models.Company, error) {
	item, err := b.svc.Select(ctx, b.session, symbol, name)
	if err != nil {
		b.settle(err)
		return nil, err
	}

	b.mu.Lock()
	b.items = append(b.items, *item)
	b.added = append(b.added, *item)
	b.mu.Unlock()
	b.settle(nil)
	return item, nil
}

// Delete removes the item from the store and then from the board without reloading.
func (b *Board) Delete(ctx context.Context, id string) error {
	if err := b.svc.Remove(ctx, b.session, id); err != nil {
		b.settle(err)
		return err
	}

	b.mu.Lock()
	b.removed[id] = struct{}{}
	b.items = slices.DeleteFunc(b.items, func(c models.Company) bool { return c.ID == id })
	b.mu.Unlock()
	b.settle(nil)
	return nil
}

// Snapshot returns a copy of the current view.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := Snapshot{
		State:    b.state,
		Items:    slices.Clone(b.items),
		Articles: slices.Clone(b.articles),
	}
	if b.err != nil {
		s.Error = b.err.Error()
	}
	return s
}

// settle moves the board out of Loading and records the outcome of the last action.
func (b *Board) settle(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.err = err
	if err == nil && len(b.items) == 0 {
		b.state = StateEmpty
		return
	}
	b.state = StateReady
}
