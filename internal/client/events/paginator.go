package events

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dkrasnovs/skyvault/internal/client/api"
	"github.com/dkrasnovs/skyvault/internal/client/models"
	"github.com/dkrasnovs/skyvault/internal/logging"
)

// Source fetches one page of events following a cursor.
type Source interface {
	FetchEvents(ctx context.Context, lastID int64, filter string) (*api.EventsPage, error)
}

// Paginator accumulates the event feed through forward cursor pagination.
// The cursor is the id of the last event seen; the first empty page ends
// pagination for good.
//
// A single atomic gate rejects overlapping loads for the same cursor. It is
// a re-entrancy guard, not a lock: a load in flight closes the gate and
// reopens it in both the success and the failure path, so a user-triggered
// retry after an error always goes through. Failed loads are never retried
// automatically.
type Paginator struct {
	src    Source
	filter string
	log    logging.Logger

	inFlight atomic.Bool

	mu     sync.Mutex
	events []models.Event
	lastID int64
	limit  int
	done   bool
}

func NewPaginator(src Source, filter string, log logging.Logger) *Paginator {
	return &Paginator{src: src, filter: filter, log: log}
}

// LoadMore fetches the next page and appends it. Returns the number of
// events added. When a load is already in flight, or pagination has ended,
// it returns 0 without fetching.
func (p *Paginator) LoadMore(ctx context.Context) (int, error) {
	if !p.inFlight.CompareAndSwap(false, true) {
		return 0, nil
	}
	defer p.inFlight.Store(false)

	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return 0, nil
	}
	cursor := p.lastID
	p.mu.Unlock()

	page, err := p.src.FetchEvents(ctx, cursor, p.filter)
	if err != nil {
		p.log.Error(ctx, "loading events page", "lastId", cursor, "error", err)
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(page.Events) == 0 {
		p.done = true
		return 0, nil
	}

	p.events = append(p.events, page.Events...)
	p.limit = page.Limit
	p.lastID = page.Events[len(page.Events)-1].ID

	return len(page.Events), nil
}

// Refresh clears the accumulated feed and cursor so the next LoadMore
// starts over. Used by pull-to-refresh.
func (p *Paginator) Refresh() {
	p.mu.Lock()
	p.events = nil
	p.lastID = 0
	p.limit = 0
	p.done = false
	p.mu.Unlock()
}

// Events returns a copy of the accumulated feed.
func (p *Paginator) Events() []models.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.Event(nil), p.events...)
}

// Done reports whether the feed has been fully paged through.
func (p *Paginator) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}
