// Package feed owns the search-driven product feed: the current term, the
// debounced search trigger, paging and the accumulated results.
package feed

import (
	"context"
	"log"
	"sync"
	"time"

	"storefront/models"
	"storefront/services"
)

const (
	DefaultPageSize = 8
	DefaultDebounce = 300 * time.Millisecond
	DefaultTimeout  = 10 * time.Second
)

type Options struct {
	PageSize  int
	Debounce  time.Duration
	Timeout   time.Duration
	Scheduler Scheduler
}

// Controller is safe for concurrent use. Every fetch is tagged with the
// generation it was issued under; results from an older generation are
// dropped, so a slow response never overwrites a newer search or a reset.
type Controller struct {
	searcher  services.Searcher
	pageSize  int
	debounce  time.Duration
	timeout   time.Duration
	scheduler Scheduler

	mu          sync.Mutex
	term        string
	page        int
	items       []models.Product
	removed     map[int64]struct{}
	hasMore     bool
	isLoading   bool
	hasSearched bool

	generation uint64
	pending    Timer
	inflight   int
	changed    chan struct{}
	closed     bool

	resetHooks []func()
}

func NewController(searcher services.Searcher, opts Options) *Controller {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}

	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if opts.Scheduler == nil {
		opts.Scheduler = clockScheduler{}
	}

	return &Controller{
		searcher:  searcher,
		pageSize:  opts.PageSize,
		debounce:  opts.Debounce,
		timeout:   opts.Timeout,
		scheduler: opts.Scheduler,
		page:      1,
		hasMore:   true,
		removed:   map[int64]struct{}{},
		changed:   make(chan struct{}),
	}
}

// OnReset registers a hook run after every full Reset.
func (c *Controller) OnReset(hook func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetHooks = append(c.resetHooks, hook)
}

// SetTerm is the search-input event. A non-empty term re-arms the debounce,
// an empty one clears the feed right away.
func (c *Controller) SetTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.term = term
	c.stopPendingLocked()
	c.generation++

	if term == "" {
		c.clearLocked()
		return
	}

	c.page = 1
	c.isLoading = true
	gen := c.generation
	c.pending = c.scheduler.AfterFunc(c.debounce, func() {
		c.fire(gen)
	})
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || gen != c.generation {
		return
	}

	c.pending = nil
	c.page = 1
	c.removed = map[int64]struct{}{}
	c.fetchLocked(c.term, 1, gen)
}

// LoadMore is the last-item-visible event. It reports whether a fetch was
// started.
func (c *Controller) LoadMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed || c.isLoading || !c.hasMore || c.term == "" || !c.hasSearched {
		return false
	}

	c.page++
	c.isLoading = true
	c.fetchLocked(c.term, c.page, c.generation)

	return true
}

// RemoveProduct drops id from the feed for the rest of the search session.
// Paging state is untouched.
func (c *Controller) RemoveProduct(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removed[id] = struct{}{}

	for i, p := range c.items {
		if p.Id == id {
			items := make([]models.Product, 0, len(c.items)-1)
			items = append(items, c.items[:i]...)
			c.items = append(items, c.items[i+1:]...)
			return true
		}
	}

	return false
}

func (c *Controller) Product(id int64) (models.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.items {
		if p.Id == id {
			return p, true
		}
	}

	return models.Product{}, false
}

// Reset clears the feed back to its initial state and runs the reset hooks.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.stopPendingLocked()
	c.generation++
	c.term = ""
	c.clearLocked()
	hooks := append([]func(){}, c.resetHooks...)
	c.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

func (c *Controller) Snapshot() models.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.Product, len(c.items))
	copy(items, c.items)

	return models.SearchState{
		Term:        c.term,
		Page:        c.page,
		Items:       items,
		HasMore:     c.hasMore,
		IsLoading:   c.isLoading,
		HasSearched: c.hasSearched,
		Status:      c.statusLocked(),
	}
}

// Wait blocks until no debounce is armed and no fetch is in flight.
func (c *Controller) Wait(ctx context.Context) error {
	for {
		c.mu.Lock()
		if c.pending == nil && c.inflight == 0 {
			c.mu.Unlock()
			return nil
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close stops the debounce timer and discards whatever is still in flight.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.stopPendingLocked()
	c.generation++
	c.isLoading = false
}

func (c *Controller) fetchLocked(term string, page int, gen uint64) {
	c.inflight++

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		results, err := c.searcher.Search(ctx, term, page, c.pageSize)
		cancel()

		c.mu.Lock()
		defer c.mu.Unlock()
		defer c.notifyLocked()

		c.inflight--

		if gen != c.generation {
			log.Println("discarding stale results for", term, "page", page)
			return
		}

		c.isLoading = false

		if err != nil {
			log.Println("Error searching products:", err)
			if page > 1 {
				c.page = page - 1
			}
			return
		}

		if page == 1 {
			c.items = c.mergeLocked(nil, results)
		} else {
			c.items = c.mergeLocked(c.items, results)
		}

		c.hasMore = len(results) == c.pageSize
		c.hasSearched = true
	}()
}

// mergeLocked appends results to items, skipping ids already shown or removed
// during this search session.
func (c *Controller) mergeLocked(items, results []models.Product) []models.Product {
	seen := make(map[int64]struct{}, len(items)+len(results))
	for _, p := range items {
		seen[p.Id] = struct{}{}
	}

	merged := make([]models.Product, 0, len(items)+len(results))
	merged = append(merged, items...)

	for _, p := range results {
		if _, ok := seen[p.Id]; ok {
			continue
		}
		if _, ok := c.removed[p.Id]; ok {
			continue
		}
		seen[p.Id] = struct{}{}
		merged = append(merged, p)
	}

	return merged
}

func (c *Controller) clearLocked() {
	c.items = nil
	c.page = 1
	c.hasMore = true
	c.isLoading = false
	c.hasSearched = false
	c.removed = map[int64]struct{}{}
}

func (c *Controller) stopPendingLocked() {
	if c.pending == nil {
		return
	}

	c.pending.Stop()
	c.pending = nil
	c.notifyLocked()
}

func (c *Controller) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

func (c *Controller) statusLocked() models.FeedStatus {
	switch {
	case c.isLoading && c.page > 1:
		return models.LoadingMore
	case c.isLoading:
		return models.Searching
	case c.hasSearched && c.term != "":
		return models.Loaded
	default:
		return models.Idle
	}
}
