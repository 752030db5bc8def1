package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"storefront/models"
	"storefront/services"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/assert"
)

type manualTimer struct {
	s       *manualScheduler
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Fire runs every armed timer that was not stopped.
func (s *manualScheduler) Fire() int {
	s.mu.Lock()
	var due []*manualTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

type call struct {
	term string
	page int
}

type fakeSearcher struct {
	mu      sync.Mutex
	calls   []call
	respond func(term string, page int) ([]models.Product, error)
}

func (f *fakeSearcher) Search(ctx context.Context, term string, page, pageSize int) ([]models.Product, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{term, page})
	respond := f.respond
	f.mu.Unlock()
	return respond(term, page)
}

func (f *fakeSearcher) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call{}, f.calls...)
}

func products(from, n int) []models.Product {
	out := make([]models.Product, 0, n)
	for i := from; i < from+n; i++ {
		out = append(out, models.Product{Id: int64(i), Name: fmt.Sprintf("phone %d", i), Price: 10, ImageUrl: "img"})
	}
	return out
}

func newTestController(respond func(term string, page int) ([]models.Product, error)) (*Controller, *fakeSearcher, *manualScheduler) {
	searcher := &fakeSearcher{respond: respond}
	scheduler := &manualScheduler{}
	c := NewController(searcher, Options{PageSize: 8, Scheduler: scheduler})
	return c, searcher, scheduler
}

func wait(t *testing.T, c *Controller) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Equal(t, nil, c.Wait(ctx))
}

func TestSearchAndPaginate(t *testing.T) {
	c, searcher, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		if page == 1 {
			return products(1, 8), nil
		}
		return products(9, 5), nil
	})

	s := c.Snapshot()
	assert.Equal(t, models.Idle, s.Status)
	assert.Equal(t, false, s.HasSearched)

	c.SetTerm("phone")
	s = c.Snapshot()
	assert.Equal(t, true, s.IsLoading)
	assert.Equal(t, models.Searching, s.Status)
	assert.Equal(t, 0, len(searcher.Calls()))

	assert.Equal(t, 1, scheduler.Fire())
	wait(t, c)

	s = c.Snapshot()
	assert.Equal(t, 8, len(s.Items))
	assert.Equal(t, true, s.HasMore)
	assert.Equal(t, true, s.HasSearched)
	assert.Equal(t, false, s.IsLoading)
	assert.Equal(t, models.Loaded, s.Status)

	assert.Equal(t, true, c.LoadMore())
	assert.Equal(t, models.LoadingMore, c.Snapshot().Status)
	wait(t, c)

	s = c.Snapshot()
	assert.Equal(t, 13, len(s.Items))
	assert.Equal(t, false, s.HasMore)
	assert.Equal(t, 2, s.Page)
	assert.DeepEqual(t, []call{{"phone", 1}, {"phone", 2}}, searcher.Calls(), cmp.AllowUnexported(call{}))

	// no more pages
	assert.Equal(t, false, c.LoadMore())
	assert.Equal(t, 2, len(searcher.Calls()))
}

func TestDebounceUsesLatestTerm(t *testing.T) {
	c, searcher, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		return products(1, 3), nil
	})

	c.SetTerm("p")
	c.SetTerm("ph")
	c.SetTerm("pho")
	c.SetTerm("phone")

	assert.Equal(t, 1, scheduler.Fire())
	wait(t, c)

	assert.DeepEqual(t, []call{{"phone", 1}}, searcher.Calls(), cmp.AllowUnexported(call{}))
	assert.Equal(t, "phone", c.Snapshot().Term)
}

func TestDebounceWithClock(t *testing.T) {
	searcher := &fakeSearcher{respond: func(term string, page int) ([]models.Product, error) {
		return products(1, 2), nil
	}}
	c := NewController(searcher, Options{Debounce: 20 * time.Millisecond})
	defer c.Close()

	c.SetTerm("tv")
	c.SetTerm("tvs")
	wait(t, c)

	assert.DeepEqual(t, []call{{"tvs", 1}}, searcher.Calls(), cmp.AllowUnexported(call{}))
	assert.Equal(t, 2, len(c.Snapshot().Items))
}

func TestEmptyTermClearsSynchronously(t *testing.T) {
	c, searcher, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		return products(1, 8), nil
	})

	c.SetTerm("phone")
	scheduler.Fire()
	wait(t, c)
	assert.Equal(t, 8, len(c.Snapshot().Items))

	// pending debounce is dropped
	c.SetTerm("phones")
	c.SetTerm("")

	s := c.Snapshot()
	assert.Equal(t, 0, len(s.Items))
	assert.Equal(t, false, s.HasSearched)
	assert.Equal(t, false, s.IsLoading)
	assert.Equal(t, models.Idle, s.Status)

	assert.Equal(t, 0, scheduler.Fire())
	wait(t, c)
	assert.Equal(t, 1, len(searcher.Calls()))
}

func TestLoadMoreNoop(t *testing.T) {
	release := make(chan struct{})
	c, searcher, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		if page == 2 {
			<-release
		}
		return products(page*10, 8), nil
	})

	// nothing searched yet
	assert.Equal(t, false, c.LoadMore())

	c.SetTerm("phone")
	// debounce pending counts as loading
	assert.Equal(t, false, c.LoadMore())

	scheduler.Fire()
	wait(t, c)

	assert.Equal(t, true, c.LoadMore())
	before := c.Snapshot()
	assert.Equal(t, false, c.LoadMore())
	assert.DeepEqual(t, before, c.Snapshot())

	close(release)
	wait(t, c)
	assert.Equal(t, 2, len(searcher.Calls()))
	assert.Equal(t, 16, len(c.Snapshot().Items))
}

func TestMissingItemsEndsFeed(t *testing.T) {
	c, _, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		return []models.Product{}, nil
	})

	c.SetTerm("zzzz")
	scheduler.Fire()
	wait(t, c)

	s := c.Snapshot()
	assert.Equal(t, 0, len(s.Items))
	assert.Equal(t, false, s.HasMore)
	assert.Equal(t, true, s.HasSearched)
	assert.Equal(t, false, s.IsLoading)
}

func TestFetchErrorKeepsState(t *testing.T) {
	fail := false
	var mu sync.Mutex
	c, searcher, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		mu.Lock()
		defer mu.Unlock()
		if fail {
			return nil, &services.NetworkError{Op: "GET", Err: errors.New("err-timeout")}
		}
		return products(page*10, 8), nil
	})

	c.SetTerm("phone")
	scheduler.Fire()
	wait(t, c)

	mu.Lock()
	fail = true
	mu.Unlock()

	assert.Equal(t, true, c.LoadMore())
	wait(t, c)

	s := c.Snapshot()
	assert.Equal(t, 8, len(s.Items))
	assert.Equal(t, true, s.HasMore)
	assert.Equal(t, false, s.IsLoading)
	assert.Equal(t, 1, s.Page)

	// user retries by scrolling again
	mu.Lock()
	fail = false
	mu.Unlock()

	assert.Equal(t, true, c.LoadMore())
	wait(t, c)
	assert.Equal(t, 16, len(c.Snapshot().Items))
	assert.DeepEqual(t, []call{{"phone", 1}, {"phone", 2}, {"phone", 2}}, searcher.Calls(), cmp.AllowUnexported(call{}))
}

func TestStaleResultDiscarded(t *testing.T) {
	release := make(chan struct{})
	c, _, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		if term == "old" {
			<-release
			return products(100, 8), nil
		}
		return products(1, 3), nil
	})

	c.SetTerm("old")
	scheduler.Fire()

	c.SetTerm("new")
	scheduler.Fire()

	close(release)
	wait(t, c)

	s := c.Snapshot()
	assert.Equal(t, "new", s.Term)
	assert.Equal(t, 3, len(s.Items))
	assert.Equal(t, int64(1), s.Items[0].Id)

	// a reset while a page is in flight wins too
	release = make(chan struct{})
	c.SetTerm("old")
	scheduler.Fire()
	c.Reset()
	close(release)
	wait(t, c)

	s = c.Snapshot()
	assert.Equal(t, 0, len(s.Items))
	assert.Equal(t, false, s.HasSearched)
}

func TestRemoveProduct(t *testing.T) {
	c, _, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		if page == 1 {
			return products(1, 8), nil
		}
		// upstream repeats id 3 and 8 on the next page
		return append(products(3, 1), append(products(8, 1), products(9, 6)...)...), nil
	})

	c.SetTerm("phone")
	scheduler.Fire()
	wait(t, c)

	p, ok := c.Product(3)
	assert.Equal(t, true, ok)
	assert.Equal(t, int64(3), p.Id)

	assert.Equal(t, true, c.RemoveProduct(3))
	assert.Equal(t, false, c.RemoveProduct(3))

	s := c.Snapshot()
	assert.Equal(t, 7, len(s.Items))
	assert.Equal(t, true, s.HasMore)
	assert.Equal(t, 1, s.Page)

	_, ok = c.Product(3)
	assert.Equal(t, false, ok)

	assert.Equal(t, true, c.LoadMore())
	wait(t, c)

	s = c.Snapshot()
	assert.Equal(t, 13, len(s.Items))
	seen := map[int64]bool{}
	for _, item := range s.Items {
		assert.Equal(t, false, seen[item.Id])
		assert.Assert(t, item.Id != 3)
		seen[item.Id] = true
	}
}

func TestResetRunsHooks(t *testing.T) {
	c, _, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		return products(1, 8), nil
	})

	hooked := 0
	c.OnReset(func() { hooked++ })

	c.SetTerm("phone")
	scheduler.Fire()
	wait(t, c)
	c.LoadMore()
	wait(t, c)

	c.Reset()

	s := c.Snapshot()
	assert.Equal(t, "", s.Term)
	assert.Equal(t, 0, len(s.Items))
	assert.Equal(t, 1, s.Page)
	assert.Equal(t, true, s.HasMore)
	assert.Equal(t, false, s.HasSearched)
	assert.Equal(t, 1, hooked)
}

func TestClose(t *testing.T) {
	c, searcher, scheduler := newTestController(func(term string, page int) ([]models.Product, error) {
		return products(1, 8), nil
	})

	c.SetTerm("phone")
	c.Close()

	assert.Equal(t, 0, scheduler.Fire())
	c.SetTerm("tv")
	assert.Equal(t, 0, scheduler.Fire())
	wait(t, c)
	assert.Equal(t, 0, len(searcher.Calls()))
}
