// Package search implements the debounced guest search.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/aikya/companion/internal/backend"
	"github.com/aikya/companion/internal/models"
)

const (
	DefaultDebounce       = 500 * time.Millisecond
	DefaultMinQueryLength = 3
)

var (
	// ErrQueryTooShort means the query was suppressed: no request was made
	// and any pending search was left alone.
	ErrQueryTooShort = errors.New("search query too short")
	// ErrSuperseded means a later query restarted the debounce timer.
	ErrSuperseded = errors.New("search superseded by a newer query")
	// ErrStale means a newer search was issued while this one was in flight.
	ErrStale = errors.New("search response is stale")
)

// Searcher performs the backend lookup.
type Searcher interface {
	Search(ctx context.Context, guest string) ([]models.SearchResult, error)
}

type Options struct {
	Debounce       time.Duration
	MinQueryLength int
	// OnFire runs when a debounced query is about to be searched.
	OnFire func(query string)
}

// Controller coalesces rapid query changes into one search per quiet period
// and discards responses that are not from the latest search issued.
type Controller struct {
	searcher Searcher
	debounce time.Duration
	minLen   int
	onFire   func(query string)

	mu      sync.Mutex
	timer   *time.Timer
	waiting *waiter
	issued  uint64
}

type waiter struct {
	ctx   context.Context
	query string
	done  chan outcome
}

type outcome struct {
	result Result
	err    error
}

func NewController(searcher Searcher, opts Options) *Controller {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinQueryLength <= 0 {
		opts.MinQueryLength = DefaultMinQueryLength
	}
	return &Controller{
		searcher: searcher,
		debounce: opts.Debounce,
		minLen:   opts.MinQueryLength,
		onFire:   opts.OnFire,
	}
}

// Submit registers a query change and blocks until that query's search
// completes, it is superseded, or ctx is done.
func (c *Controller) Submit(ctx context.Context, text string) (Result, error) {
	query := strings.TrimSpace(text)
	if utf8.RuneCountInString(query) < c.minLen {
		return Result{}, ErrQueryTooShort
	}

	w := &waiter{ctx: ctx, query: query, done: make(chan outcome, 1)}

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
	}
	if c.waiting != nil {
		c.waiting.done <- outcome{err: ErrSuperseded}
	}
	c.waiting = w
	c.timer = time.AfterFunc(c.debounce, func() { c.fire(w) })
	c.mu.Unlock()

	select {
	case o := <-w.done:
		return o.result, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (c *Controller) fire(w *waiter) {
	c.mu.Lock()
	if c.waiting != w {
		// Superseded between the timer firing and acquiring the lock.
		c.mu.Unlock()
		return
	}
	c.waiting = nil
	c.timer = nil
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	// The caller went away during the quiet period.
	if err := w.ctx.Err(); err != nil {
		w.done <- outcome{err: err}
		return
	}

	if c.onFire != nil {
		c.onFire(w.query)
	}

	logger := log.Ctx(w.ctx)
	results, err := c.searcher.Search(w.ctx, w.query)
	if ctxErr := w.ctx.Err(); ctxErr != nil && err != nil {
		w.done <- outcome{err: ctxErr}
		return
	}

	c.mu.Lock()
	latest := c.issued
	c.mu.Unlock()
	if seq != latest {
		logger.Debug().Str("query", w.query).Uint64("seq", seq).Uint64("latest", latest).Msg("Discarding stale search response")
		w.done <- outcome{err: ErrStale}
		return
	}

	result := Result{Query: w.query}
	switch {
	case err == nil && len(results) > 0:
		result.Kind = KindResults
		result.Results = results
	case err == nil, errors.Is(err, backend.ErrUnsuccessful):
		result.Kind = KindEmpty
	default:
		logger.Error().Err(err).Str("query", w.query).Msg("Guest search failed")
		result.Kind = KindFailed
	}
	w.done <- outcome{result: result}
}
