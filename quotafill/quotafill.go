// Package quotafill decorates a paging.Paginator with post-fetch
// filtering: it iteratively fetches batches and applies a filter
// function (e.g. authorization, soft-delete exclusion) until the
// requested page size is filled or a safeguard trips, using an
// adaptive backoff on the per-iteration fetch size so a low filter
// pass rate doesn't take unbounded iterations to converge.
package quotafill

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nrfta/keyset-go"
)

const (
	defaultMaxIterations      = 5
	defaultMaxRecordsExamined = 100
	defaultTimeout            = 3 * time.Second
	defaultPageSize           = 50
)

// defaultBackoffMultipliers is a Fibonacci-like progression: fetch
// exactly what's missing on the first pass, then overscan progressively
// harder as the filter proves more selective.
var defaultBackoffMultipliers = []int{1, 2, 3, 5, 8}

const (
	safeguardTimeout       = "timeout"
	safeguardMaxRecords    = "max_records"
	safeguardMaxIterations = "max_iterations"
)

// FilterFunc is applied to each fetched batch; items it drops do not
// count toward the requested page size, triggering another iteration.
type FilterFunc func(ctx context.Context, rows []paging.Row) ([]paging.Row, error)

// Metadata reports how much work a quota-fill call actually did, for
// callers who want to log or alert on expensive filter passes.
type Metadata struct {
	QueryTimeMs    int64
	ItemsExamined  int
	IterationsUsed int
	SafeguardHit   *string
}

// Result is a quota-filled page plus the metadata describing how it
// was assembled.
type Result struct {
	Page     *paging.Page[paging.Row]
	Metadata Metadata
}

// Option configures a Wrapper.
type Option func(*config)

type config struct {
	maxIterations      int
	maxRecordsExamined int
	timeout            time.Duration
	backoffMultipliers []int
}

func WithMaxIterations(n int) Option {
	return func(c *config) { c.maxIterations = n }
}

func WithMaxRecordsExamined(n int) Option {
	return func(c *config) { c.maxRecordsExamined = n }
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

func WithBackoffMultipliers(multipliers []int) Option {
	return func(c *config) { c.backoffMultipliers = multipliers }
}

// Wrapper wraps a paging.Paginator with quota-fill filtering.
type Wrapper struct {
	base               *paging.Paginator
	filter             FilterFunc
	maxIterations      int
	maxRecordsExamined int
	timeout            time.Duration
	backoffMultipliers []int
}

// Wrap builds a quota-filling decorator around base.
func Wrap(base *paging.Paginator, filter FilterFunc, opts ...Option) *Wrapper {
	cfg := &config{
		maxIterations:      defaultMaxIterations,
		maxRecordsExamined: defaultMaxRecordsExamined,
		timeout:            defaultTimeout,
		backoffMultipliers: defaultBackoffMultipliers,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Wrapper{
		base:               base,
		filter:             filter,
		maxIterations:      cfg.maxIterations,
		maxRecordsExamined: cfg.maxRecordsExamined,
		timeout:            cfg.timeout,
		backoffMultipliers: cfg.backoffMultipliers,
	}
}

func (w *Wrapper) getMultiplier(iteration int) int {
	if iteration >= len(w.backoffMultipliers) {
		iteration = len(w.backoffMultipliers) - 1
	}
	return w.backoffMultipliers[iteration]
}

type iterState struct {
	filtered   []paging.Row
	examined   int
	iteration  int
	cursor     *paging.IncomingCursor
	safeguard  *string
	noMoreData bool
	lastInfo   paging.PageInfo
}

func ptr(s string) *string { return &s }

// Paginate runs req against the base paginator repeatedly, applying
// filter to each batch, until len(filtered items) fills the requested
// page size (+1, for hasNextPage detection) or a safeguard trips.
func (w *Wrapper) Paginate(ctx context.Context, req paging.PaginateRequest) (*Result, error) {
	start := time.Now()

	timeoutCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	requestedSize := req.Limit
	if requestedSize <= 0 {
		requestedSize = defaultPageSize
	}
	targetSize := requestedSize + 1

	state := &iterState{cursor: req.Cursor}

	for len(state.filtered) < targetSize && !state.noMoreData && state.iteration < w.maxIterations {
		select {
		case <-timeoutCtx.Done():
			state.safeguard = ptr(safeguardTimeout)
		default:
		}
		if state.safeguard != nil {
			break
		}

		remaining := targetSize - len(state.filtered)
		fetchSize := remaining * w.getMultiplier(state.iteration)

		if state.examined+fetchSize > w.maxRecordsExamined {
			state.safeguard = ptr(safeguardMaxRecords)
			break
		}

		iterReq := req
		iterReq.Limit = fetchSize
		iterReq.Cursor = state.cursor

		page, err := w.base.Paginate(timeoutCtx, iterReq)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				state.safeguard = ptr(safeguardTimeout)
				break
			}
			return nil, fmt.Errorf("quotafill: fetch batch (iteration %d): %w", state.iteration+1, err)
		}

		filtered, err := w.filter(timeoutCtx, page.Items)
		if err != nil {
			return nil, fmt.Errorf("quotafill: apply filter (iteration %d): %w", state.iteration+1, err)
		}

		state.filtered = append(state.filtered, filtered...)
		state.examined += len(page.Items)
		state.iteration++
		state.lastInfo = page.PageInfo

		if !page.PageInfo.HasNextPage {
			state.noMoreData = true
			break
		}
		state.cursor = &paging.IncomingCursor{NextPage: page.PageInfo.NextPage}
	}

	if state.iteration >= w.maxIterations && len(state.filtered) < targetSize && state.safeguard == nil {
		state.safeguard = ptr(safeguardMaxIterations)
	}

	return w.buildResult(ctx, state, req, requestedSize, start)
}

func (w *Wrapper) buildResult(ctx context.Context, state *iterState, req paging.PaginateRequest, requestedSize int, start time.Time) (*Result, error) {
	hasNextPage := len(state.filtered) > requestedSize

	items := state.filtered
	if len(items) > requestedSize {
		items = items[:requestedSize]
	}

	info := paging.PageInfo{
		HasNextPage: hasNextPage,
		HasPrevPage: state.lastInfo.HasPrevPage,
		StartCursor: state.lastInfo.StartCursor,
		PrevPage:    state.lastInfo.PrevPage,
	}

	if len(items) > 0 {
		startCur, err := w.base.CursorCodec.Encode(ctx, paging.ResolveCursor(items[0], req.Sorts))
		if err != nil {
			return nil, fmt.Errorf("quotafill: encode start cursor: %w", err)
		}
		info.StartCursor = &startCur

		endCur, err := w.base.CursorCodec.Encode(ctx, paging.ResolveCursor(items[len(items)-1], req.Sorts))
		if err != nil {
			return nil, fmt.Errorf("quotafill: encode end cursor: %w", err)
		}
		info.EndCursor = &endCur
		if hasNextPage {
			info.NextPage = &endCur
		}
	}

	return &Result{
		Page: &paging.Page[paging.Row]{Items: items, PageInfo: info},
		Metadata: Metadata{
			QueryTimeMs:    time.Since(start).Milliseconds(),
			ItemsExamined:  state.examined,
			IterationsUsed: state.iteration,
			SafeguardHit:   state.safeguard,
		},
	}, nil
}
