package services

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/SscSPs/tax_engagement_app/internal/apperrors"
	"github.com/SscSPs/tax_engagement_app/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// viewFetcher runs the dependent fetches of a view concurrently. A plain
// errgroup.Group is used so that one failed fetch never cancels its siblings.
type viewFetcher struct {
	ctx      context.Context
	base     *BaseService
	group    errgroup.Group
	mu       sync.Mutex
	degraded map[string]bool
}

func newViewFetcher(ctx context.Context, base *BaseService) *viewFetcher {
	return &viewFetcher{ctx: ctx, base: base, degraded: make(map[string]bool)}
}

// aggregate runs fn concurrently. If it fails, the aggregate keeps its empty
// default and is reported as degraded instead of failing the view. fn must only
// assign its result once it has succeeded.
func (f *viewFetcher) aggregate(name string, fn func(ctx context.Context) error) {
	f.group.Go(func() error {
		if err := fn(f.ctx); err != nil {
			failure := &apperrors.PartialAggregationFailure{Aggregate: name, Err: err}
			f.base.LogWarn(f.ctx, "View aggregate degraded",
				slog.String("aggregate", name),
				slog.String("error", failure.Error()))
			f.mu.Lock()
			f.degraded[name] = true
			f.mu.Unlock()
		}
		return nil
	})
}

// require runs fn concurrently; its error fails the whole view.
func (f *viewFetcher) require(fn func(ctx context.Context) error) {
	f.group.Go(func() error {
		return fn(f.ctx)
	})
}

// wait blocks until every fetch has returned.
func (f *viewFetcher) wait() error {
	return f.group.Wait()
}

func (f *viewFetcher) failed(names ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, name := range names {
		if f.degraded[name] {
			return true
		}
	}
	return false
}

func (f *viewFetcher) meta() domain.ViewMeta {
	f.mu.Lock()
	defer f.mu.Unlock()
	meta := domain.ViewMeta{}
	for name := range f.degraded {
		meta.Degraded = append(meta.Degraded, name)
	}
	sort.Strings(meta.Degraded)
	return meta
}
