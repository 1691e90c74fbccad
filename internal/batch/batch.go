// Package batch runs a function over a list of items in fixed-size concurrent
// groups, pausing between groups.
package batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultGroupSize = 5
	DefaultPause     = 100 * time.Millisecond
)

// Options configures Run.
type Options struct {
	// GroupSize is the number of items in flight at once. Zero means DefaultGroupSize.
	GroupSize int
	// Pause is the delay between two groups. It is never applied before the first
	// or after the last group.
	Pause time.Duration
	// Logger receives per-group progress at debug level. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns a group size of 5 with a 100ms pause.
func DefaultOptions() Options {
	return Options{GroupSize: DefaultGroupSize, Pause: DefaultPause}
}

// Result is the outcome of fn for the item at Index.
type Result[R any] struct {
	Index int
	Value R
	Err   error
}

// OK reports whether fn succeeded for this item.
func (r Result[R]) OK() bool {
	return r.Err == nil
}

// Run calls fn for every item, GroupSize at a time, and returns one Result per
// item in input order. A failing item never affects its siblings. Every group is
// fully awaited before the next one starts. If ctx is done during a pause the
// remaining items are not started and carry ctx.Err().
func Run[T, R any](ctx context.Context, items []T, opts Options, fn func(context.Context, T) (R, error)) []Result[R] {
	size := opts.GroupSize
	if size <= 0 {
		size = DefaultGroupSize
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result[R], len(items))
	groups := lo.Chunk(items, size)

	for k, group := range groups {
		base := k * size

		if k > 0 && opts.Pause > 0 {
			if err := pause(ctx, opts.Pause); err != nil {
				logger.Warn("batch interrupted", "group", k+1, "groups", len(groups), "error", err)
				for i := base; i < len(items); i++ {
					results[i] = Result[R]{Index: i, Err: err}
				}
				return results
			}
		}

		logger.Debug("starting batch group", "group", k+1, "groups", len(groups), "items", len(group))

		var g errgroup.Group
		g.SetLimit(size)
		for i, item := range group {
			idx := base + i
			g.Go(func() error {
				v, err := fn(ctx, item)
				results[idx] = Result[R]{Index: idx, Value: v, Err: err}
				return nil
			})
		}
		// Item errors live in results so they never cancel or mask siblings.
		_ = g.Wait()
	}

	return results
}

// Groups returns how many groups Run issues for n items.
func Groups(n, groupSize int) int {
	if groupSize <= 0 {
		groupSize = DefaultGroupSize
	}
	return (n + groupSize - 1) / groupSize
}

func pause(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
