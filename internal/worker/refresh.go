package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/mtlprog/verusns/internal/domain"
)

// SnapshotGenerator defines the interface for generating snapshots.
type SnapshotGenerator interface {
	Generate(ctx context.Context, chain string) (domain.NamespaceSnapshot, error)
}

// AfterSnapshotHook is called after each successful snapshot generation.
type AfterSnapshotHook interface {
	Export(ctx context.Context, snap domain.NamespaceSnapshot) error
}

// RefreshWorker periodically takes namespace snapshots of one chain.
type RefreshWorker struct {
	generator SnapshotGenerator
	chain     string
	interval  time.Duration
	hook      AfterSnapshotHook // optional
	logger    *slog.Logger
}

// DefaultInterval is used when a non-positive interval is configured.
const DefaultInterval = time.Hour

// NewRefreshWorker creates a new RefreshWorker. hook may be nil.
func NewRefreshWorker(generator SnapshotGenerator, chain string, interval time.Duration, hook AfterSnapshotHook) *RefreshWorker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &RefreshWorker{
		generator: generator,
		chain:     chain,
		interval:  interval,
		hook:      hook,
		logger:    slog.Default().With("worker", "refresh", "chain", chain),
	}
}

// Run generates a snapshot immediately and then once per interval.
// It blocks until the context is cancelled.
func (w *RefreshWorker) Run(ctx context.Context) {
	w.logger.Info("starting", "interval", w.interval)

	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("shutting down")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	snap, err := w.generator.Generate(ctx, w.chain)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		w.logger.Error("generation failed", "error", err)
		return
	}
	w.logger.Info("generation completed", "namespaces", len(snap.Namespaces))

	if w.hook == nil {
		return
	}
	if err := w.hook.Export(ctx, snap); err != nil {
		w.logger.Error("export hook failed", "error", err)
	} else {
		w.logger.Info("export hook completed")
	}
}
