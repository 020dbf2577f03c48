// Package worker runs the periodic digest sweep that reports goals falling
// behind their pledge schedule.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"nestegg/internal/services"
)

// DigestWorker drives the digest processor on a fixed interval. It owns the
// loop lifecycle only; the sweep logic lives in the processor.
type DigestWorker struct {
	processor *services.DigestProcessor
	interval  time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewDigestWorker(processor *services.DigestProcessor, interval time.Duration) *DigestWorker {
	return &DigestWorker{
		processor: processor,
		interval:  interval,
	}
}

// Start begins the digest loop. Returns an error if already running.
func (w *DigestWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("digest worker is already running")
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	go w.runLoop(ctx)

	slog.InfoContext(ctx, "Digest worker started", "interval", w.interval)
	return nil
}

// Stop gracefully stops the worker and waits for the loop to exit.
func (w *DigestWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		slog.InfoContext(ctx, "Digest worker stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Digest worker stop timed out")
		return ctx.Err()
	}

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()
	return nil
}

// IsRunning reports whether the loop is active.
func (w *DigestWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *DigestWorker) runLoop(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Sweep immediately on startup so a restart never delays a digest by a
	// full interval.
	w.sweep(ctx)

	for {
		select {
		case <-w.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *DigestWorker) sweep(ctx context.Context) {
	if err := w.processor.Run(ctx); err != nil {
		slog.ErrorContext(ctx, "Digest sweep failed", "error", err)
	}
}
