package worker

import (
	"context"
	"testing"
	"time"

	"nestegg/internal/finance"
	"nestegg/internal/services"
	"nestegg/internal/storage"
)

func newTestWorker(interval time.Duration) *DigestWorker {
	svc := services.NewGoalService(storage.NewMemoryRepository(), finance.NewCalculator(0))
	return NewDigestWorker(services.NewDigestProcessor(svc, nil), interval)
}

func TestDigestWorker_StartStop(t *testing.T) {
	w := newTestWorker(time.Hour)
	ctx := context.Background()

	if w.IsRunning() {
		t.Error("worker should not be running before Start")
	}

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !w.IsRunning() {
		t.Error("worker should be running after Start")
	}

	if err := w.Start(ctx); err == nil {
		t.Error("second Start should fail while running")
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if w.IsRunning() {
		t.Error("worker should not be running after Stop")
	}

	// Stopping an already-stopped worker is a no-op.
	if err := w.Stop(stopCtx); err != nil {
		t.Errorf("second Stop should be a no-op, got: %v", err)
	}
}

func TestDigestWorker_RestartAfterStop(t *testing.T) {
	w := newTestWorker(time.Hour)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := w.Start(ctx); err != nil {
			t.Fatalf("Start cycle %d failed: %v", i, err)
		}
		stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := w.Stop(stopCtx); err != nil {
			cancel()
			t.Fatalf("Stop cycle %d failed: %v", i, err)
		}
		cancel()
	}
}

func TestDigestWorker_ContextCancelStopsLoop(t *testing.T) {
	w := newTestWorker(10 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after context cancellation")
	}
}
