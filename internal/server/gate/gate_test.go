package gate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGate_MutualExclusion(t *testing.T) {
	t.Parallel()

	g := New()
	ctx := context.Background()

	var active int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := g.Do(ctx, func(ctx context.Context) error {
				if n := atomic.AddInt32(&active, 1); n != 1 {
					t.Errorf("expected single active task, got %d", n)
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			if err != nil {
				t.Errorf("Do error: %v", err)
			}
		}()
	}

	wg.Wait()
}

func TestGate_FIFOAdmission(t *testing.T) {
	t.Parallel()

	g := New()
	ctx := context.Background()

	// Occupy the gate so submissions pile up in the waiter queue.
	release := make(chan struct{})
	holding := make(chan struct{})
	go func() {
		_ = g.Do(ctx, func(ctx context.Context) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup

	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = g.Do(ctx, func(ctx context.Context) error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
		// Space the submissions out so each waiter is queued before the
		// next goroutine starts acquiring.
		time.Sleep(50 * time.Millisecond)
	}

	close(release)
	wg.Wait()

	for i, got := range order {
		if got != i {
			t.Fatalf("expected FIFO order [0 1 2 3 4], got %v", order)
		}
	}
}

func TestGate_ReleasedAfterError(t *testing.T) {
	t.Parallel()

	g := New()
	ctx := context.Background()

	wantErr := errors.New("task failed")
	if err := g.Do(ctx, func(ctx context.Context) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected task error to propagate, got %v", err)
	}

	// The next task must still be admitted.
	done := make(chan struct{})
	go func() {
		_ = g.Do(ctx, func(ctx context.Context) error { return nil })
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("gate not released after failing task")
	}
}

func TestGate_ContextCanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	g := New()

	release := make(chan struct{})
	holding := make(chan struct{})
	go func() {
		_ = g.Do(context.Background(), func(ctx context.Context) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Do(ctx, func(ctx context.Context) error {
		t.Error("task must not run after cancellation")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
