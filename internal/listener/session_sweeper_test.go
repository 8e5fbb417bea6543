package listener

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingExpirer struct {
	calls atomic.Int64
}

func (c *countingExpirer) ExpireIdleSessions() int {
	c.calls.Add(1)
	return 2
}

func TestSessionSweeper_Sweeps(t *testing.T) {
	expirer := &countingExpirer{}
	sweeper := NewSessionSweeper(expirer, 5*time.Millisecond)
	sweeper.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for expirer.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("Expected at least 3 sweeps, got %d", expirer.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}

	sweeper.Stop()
	calls := expirer.calls.Load()
	if sweeper.Swept() < 6 {
		t.Errorf("Expected at least 6 swept sessions, got %d", sweeper.Swept())
	}

	time.Sleep(20 * time.Millisecond)
	if expirer.calls.Load() != calls {
		t.Errorf("Expected no sweeps after Stop")
	}

	// A second Stop must not panic or block.
	sweeper.Stop()
}

func TestSessionSweeper_StopsOnContextCancel(t *testing.T) {
	sweeper := NewSessionSweeper(&countingExpirer{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	sweeper.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after context cancel")
	}
}

func TestSessionSweeper_Disabled(t *testing.T) {
	expirer := &countingExpirer{}
	sweeper := NewSessionSweeper(expirer, 0)
	sweeper.Start(context.Background())
	sweeper.Stop()

	if expirer.calls.Load() != 0 {
		t.Errorf("Expected disabled sweeper never to sweep, got %d calls", expirer.calls.Load())
	}
}
