package sim

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoopRunsUntilStopped(t *testing.T) {
	l := NewLoop()
	var count atomic.Uint64
	reached := make(chan struct{})

	err := l.Start(context.Background(), 200, func(frame uint64) {
		if count.Add(1) == 3 {
			close(reached)
		}
	})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	select {
	case <-reached:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not tick")
	}

	l.Stop()
	if l.Running() {
		t.Error("loop still running after Stop")
	}

	after := count.Load()
	time.Sleep(50 * time.Millisecond)
	if count.Load() != after {
		t.Errorf("callback ran after Stop: %d -> %d", after, count.Load())
	}
}

func TestLoopStartTwice(t *testing.T) {
	l := NewLoop()
	defer l.Stop()

	if err := l.Start(context.Background(), 30, func(uint64) {}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := l.Start(context.Background(), 30, func(uint64) {}); !errors.Is(err, ErrLoopRunning) {
		t.Errorf("expected ErrLoopRunning, got %v", err)
	}
}

func TestLoopInvalidFPS(t *testing.T) {
	l := NewLoop()
	if err := l.Start(context.Background(), 0, func(uint64) {}); !errors.Is(err, ErrInvalidFPS) {
		t.Errorf("expected ErrInvalidFPS, got %v", err)
	}
}

func TestLoopStopIdle(t *testing.T) {
	l := NewLoop()
	l.Stop()
	if l.Running() {
		t.Error("idle loop reports running")
	}
}

func TestLoopRestart(t *testing.T) {
	l := NewLoop()
	if err := l.Start(context.Background(), 100, func(uint64) {}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	l.Stop()

	frames := make(chan uint64, 1)
	if err := l.Start(context.Background(), 100, func(f uint64) {
		select {
		case frames <- f:
		default:
		}
	}); err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	defer l.Stop()

	select {
	case f := <-frames:
		if f != 1 {
			t.Errorf("expected frame counter to restart at 1, got %d", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("restarted loop did not tick")
	}
}

func TestLoopRestartAfterParentCancel(t *testing.T) {
	l := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	if err := l.Start(ctx, 100, func(uint64) {}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for l.Running() {
		if time.Now().After(deadline) {
			t.Fatal("loop still running after parent cancel")
		}
		time.Sleep(5 * time.Millisecond)
	}

	ticked := make(chan struct{}, 1)
	if err := l.Start(context.Background(), 100, func(uint64) {
		select {
		case ticked <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("restart after parent cancel failed: %v", err)
	}
	defer l.Stop()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("restarted loop did not tick")
	}
}
