package sim

import (
	"context"
	"sync"
	"time"
)

// Loop is a repeating frame task with an explicit start/stop lifecycle. The
// callback runs on the loop's goroutine; hosts that own a UI thread should
// only post a message from it.
type Loop struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoop() *Loop {
	return &Loop{}
}

// Start schedules fn at fps until Stop is called or ctx is done. The frame
// argument counts callbacks from 1.
func (l *Loop) Start(ctx context.Context, fps int, fn func(frame uint64)) error {
	if fps <= 0 {
		return ErrInvalidFPS
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return ErrLoopRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel = cancel
	l.done = done

	go func() {
		defer func() {
			// A cancelled parent ends the run without Stop; release it here
			// unless Stop or a newer Start already took over.
			l.mu.Lock()
			if l.done == done {
				l.cancel, l.done = nil, nil
			}
			l.mu.Unlock()
			cancel()
			close(done)
		}()
		ticker := time.NewTicker(time.Second / time.Duration(fps))
		defer ticker.Stop()

		var frame uint64
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			// Stop may have raced the tick.
			if ctx.Err() != nil {
				return
			}
			frame++
			fn(frame)
		}
	}()

	return nil
}

// Stop cancels the next frame and waits for an in-flight callback to return.
// No callback runs after Stop returns. Stopping an idle loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}
