package timer

import (
	"sync"
	"time"
)

// Clock supplies wall-clock time and periodic callbacks.
type Clock interface {
	Now() time.Time
	// Every calls fn every d until stop is called. stop is idempotent and
	// may be called from inside fn.
	Every(d time.Duration, fn func()) (stop func())
}

// SystemClock is the real-time Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) Every(d time.Duration, fn func()) func() {
	t := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				// Both channels can be ready at once; prefer done.
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
