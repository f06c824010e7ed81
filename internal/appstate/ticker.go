package appstate

import (
	"sync"
	"time"
)

const (
	// AnimationInterval paces chrome easing.
	AnimationInterval = 16 * time.Millisecond
	// BlinkInterval toggles the text caret.
	BlinkInterval = 500 * time.Millisecond
)

// ticker calls fire every interval between Start and Stop. fire runs on
// the ticker goroutine and should only hand work to the event loop.
type ticker struct {
	interval time.Duration
	fire     func()

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func newTicker(interval time.Duration, fire func()) *ticker {
	return &ticker{interval: interval, fire: fire}
}

// Start begins ticking. Starting a running ticker does nothing.
func (t *ticker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		return
	}
	stop, done := make(chan struct{}), make(chan struct{})
	t.stop, t.done = stop, done
	go func() {
		defer close(done)
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		for {
			select {
			case <-tk.C:
				t.fire()
			case <-stop:
				return
			}
		}
	}()
}

// Stop halts ticking and returns once no call to fire is in flight.
func (t *ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop != nil {
		close(t.stop)
		<-t.done
		t.stop, t.done = nil, nil
	}
}

// Running reports whether the ticker is started.
func (t *ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
