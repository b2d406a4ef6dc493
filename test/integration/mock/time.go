package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. It stands still until moved.
type Time struct {
	mu      sync.Mutex
	current time.Time
}

func NewTime() *Time {
	return &Time{current: time.Now().UTC()}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	t.current = currentTime
	t.mu.Unlock()
}

func (t *Time) Advance(d time.Duration) {
	t.mu.Lock()
	t.current = t.current.Add(d)
	t.mu.Unlock()
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}
