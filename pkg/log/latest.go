package log

import "sync"

// Latest keeps the most recent event.
type Latest struct {
	mu    sync.RWMutex
	event Event
	ok    bool
}

// NewLatest creates an empty Latest.
func NewLatest() *Latest {
	return &Latest{}
}

// Log stores the event, replacing the previous one.
func (l *Latest) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.event = event
	l.ok = true
}

// Get returns the most recent event and whether one has been logged.
func (l *Latest) Get() (Event, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.event, l.ok
}

var _ Logger = (*Latest)(nil)
