// Package ratelimit implements the sliding window that caps how many reply lines the
// bot may send to one channel.
package ratelimit

import (
	"sync"
	"time"
)

const (
	DefaultCapacity  = 100
	DefaultThreshold = 30 * time.Second
)

// Window is a fixed-capacity ring of admission timestamps, oldest first.
type Window struct {
	mu        sync.Mutex
	slots     []time.Time
	head      int
	size      int
	threshold time.Duration
	now       func() time.Time
}

type Option func(*Window)

func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		if now != nil {
			w.now = now
		}
	}
}

func WithThreshold(d time.Duration) Option {
	return func(w *Window) {
		if d > 0 {
			w.threshold = d
		}
	}
}

func NewWindow(capacity int, opts ...Option) *Window {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	w := &Window{
		slots:     make([]time.Time, capacity),
		threshold: DefaultThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Admit purges expired entries and then reserves n slots if all of them fit.
// It never reserves part of a batch.
func (w *Window) Admit(n int) bool {
	if n < 0 {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.purgeLocked(now)

	if len(w.slots)-w.size < n {
		return false
	}
	for i := 0; i < n; i++ {
		w.slots[(w.head+w.size)%len(w.slots)] = now
		w.size++
	}
	return true
}

func (w *Window) purgeLocked(now time.Time) {
	expired := 0
	for i := 0; i < w.size; i++ {
		ts := w.slots[(w.head+i)%len(w.slots)]
		// entradas ordenadas: la primera reciente corta el escaneo
		if now.Sub(ts) < w.threshold {
			break
		}
		expired++
	}

	if expired == 0 {
		return
	}
	if expired == w.size {
		w.head, w.size = 0, 0
		return
	}
	w.head = (w.head + expired) % len(w.slots)
	w.size -= expired
}

// Len returns the occupied slots without purging.
func (w *Window) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

func (w *Window) Cap() int {
	return len(w.slots)
}

// Free devuelve los slots libres tras purgar lo expirado.
func (w *Window) Free() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.purgeLocked(w.now())
	return len(w.slots) - w.size
}
