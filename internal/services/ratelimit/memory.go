package ratelimit

import (
	"context"
	"sync"
	"time"

	"criticode/internal/platform/logger"
)

type window struct {
	count   int
	startAt time.Time
	length  time.Duration
}

// MemoryStore is an in-process CounterStore. Windows are anchored at the
// first request that opens them; expired windows are reaped by a background
// sweep so idle keys do not accumulate
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window

	now  func() time.Time
	done chan struct{}
	once sync.Once
}

// NewMemoryStore builds a MemoryStore and starts its sweep loop.
// sweepEvery <= 0 disables sweeping
func NewMemoryStore(sweepEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
		done:    make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweepLoop(sweepEvery)
	}
	return s
}

// Hit implements CounterStore
func (s *MemoryStore) Hit(_ context.Context, key string, length time.Duration) (int, time.Time, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || now.Sub(w.startAt) >= w.length {
		w = &window{startAt: now, length: length}
		s.windows[key] = w
	}
	w.count++
	return w.count, w.startAt.Add(w.length), nil
}

// Close stops the sweep loop
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweepLoop(every time.Duration) {
	log := logger.Named("ratelimit")
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			if n := s.sweep(); n > 0 {
				log.Debug().Int("reaped", n).Msg("expired rate windows removed")
			}
		}
	}
}

func (s *MemoryStore) sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, w := range s.windows {
		if now.Sub(w.startAt) >= w.length {
			delete(s.windows, key)
			n++
		}
	}
	return n
}
