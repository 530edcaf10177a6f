package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is an in-process fixed-window counter. State is private to
// one instance and lost on restart, so it is the fallback when Redis is
// unavailable and the double used in tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	config  *Config
	windows map[string]*window

	// injectable for tests
	now func() time.Time
}

type window struct {
	count    int
	resetsAt time.Time
}

func NewMemoryLimiter(config *Config) *MemoryLimiter {
	return &MemoryLimiter{
		config:  config,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (m *MemoryLimiter) IsAllowed(_ context.Context, clientIP string, limitType LimitType) (*Result, error) {
	limit := m.config.limitFor(limitType)
	if !m.config.Enabled {
		return allowAll(limit, m.config.WindowDuration), nil
	}

	key := string(limitType) + ":" + clientIP
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked(now)

	w, ok := m.windows[key]
	if !ok || now.After(w.resetsAt) {
		w = &window{resetsAt: now.Add(m.config.WindowDuration)}
		m.windows[key] = w
	}
	w.count++

	remaining := limit - w.count
	if remaining < 0 {
		remaining = 0
	}

	return &Result{
		Allowed:   w.count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: w.resetsAt.Unix(),
	}, nil
}

// sweepLocked drops expired windows opportunistically on each check.
func (m *MemoryLimiter) sweepLocked(now time.Time) {
	for key, w := range m.windows {
		if now.After(w.resetsAt) {
			delete(m.windows, key)
		}
	}
}
