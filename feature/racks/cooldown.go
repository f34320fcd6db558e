package racks

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Cooldown pauses scanning on a rack for a fixed window after each accepted scan.
type Cooldown struct {
	mu       sync.RWMutex
	window   time.Duration
	limiters map[string]*rate.Limiter
}

// NewCooldown creates a per-rack cooldown. A zero window disables it.
func NewCooldown(window time.Duration) *Cooldown {
	return &Cooldown{
		window:   window,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow reports whether rackID may accept a scan now, consuming the slot if so.
func (c *Cooldown) Allow(rackID string) bool {
	if c.window <= 0 {
		return true
	}
	return c.limiter(rackID).Allow()
}

// Forget drops the limiter of a deleted or renamed rack.
func (c *Cooldown) Forget(rackID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.limiters, rackID)
}

func (c *Cooldown) limiter(rackID string) *rate.Limiter {
	c.mu.RLock()
	l, ok := c.limiters[rackID]
	c.mu.RUnlock()
	if ok {
		return l
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// another goroutine may have created it meanwhile
	if l, ok = c.limiters[rackID]; !ok {
		l = rate.NewLimiter(rate.Every(c.window), 1)
		c.limiters[rackID] = l
	}
	return l
}
