package rest

import "time"

// SetClock swaps the limiter's time source.
func (rl *ClientRateLimiter) SetClock(now func() time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.now = now
	rl.lastSweep = now()
}
