package bot

import (
	"sync"
	"time"
)

// RateLimiter is a per-user debounce: it rejects an event when the previous
// accepted event from the same user is younger than the configured interval.
// It absorbs accidental double-taps; it is not an abuse defense. State lives
// only in memory and is lost on restart, which at worst admits one extra
// action per user.
type RateLimiter struct {
	interval time.Duration

	mu       sync.Mutex
	lastSeen map[int64]time.Time

	now func() time.Time
}

func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{
		interval: interval,
		lastSeen: make(map[int64]time.Time),
		now:      time.Now,
	}
}

// Limited reports whether the event must be dropped. When it returns false
// the acceptance timestamp is recorded.
func (l *RateLimiter) Limited(userID int64) bool {
	if l.interval <= 0 {
		return false
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastSeen[userID]; ok && now.Sub(last) < l.interval {
		return true
	}
	l.lastSeen[userID] = now
	return false
}
