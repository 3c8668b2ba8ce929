package bot

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"telegram-cinehub-bot/internal/infra/metrics"
)

// SubscriptionCache remembers gate verdicts per (user, channel set) so that
// rapid menu clicks do not repeat the membership round-trips. Positive
// verdicts live longer than negative ones: a verified member need not be
// re-checked on every tap, while a user who just subscribed should be
// re-admitted within seconds.
type SubscriptionCache struct {
	okTTL      time.Duration
	failTTL    time.Duration
	maxEntries int

	mu      sync.Mutex
	entries map[string]cachedVerdict

	now func() time.Time
}

type cachedVerdict struct {
	ok        bool
	expiresAt time.Time
}

func NewSubscriptionCache(okTTL, failTTL time.Duration, maxEntries int) *SubscriptionCache {
	return &SubscriptionCache{
		okTTL:      okTTL,
		failTTL:    failTTL,
		maxEntries: maxEntries,
		entries:    make(map[string]cachedVerdict),
		now:        time.Now,
	}
}

// Key builds a cache key that is stable under channel-set ordering.
func (c *SubscriptionCache) Key(userID int64, channels []int64) string {
	sorted := make([]int64, len(channels))
	copy(sorted, channels)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var b strings.Builder
	b.WriteString(strconv.FormatInt(userID, 10))
	b.WriteByte('|')
	for i, id := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

// Get returns the cached verdict. An expired entry is removed and reported
// as absent, never served stale.
func (c *SubscriptionCache) Get(key string) (ok, found bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return false, false
	}
	if !entry.expiresAt.After(c.now()) {
		delete(c.entries, key)
		return false, false
	}
	return entry.ok, true
}

// Put stores a verdict with the TTL class matching its sign. When the cache
// grows past maxEntries it first purges expired entries; if still over, it
// clears entirely. Clearing costs extra verification calls but never serves
// a verdict past its TTL.
func (c *SubscriptionCache) Put(key string, ok bool) {
	ttl := c.okTTL
	if !ok {
		ttl = c.failTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.entries[key] = cachedVerdict{ok: ok, expiresAt: now.Add(ttl)}

	if c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		for k, v := range c.entries {
			if !v.expiresAt.After(now) {
				delete(c.entries, k)
			}
		}
		if len(c.entries) > c.maxEntries {
			c.entries = make(map[string]cachedVerdict)
			metrics.IncSubCacheSweep("clear")
		} else {
			metrics.IncSubCacheSweep("purge")
		}
	}
}

func (c *SubscriptionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
