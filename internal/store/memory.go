package store

import (
	"sync"
	"time"

	"github.com/i474232898/weather-forecast-gateway/internal/weather"
)

type entry struct {
	snapshot weather.WeatherSnapshot
	savedAt  time.Time
}

// MemoryStore is a concurrency-safe in-memory cache of forecast snapshots,
// keyed by normalized location.
type MemoryStore struct {
	mu sync.RWMutex

	data map[string]entry

	// retention configuration
	maxEntries int           // max number of cached locations (0 = unlimited)
	ttl        time.Duration // how long a snapshot stays fresh

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryStore(maxEntries int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]entry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Save stores a snapshot and enforces retention.
func (s *MemoryStore) Save(key string, snapshot weather.WeatherSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.data[key] = entry{snapshot: snapshot, savedAt: now}

	s.purgeLocked(now)

	// Enforce retention by count, oldest first.
	for s.maxEntries > 0 && len(s.data) > s.maxEntries {
		var (
			oldestKey string
			oldest    time.Time
		)
		for k, e := range s.data {
			if oldestKey == "" || e.savedAt.Before(oldest) {
				oldestKey, oldest = k, e.savedAt
			}
		}
		delete(s.data, oldestKey)
	}
}

// Get returns a snapshot that is younger than the TTL.
func (s *MemoryStore) Get(key string) (weather.WeatherSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	if !ok || s.expired(e, s.now()) {
		return weather.WeatherSnapshot{}, false
	}
	return e.snapshot, true
}

// Purge drops expired snapshots and returns how many were removed.
func (s *MemoryStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.purgeLocked(s.now())
}

// Len returns the number of cached snapshots, fresh or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) purgeLocked(now time.Time) int {
	removed := 0
	for k, e := range s.data {
		if s.expired(e, now) {
			delete(s.data, k)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) expired(e entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.savedAt) >= s.ttl
}
