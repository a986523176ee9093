package db

import (
	"context"
	"fmt"
	"path"
	"sync"
	"time"
)

type mockEntry struct {
	value     string
	expiresAt time.Time
}

func (e mockEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MockRedisClient simulates a Redis client in memory, including key expiry.
type MockRedisClient struct {
	data    map[string]mockEntry
	mu      sync.RWMutex
	context context.Context

	// now is swappable so tests can move past a ttl without sleeping.
	now func() time.Time
}

// NewMockRedisClient initializes a new MockRedisClient.
func NewMockRedisClient(ctx context.Context) *MockRedisClient {
	return &MockRedisClient{
		data:    make(map[string]mockEntry),
		context: ctx,
		now:     time.Now,
	}
}

// SetClock replaces the clock used to evaluate expiry.
func (m *MockRedisClient) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Set stores a key-value pair in the mock Redis.
func (m *MockRedisClient) Set(key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry := mockEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// Get retrieves a value for a given key from the mock Redis.
func (m *MockRedisClient) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, exists := m.data[key]
	if !exists || entry.expired(m.now()) {
		return "", fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}
	return entry.value, nil
}

// Del removes a key from the mock Redis.
func (m *MockRedisClient) Del(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the live keys matching a glob pattern.
func (m *MockRedisClient) Keys(pattern string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := m.now()
	var keys []string
	for key, entry := range m.data {
		if entry.expired(now) {
			continue
		}
		matched, err := path.Match(pattern, key)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if matched {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// GetContext returns the mock Redis client's context.
func (m *MockRedisClient) GetContext() context.Context {
	return m.context
}

// Ping simulates a Redis Ping operation.
func (m *MockRedisClient) Ping() error {
	return nil
}
