package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/jrsteele09/go-storefront/internal/errors"
)

// memorySweepInterval is the minimum time between sweeps of expired entries.
const memorySweepInterval = time.Minute

type memoryEntry struct {
	sealed    string
	expiresAt time.Time
}

// MemoryStore is an in-process Store. Sessions do not survive a restart and are not
// shared between instances.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithStoreNowTime overrides the clock used for expiry.
func WithStoreNowTime(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		s.now = now
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(options ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Save(_ context.Context, id, sealed string, ttl time.Duration) error {
	if id == "" {
		return fmt.Errorf("[MemoryStore Save] session id is required")
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= memorySweepInterval {
		s.sweepLocked(now)
	}
	s.sessions[id] = memoryEntry{sealed: sealed, expiresAt: now.Add(ttl)}
	return nil
}

// sweepLocked drops every expired entry. s.mu must be held for writing.
func (s *MemoryStore) sweepLocked(now time.Time) {
	for id, entry := range s.sessions {
		if !now.Before(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Load(_ context.Context, id string) (string, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return "", apperrors.ErrSessionNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		_ = s.Delete(context.Background(), id)
		return "", apperrors.ErrSessionNotFound
	}
	return entry.sealed, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
