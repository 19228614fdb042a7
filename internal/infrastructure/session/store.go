package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/platefinder/backend/internal/domain"
)

// entry is a stored filtered set with its expiration
type entry struct {
	set     *domain.FilteredSet
	expires time.Time
}

// Store is a thread-safe in-memory store mapping opaque handles to
// filtered sets awaiting re-rank. Handles expire after the configured
// TTL; a caller holding an expired handle repeats the recommend call.
type Store struct {
	ttl   time.Duration
	mutex sync.RWMutex
	sets  map[string]entry
}

// NewStore creates a filtered-set store with the given TTL
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	store := &Store{
		ttl:  ttl,
		sets: make(map[string]entry),
	}

	// Sweep expired entries every 5 minutes
	go store.sweepExpired()

	return store
}

// Put stores a filtered set and returns its opaque handle
func (s *Store) Put(ctx context.Context, set *domain.FilteredSet) (string, error) {
	if set == nil {
		return "", domain.ErrInvalidRequest
	}

	handle := uuid.NewString()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sets[handle] = entry{set: set, expires: time.Now().Add(s.ttl)}

	return handle, nil
}

// Get resolves a handle to its filtered set
func (s *Store) Get(ctx context.Context, handle string) (*domain.FilteredSet, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, exists := s.sets[handle]
	if !exists || time.Now().After(e.expires) {
		return nil, domain.ErrFilteredSetNotFound
	}

	return e.set, nil
}

// Delete removes a handle and its filtered set
func (s *Store) Delete(ctx context.Context, handle string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.sets, handle)
	return nil
}

// Size returns the current number of stored sets (for debugging/monitoring)
func (s *Store) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sets)
}

// sweepExpired removes expired entries periodically
func (s *Store) sweepExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mutex.Lock()
		now := time.Now()
		for handle, e := range s.sets {
			if now.After(e.expires) {
				delete(s.sets, handle)
			}
		}
		s.mutex.Unlock()
	}
}
