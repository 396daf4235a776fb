package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory with an optional TTL.
type MemoryStore struct {
	ttl    time.Duration
	now    func() time.Time
	mu     sync.RWMutex
	items  map[string]Record
	latest map[string]string
}

// NewMemoryStore returns an empty store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		now:    time.Now,
		items:  make(map[string]Record),
		latest: make(map[string]string),
	}
}

func (s *MemoryStore) Save(_ context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[rec.ID] = rec
	s.latest[recordTeamKey(rec)] = rec.ID
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	rec, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	if s.expired(rec) {
		s.delete(id)
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) Latest(ctx context.Context, teamID string, year, week int) (Record, error) {
	s.mu.RLock()
	id, ok := s.latest[teamKey(teamID, year, week)]
	s.mu.RUnlock()
	if !ok {
		return Record{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) expired(rec Record) bool {
	return s.ttl > 0 && s.now().Sub(rec.CreatedAt) > s.ttl
}

func (s *MemoryStore) delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.items[id]; ok {
		key := recordTeamKey(rec)
		if s.latest[key] == id {
			delete(s.latest, key)
		}
		delete(s.items, id)
	}
}
