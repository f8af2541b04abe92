package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps records in process memory. It backs the server
// when no database is configured and the API tests.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]ProjectRecord
	shares   map[string]ShareRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]ProjectRecord),
		shares:   make(map[string]ShareRecord),
	}
}

func (s *MemoryStore) SaveProject(_ context.Context, rec *ProjectRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if existing, ok := s.projects[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	s.projects[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) GetProject(_ context.Context, id string) (*ProjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) ListProjects(_ context.Context) ([]ProjectRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := make([]ProjectRecord, 0, len(s.projects))
	for _, rec := range s.projects {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].ID < recs[j].ID
		}
		return recs[i].CreatedAt.After(recs[j].CreatedAt)
	})
	return recs, nil
}

func (s *MemoryStore) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *MemoryStore) CreateShare(_ context.Context, rec *ShareRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.CreatedAt = time.Now().UTC()
	s.shares[rec.ID] = *rec
	return nil
}

func (s *MemoryStore) GetShare(_ context.Context, id string) (*ShareRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.shares[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *MemoryStore) Close() error { return nil }
