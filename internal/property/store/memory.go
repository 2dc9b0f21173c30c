package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"rentcheck/internal/property/models"
	"rentcheck/pkg/platform/sentinel"
)

// InMemory keeps properties in process memory for dev mode and tests.
type InMemory struct {
	mu         sync.RWMutex
	properties map[uuid.UUID]models.Property
}

func NewInMemory() *InMemory {
	return &InMemory{properties: make(map[uuid.UUID]models.Property)}
}

func (s *InMemory) Create(_ context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[property.ID] = *property
	return nil
}

func (s *InMemory) Get(_ context.Context, id uuid.UUID) (*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.properties[id]; ok {
		return &p, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemory) List(_ context.Context) ([]*models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *InMemory) Update(_ context.Context, property *models.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[property.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.properties[property.ID] = *property
	return nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.properties[id]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.properties, id)
	return nil
}

var _ Store = (*InMemory)(nil)
