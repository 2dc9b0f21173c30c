package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"rentcheck/internal/compliance/models"
	"rentcheck/pkg/platform/sentinel"
	"rentcheck/pkg/requestcontext"
)

// InMemory keeps checklists in process memory. It favors clarity over
// performance; a single mutex spans the check-then-insert in InsertBatch so
// the conflict guard holds under concurrent materialization.
type InMemory struct {
	mu     sync.RWMutex
	byProp map[uuid.UUID][]models.Task
	byTask map[uuid.UUID]uuid.UUID // task -> owning property
}

func NewInMemory() *InMemory {
	return &InMemory{
		byProp: make(map[uuid.UUID][]models.Task),
		byTask: make(map[uuid.UUID]uuid.UUID),
	}
}

func (s *InMemory) ListTasks(_ context.Context, propertyID uuid.UUID) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Task{}, s.byProp[propertyID]...), nil
}

func (s *InMemory) InsertBatch(ctx context.Context, propertyID uuid.UUID, rules []models.CandidateRule) ([]models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.byProp[propertyID]) > 0 {
		return nil, sentinel.ErrConflict
	}

	now := requestcontext.Now(ctx)
	tasks := make([]models.Task, 0, len(rules))
	for i, rule := range rules {
		tasks = append(tasks, models.Task{
			ID:         uuid.New(),
			PropertyID: propertyID,
			Category:   rule.Category,
			Rule:       rule.Rule,
			Position:   i,
			CreatedAt:  now,
		})
	}
	s.byProp[propertyID] = tasks
	for _, t := range tasks {
		s.byTask[t.ID] = propertyID
	}
	return append([]models.Task{}, tasks...), nil
}

func (s *InMemory) Toggle(_ context.Context, taskID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	propertyID, ok := s.byTask[taskID]
	if !ok {
		return false, sentinel.ErrNotFound
	}
	tasks := s.byProp[propertyID]
	for i := range tasks {
		if tasks[i].ID == taskID {
			tasks[i].Completed = !tasks[i].Completed
			return tasks[i].Completed, nil
		}
	}
	return false, sentinel.ErrNotFound
}

func (s *InMemory) DeleteForProperty(_ context.Context, propertyID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.byProp[propertyID] {
		delete(s.byTask, t.ID)
	}
	delete(s.byProp, propertyID)
	return nil
}

var _ Store = (*InMemory)(nil)
