// Package memory provides in-process implementations of the governance
// collaborator interfaces. They back the application tests and local runs
// without Postgres.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	govdomain "github.com/tocampus/governance/services/governance/domain"
	"github.com/tocampus/governance/services/governance/domain/models"
)

// ContentStore implements repositories.ContentStore with a mutex-guarded map.
// Items are cloned on the way in and out so callers never share memory with
// the stored snapshot.
type ContentStore struct {
	mu          sync.Mutex
	items       map[uuid.UUID]*models.ContentItem
	transitions []models.Transition
}

// NewContentStore returns an empty ContentStore.
func NewContentStore() *ContentStore {
	return &ContentStore{items: make(map[uuid.UUID]*models.ContentItem)}
}

func (s *ContentStore) Create(_ context.Context, item *models.ContentItem, t models.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return govdomain.ErrVersionConflict
	}
	item.Version = 1
	s.items[item.ID] = item.Clone()
	s.transitions = append(s.transitions, t)
	return nil
}

func (s *ContentStore) Get(_ context.Context, id uuid.UUID) (*models.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, govdomain.ErrContentNotFound
	}
	return item.Clone(), nil
}

func (s *ContentStore) Update(_ context.Context, item *models.ContentItem, expectedVersion int64, t models.Transition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[item.ID]
	if !ok {
		return govdomain.ErrContentNotFound
	}
	if current.Version != expectedVersion {
		return govdomain.ErrVersionConflict
	}
	item.Version = expectedVersion + 1
	s.items[item.ID] = item.Clone()
	s.transitions = append(s.transitions, t)
	return nil
}

// Transitions returns every transition written so far, in commit order.
func (s *ContentStore) Transitions() []models.Transition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Transition(nil), s.transitions...)
}
