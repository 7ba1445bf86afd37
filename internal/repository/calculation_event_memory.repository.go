package repository

import (
	"sync"

	"assetscore/internal/domain"

	"github.com/google/uuid"
)

// inMemoryEventStore is the non-durable EventStore: the default store
// when no database is configured, and the test double for pipeline
// tests. Appends are ordered per correlation id under a single mutex.
type inMemoryEventStore struct {
	mu     sync.Mutex
	events map[uuid.UUID][]domain.CalculationEvent
	order  []uuid.UUID
}

func NewInMemoryEventStore() *inMemoryEventStore {
	return &inMemoryEventStore{
		events: map[uuid.UUID][]domain.CalculationEvent{},
	}
}

func (s *inMemoryEventStore) Append(userID *uuid.UUID, event domain.CalculationEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[event.CorrelationID]; !ok {
		s.order = append(s.order, event.CorrelationID)
	}
	event.UserID = userID
	s.events[event.CorrelationID] = append(s.events[event.CorrelationID], event)

	return nil
}

func (s *inMemoryEventStore) GetByCorrelationID(correlationID uuid.UUID) ([]domain.CalculationEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.events[correlationID]
	out := make([]domain.CalculationEvent, len(stored))
	copy(out, stored)

	return out, nil
}

// CorrelationIDs lists every correlation id seen, in first-append
// order.
func (s *inMemoryEventStore) CorrelationIDs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]uuid.UUID, len(s.order))
	copy(out, s.order)

	return out
}
