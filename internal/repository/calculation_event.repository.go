package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"assetscore/internal/db/models/postgres/public/model"
	"assetscore/internal/db/models/postgres/public/table"
	"assetscore/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

// EventStore is the append-only audit log. Append order must be
// preserved per correlation id; Append may fail, and for the scoring
// pipeline that failure is load-bearing (it aborts the calculation).
type EventStore interface {
	Append(userID *uuid.UUID, event domain.CalculationEvent) error
	GetByCorrelationID(correlationID uuid.UUID) ([]domain.CalculationEvent, error)
}

type calculationEventRepositoryHandler struct {
	Db *sql.DB
}

func NewCalculationEventRepository(db *sql.DB) EventStore {
	return calculationEventRepositoryHandler{db}
}

func (h calculationEventRepositoryHandler) Append(userID *uuid.UUID, event domain.CalculationEvent) error {
	m := model.CalculationEvent{
		EventID:       event.EventID,
		CorrelationID: event.CorrelationID,
		UserID:        userID,
		EventType:     string(event.Type),
		Sequence:      event.Sequence,
		Payload:       string(event.Payload),
		CreatedAt:     event.CreatedAt,
	}
	query := table.CalculationEvent.INSERT(table.CalculationEvent.AllColumns).MODEL(m)

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to append %s event for correlation %s: %w", event.Type, event.CorrelationID, err)
	}

	return nil
}

func (h calculationEventRepositoryHandler) GetByCorrelationID(correlationID uuid.UUID) ([]domain.CalculationEvent, error) {
	query := table.CalculationEvent.SELECT(table.CalculationEvent.AllColumns).
		WHERE(table.CalculationEvent.CorrelationID.EQ(postgres.UUID(correlationID))).
		ORDER_BY(
			table.CalculationEvent.Sequence.ASC(),
			table.CalculationEvent.CreatedAt.ASC(),
		)

	out := []model.CalculationEvent{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to load events for correlation %s: %w", correlationID, err)
	}

	events := make([]domain.CalculationEvent, 0, len(out))
	for _, m := range out {
		events = append(events, domain.CalculationEvent{
			EventID:       m.EventID,
			CorrelationID: m.CorrelationID,
			UserID:        m.UserID,
			Type:          domain.CalculationEventType(m.EventType),
			Sequence:      m.Sequence,
			CreatedAt:     m.CreatedAt,
			Payload:       json.RawMessage(m.Payload),
		})
	}

	return events, nil
}
