package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CalculationEventType string

const (
	EventTypeCalcStarted        CalculationEventType = "CALC_STARTED"
	EventTypeInputsCaptured     CalculationEventType = "INPUTS_CAPTURED"
	EventTypeScoresComputed     CalculationEventType = "SCORES_COMPUTED"
	EventTypeCalcCompleted      CalculationEventType = "CALC_COMPLETED"
	EventTypeRecsInputsCaptured CalculationEventType = "RECS_INPUTS_CAPTURED"
	EventTypeRecsComputed       CalculationEventType = "RECS_COMPUTED"
	EventTypeCurrencyConverted  CalculationEventType = "CURRENCY_CONVERTED"
)

const (
	CalculationStatusSuccess = "success"
	CalculationStatusFailed  = "failed"
)

// CalculationEvent is the envelope every audit event travels in. All
// events of one calculation run share one CorrelationID and carry a
// monotonically increasing Sequence, which is what readers order by.
type CalculationEvent struct {
	EventID       uuid.UUID            `json:"eventId"`
	CorrelationID uuid.UUID            `json:"correlationId"`
	UserID        *uuid.UUID           `json:"userId"`
	Type          CalculationEventType `json:"type"`
	Sequence      int32                `json:"sequence"`
	CreatedAt     time.Time            `json:"createdAt"`
	Payload       json.RawMessage      `json:"payload"`
}

func NewCalculationEvent(
	correlationID uuid.UUID,
	userID *uuid.UUID,
	eventType CalculationEventType,
	sequence int32,
	payload interface{},
) (CalculationEvent, error) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		return CalculationEvent{}, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	return CalculationEvent{
		EventID:       uuid.New(),
		CorrelationID: correlationID,
		UserID:        userID,
		Type:          eventType,
		Sequence:      sequence,
		CreatedAt:     time.Now().UTC(),
		Payload:       bytes,
	}, nil
}

// UnmarshalPayload decodes the event payload into out, verifying the
// envelope type matches what the caller expects.
func (e CalculationEvent) UnmarshalPayload(expected CalculationEventType, out interface{}) error {
	if e.Type != expected {
		return fmt.Errorf("expected %s event, got %s", expected, e.Type)
	}
	if err := json.Unmarshal(e.Payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %w", e.Type, err)
	}
	return nil
}

type CalcStartedPayload struct {
	CorrelationID uuid.UUID  `json:"correlationId"`
	UserID        *uuid.UUID `json:"userId"`
	Timestamp     time.Time  `json:"timestamp"`
	Market        *string    `json:"market,omitempty"`
}

// InputsCapturedPayload snapshots everything the scoring engine was
// given. The asset snapshots include fundamentals so a later replay is
// self-contained and does not depend on market data still existing.
type InputsCapturedPayload struct {
	CorrelationID     uuid.UUID               `json:"correlationId"`
	CriteriaVersionID uuid.UUID               `json:"criteriaVersionId"`
	Criteria          []CriterionRule         `json:"criteria"`
	AssetIDs          []uuid.UUID             `json:"assetIds"`
	Assets            []AssetWithFundamentals `json:"assets"`
}

type ScoresComputedPayload struct {
	CorrelationID uuid.UUID          `json:"correlationId"`
	Results       []AssetScoreResult `json:"results"`
}

type CalcCompletedPayload struct {
	CorrelationID uuid.UUID `json:"correlationId"`
	DurationMs    int64     `json:"durationMs"`
	AssetCount    int       `json:"assetCount"`
	Status        string    `json:"status"`
	ErrorMessage  *string   `json:"errorMessage,omitempty"`
}

type RecsInputsCapturedPayload struct {
	CorrelationID     uuid.UUID          `json:"correlationId"`
	PortfolioState    PortfolioState     `json:"portfolioState"`
	AllocationTargets []AllocationTarget `json:"allocationTargets"`
	Contribution      decimal.Decimal    `json:"contribution"`
	Dividends         decimal.Decimal    `json:"dividends"`
	TotalInvestable   decimal.Decimal    `json:"totalInvestable"`
}

type RecsComputedPayload struct {
	CorrelationID    uuid.UUID            `json:"correlationId"`
	RecommendationID uuid.UUID            `json:"recommendationId"`
	TotalInvestable  string               `json:"totalInvestable"`
	Items            []RecommendationItem `json:"items"`
}

type CurrencyConvertedPayload struct {
	CorrelationID uuid.UUID `json:"correlationId"`
	FromAmount    string    `json:"fromAmount"`
	ToAmount      string    `json:"toAmount"`
	FromCurrency  string    `json:"fromCurrency"`
	ToCurrency    string    `json:"toCurrency"`
	Rate          string    `json:"rate"`
	IsStaleRate   bool      `json:"isStaleRate"`
}
