package app

import (
	"context"
	"fmt"
	"time"

	"assetscore/internal/calculator"
	"assetscore/internal/domain"
	"assetscore/internal/logger"
	"assetscore/internal/repository"

	"github.com/google/uuid"
)

type CalculationConfig struct {
	UserID            *uuid.UUID
	CriteriaVersionID uuid.UUID
	Market            *string
}

type CalculationOutput struct {
	Scores        []domain.AssetScoreResult
	Summary       *domain.ScoreSummary
	CorrelationID uuid.UUID
	Duration      time.Duration
	AssetCount    int
}

// CalculationHandler wraps the pure scoring engine in the audit trail.
// Every append is awaited: a rejected event is a failed calculation,
// because the audit record is part of the correctness contract, not
// best-effort logging.
type CalculationHandler struct {
	ScoringService calculator.ScoringService
	EventStore     repository.EventStore

	// overridable for tests
	NewCorrelationID func() uuid.UUID
}

func (h CalculationHandler) correlationID() uuid.UUID {
	if h.NewCorrelationID != nil {
		return h.NewCorrelationID()
	}
	return uuid.New()
}

// CalculateScoresWithEvents scores assets and emits, strictly in
// order, CALC_STARTED, INPUTS_CAPTURED, SCORES_COMPUTED and
// CALC_COMPLETED under one fresh correlation id.
func (h CalculationHandler) CalculateScoresWithEvents(
	ctx context.Context,
	config CalculationConfig,
	criteria []domain.CriterionRule,
	assets []domain.AssetWithFundamentals,
) (*CalculationOutput, error) {
	profile := domain.NewProfile()
	correlationID := h.correlationID()

	err := h.append(config.UserID, correlationID, domain.EventTypeCalcStarted, 1, domain.CalcStartedPayload{
		CorrelationID: correlationID,
		UserID:        config.UserID,
		Timestamp:     profile.StartTime.UTC(),
		Market:        config.Market,
	})
	if err != nil {
		return nil, err
	}
	profile.Add("calc_started")

	assetIDs := make([]uuid.UUID, 0, len(assets))
	for _, asset := range assets {
		assetIDs = append(assetIDs, asset.AssetID)
	}
	err = h.append(config.UserID, correlationID, domain.EventTypeInputsCaptured, 2, domain.InputsCapturedPayload{
		CorrelationID:     correlationID,
		CriteriaVersionID: config.CriteriaVersionID,
		Criteria:          criteria,
		AssetIDs:          assetIDs,
		Assets:            assets,
	})
	if err != nil {
		return nil, err
	}
	profile.Add("inputs_captured")

	scores := h.ScoringService.CalculateScores(criteria, assets, config.CriteriaVersionID)
	profile.Add("scores_calculated")

	err = h.append(config.UserID, correlationID, domain.EventTypeScoresComputed, 3, domain.ScoresComputedPayload{
		CorrelationID: correlationID,
		Results:       scores,
	})
	if err != nil {
		return nil, err
	}

	duration := profile.End()
	err = h.append(config.UserID, correlationID, domain.EventTypeCalcCompleted, 4, domain.CalcCompletedPayload{
		CorrelationID: correlationID,
		DurationMs:    duration.Milliseconds(),
		AssetCount:    len(assets),
		Status:        domain.CalculationStatusSuccess,
	})
	if err != nil {
		return nil, err
	}

	summary, err := calculator.SummarizeScores(scores)
	if err != nil {
		// advisory only - an empty run still returns its (empty) scores
		logger.FromContext(ctx).Warnw("failed to summarize scores", "error", err, "correlationId", correlationID)
		summary = nil
	}

	return &CalculationOutput{
		Scores:        scores,
		Summary:       summary,
		CorrelationID: correlationID,
		Duration:      duration,
		AssetCount:    len(assets),
	}, nil
}

func (h CalculationHandler) append(
	userID *uuid.UUID,
	correlationID uuid.UUID,
	eventType domain.CalculationEventType,
	sequence int32,
	payload interface{},
) error {
	event, err := domain.NewCalculationEvent(correlationID, userID, eventType, sequence, payload)
	if err != nil {
		return err
	}
	if err := h.EventStore.Append(userID, event); err != nil {
		return fmt.Errorf("failed to record %s: %w", eventType, err)
	}
	return nil
}
