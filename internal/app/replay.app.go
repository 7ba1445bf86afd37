package app

import (
	"context"
	"fmt"

	"assetscore/internal/calculator"
	"assetscore/internal/domain"
	"assetscore/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
)

type ReplayResult struct {
	CorrelationID uuid.UUID
	Match         bool
	Diff          string
	AssetCount    int
}

// ReplayHandler re-verifies a historical calculation: it feeds the
// inputs recorded in INPUTS_CAPTURED back through the pure scoring
// engine and diffs the recomputed scores against the recorded
// SCORES_COMPUTED results. Timestamps aside, the two must be
// identical - that is the replay guarantee.
type ReplayHandler struct {
	EventStore     repository.EventStore
	ScoringService calculator.ScoringService
}

func (h ReplayHandler) VerifyCalculation(ctx context.Context, correlationID uuid.UUID) (*ReplayResult, error) {
	events, err := h.EventStore.GetByCorrelationID(correlationID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("no events recorded for correlation %s", correlationID)
	}

	var inputs *domain.InputsCapturedPayload
	var recorded *domain.ScoresComputedPayload
	for _, event := range events {
		switch event.Type {
		case domain.EventTypeInputsCaptured:
			payload := domain.InputsCapturedPayload{}
			if err := event.UnmarshalPayload(domain.EventTypeInputsCaptured, &payload); err != nil {
				return nil, err
			}
			inputs = &payload
		case domain.EventTypeScoresComputed:
			payload := domain.ScoresComputedPayload{}
			if err := event.UnmarshalPayload(domain.EventTypeScoresComputed, &payload); err != nil {
				return nil, err
			}
			recorded = &payload
		}
	}
	if inputs == nil {
		return nil, fmt.Errorf("correlation %s has no INPUTS_CAPTURED event", correlationID)
	}
	if recorded == nil {
		return nil, fmt.Errorf("correlation %s has no SCORES_COMPUTED event", correlationID)
	}

	recomputed := h.ScoringService.CalculateScores(inputs.Criteria, inputs.Assets, inputs.CriteriaVersionID)

	diff := cmp.Diff(
		recorded.Results,
		recomputed,
		cmpopts.IgnoreFields(domain.AssetScoreResult{}, "CalculatedAt"),
	)

	return &ReplayResult{
		CorrelationID: correlationID,
		Match:         diff == "",
		Diff:          diff,
		AssetCount:    len(recomputed),
	}, nil
}
