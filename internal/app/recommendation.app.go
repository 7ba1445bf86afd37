package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"assetscore/internal/calculator"
	"assetscore/internal/domain"
	"assetscore/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RecommendationInput struct {
	UserID            *uuid.UUID
	PortfolioState    domain.PortfolioState
	AllocationTargets []domain.AllocationTarget
	Contribution      decimal.Decimal
	Dividends         decimal.Decimal
}

type RecommendationOutput struct {
	RecommendationID uuid.UUID
	CorrelationID    uuid.UUID
	TotalInvestable  string
	Items            []domain.RecommendationItem
	Duration         time.Duration
}

// RecommendationHandler distributes an investable amount across assets
// by allocation gap, under the same event-sequence contract as
// scoring. An internal failure is recorded as CALC_COMPLETED
// status=failed and then returned to the caller - the audit trail
// observes the failure and so does the caller.
type RecommendationHandler struct {
	EventStore repository.EventStore

	NewCorrelationID func() uuid.UUID
}

func (h RecommendationHandler) correlationID() uuid.UUID {
	if h.NewCorrelationID != nil {
		return h.NewCorrelationID()
	}
	return uuid.New()
}

func (h RecommendationHandler) GenerateRecommendations(
	ctx context.Context,
	input RecommendationInput,
) (*RecommendationOutput, error) {
	profile := domain.NewProfile()
	correlationID := h.correlationID()
	appender := CalculationHandler{EventStore: h.EventStore}

	err := appender.append(input.UserID, correlationID, domain.EventTypeCalcStarted, 1, domain.CalcStartedPayload{
		CorrelationID: correlationID,
		UserID:        input.UserID,
		Timestamp:     profile.StartTime.UTC(),
	})
	if err != nil {
		return nil, err
	}

	totalInvestable := input.Contribution.Add(input.Dividends)

	err = appender.append(input.UserID, correlationID, domain.EventTypeRecsInputsCaptured, 2, domain.RecsInputsCapturedPayload{
		CorrelationID:     correlationID,
		PortfolioState:    input.PortfolioState,
		AllocationTargets: input.AllocationTargets,
		Contribution:      input.Contribution,
		Dividends:         input.Dividends,
		TotalInvestable:   totalInvestable,
	})
	if err != nil {
		return nil, err
	}

	items, err := AllocateByGaps(input.PortfolioState, input.AllocationTargets, totalInvestable)
	if err != nil {
		return nil, h.completeFailed(input.UserID, correlationID, profile, len(input.AllocationTargets), err)
	}

	recommendationID := uuid.New()
	err = appender.append(input.UserID, correlationID, domain.EventTypeRecsComputed, 3, domain.RecsComputedPayload{
		CorrelationID:    correlationID,
		RecommendationID: recommendationID,
		TotalInvestable:  calculator.FormatFixed(totalInvestable),
		Items:            items,
	})
	if err != nil {
		return nil, err
	}

	duration := profile.End()
	err = appender.append(input.UserID, correlationID, domain.EventTypeCalcCompleted, 4, domain.CalcCompletedPayload{
		CorrelationID: correlationID,
		DurationMs:    duration.Milliseconds(),
		AssetCount:    len(input.AllocationTargets),
		Status:        domain.CalculationStatusSuccess,
	})
	if err != nil {
		return nil, err
	}

	return &RecommendationOutput{
		RecommendationID: recommendationID,
		CorrelationID:    correlationID,
		TotalInvestable:  calculator.FormatFixed(totalInvestable),
		Items:            items,
		Duration:         duration,
	}, nil
}

// completeFailed records the failure in the audit trail, then hands
// the original error back. If even the failure event cannot be
// appended, that error wins - the caller must hear about the sink.
func (h RecommendationHandler) completeFailed(
	userID *uuid.UUID,
	correlationID uuid.UUID,
	profile *domain.CalculationProfile,
	assetCount int,
	cause error,
) error {
	message := cause.Error()
	appender := CalculationHandler{EventStore: h.EventStore}
	err := appender.append(userID, correlationID, domain.EventTypeCalcCompleted, 3, domain.CalcCompletedPayload{
		CorrelationID: correlationID,
		DurationMs:    profile.End().Milliseconds(),
		AssetCount:    assetCount,
		Status:        domain.CalculationStatusFailed,
		ErrorMessage:  &message,
	})
	if err != nil {
		return err
	}
	return cause
}

// AllocateByGaps splits totalInvestable across targets proportionally
// to each asset's allocation gap: how far its current value sits below
// its target share of the post-investment portfolio. Assets at or
// above target get nothing. When no asset is under target the amount
// is split by target weight. All math runs at full precision; amounts
// are formatted once at the end.
func AllocateByGaps(
	portfolio domain.PortfolioState,
	targets []domain.AllocationTarget,
	totalInvestable decimal.Decimal,
) ([]domain.RecommendationItem, error) {
	if totalInvestable.IsNegative() {
		return nil, fmt.Errorf("investable amount must be non-negative, got %s", totalInvestable)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("cannot allocate without allocation targets")
	}

	weightSum := decimal.Zero
	for _, target := range targets {
		if target.TargetWeight.IsNegative() {
			return nil, fmt.Errorf("target weight for %s must be non-negative, got %s", target.Symbol, target.TargetWeight)
		}
		weightSum = weightSum.Add(target.TargetWeight)
	}
	if weightSum.Sub(decimal.NewFromInt(1)).Abs().GreaterThan(decimal.NewFromFloat(0.0001)) {
		return nil, fmt.Errorf("target weights should sum to 1, got %s", weightSum)
	}

	// iteration order must be deterministic for replay
	ordered := make([]domain.AllocationTarget, len(targets))
	copy(ordered, targets)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Symbol < ordered[j].Symbol
	})

	projected := portfolio.TotalValue().Add(totalInvestable)

	gaps := make([]decimal.Decimal, len(ordered))
	gapSum := decimal.Zero
	for i, target := range ordered {
		current := portfolio.Positions[target.Symbol]
		gap := target.TargetWeight.Mul(projected).Sub(current)
		if gap.IsNegative() {
			gap = decimal.Zero
		}
		gaps[i] = gap
		gapSum = gapSum.Add(gap)
	}

	items := make([]domain.RecommendationItem, 0, len(ordered))
	for i, target := range ordered {
		var amount decimal.Decimal
		if gapSum.IsPositive() {
			amount = totalInvestable.Mul(gaps[i]).Div(gapSum)
		} else {
			// everything at or above target: fall back to target weights
			amount = totalInvestable.Mul(target.TargetWeight)
		}
		items = append(items, domain.RecommendationItem{
			AssetID:       target.AssetID,
			Symbol:        target.Symbol,
			Amount:        calculator.FormatFixed(amount),
			AllocationGap: calculator.FormatFixed(gaps[i]),
		})
	}

	return items, nil
}
