package calculator

import (
	"sort"
	"time"

	"assetscore/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ScoringService interface {
	CalculateScores(
		criteria []domain.CriterionRule,
		assets []domain.AssetWithFundamentals,
		criteriaVersionID uuid.UUID,
	) []domain.AssetScoreResult
}

type scoringServiceHandler struct {
	now func() time.Time
}

func NewScoringService() ScoringService {
	return scoringServiceHandler{now: time.Now}
}

// NewScoringServiceWithClock pins the result timestamp; replay and
// determinism tests depend on it.
func NewScoringServiceWithClock(now func() time.Time) ScoringService {
	return scoringServiceHandler{now: now}
}

// CalculateScores runs every criterion against every asset. The outer
// loop is criteria in sort order, the inner loop is assets - the
// breakdown for a given asset must list criteria in the same order
// every run, and any future weighting or early-exit behavior must see
// criteria in encounter order. Totals accumulate as full-precision
// decimals and are formatted exactly once at the end.
func (h scoringServiceHandler) CalculateScores(
	criteria []domain.CriterionRule,
	assets []domain.AssetWithFundamentals,
	criteriaVersionID uuid.UUID,
) []domain.AssetScoreResult {
	ordered := make([]domain.CriterionRule, len(criteria))
	copy(ordered, criteria)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].SortOrder != ordered[j].SortOrder {
			return ordered[i].SortOrder < ordered[j].SortOrder
		}
		return ordered[i].CriterionID.String() < ordered[j].CriterionID.String()
	})

	totals := make([]decimal.Decimal, len(assets))
	breakdowns := make([][]domain.CriterionResult, len(assets))
	for i := range assets {
		breakdowns[i] = make([]domain.CriterionResult, 0, len(ordered))
	}

	for _, rule := range ordered {
		for i, asset := range assets {
			criterionResult := EvaluateCriterion(rule, asset)
			breakdowns[i] = append(breakdowns[i], criterionResult)
			if criterionResult.PointsAwarded != 0 {
				totals[i] = totals[i].Add(decimal.NewFromInt32(criterionResult.PointsAwarded))
			}
		}
	}

	calculatedAt := h.now().UTC()
	results := make([]domain.AssetScoreResult, 0, len(assets))
	for i, asset := range assets {
		results = append(results, domain.AssetScoreResult{
			AssetID:           asset.AssetID,
			Symbol:            asset.Symbol,
			Score:             FormatFixed(totals[i]),
			Breakdown:         breakdowns[i],
			CriteriaVersionID: criteriaVersionID,
			CalculatedAt:      calculatedAt,
		})
	}

	return results
}
