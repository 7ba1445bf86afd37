package domain

import (
	"time"

	"github.com/google/uuid"
)

const SkippedReasonMissingFundamental = "missing_fundamental"

// CriterionResult is the evaluation trace of one rule against one
// asset. SkippedReason set implies Matched=false and PointsAwarded=0.
type CriterionResult struct {
	CriterionID   uuid.UUID `json:"criterionId"`
	CriterionName string    `json:"criterionName"`
	Matched       bool      `json:"matched"`
	PointsAwarded int32     `json:"pointsAwarded"`
	ActualValue   *string   `json:"actualValue"`
	SkippedReason *string   `json:"skippedReason"`
}

// AssetScoreResult is one asset's total score plus its per-criterion
// breakdown, listed in criteria order. Score carries exactly 4
// fractional digits.
type AssetScoreResult struct {
	AssetID           uuid.UUID         `json:"assetId"`
	Symbol            string            `json:"symbol"`
	Score             string            `json:"score"`
	Breakdown         []CriterionResult `json:"breakdown"`
	CriteriaVersionID uuid.UUID         `json:"criteriaVersionId"`
	CalculatedAt      time.Time         `json:"calculatedAt"`
}

// ScoreSummary is descriptive statistics over one scoring run. It is
// advisory output for logs and reports, not part of the deterministic
// per-asset results.
type ScoreSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stdDev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}
