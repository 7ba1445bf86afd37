package calculator

import (
	"assetscore/internal/domain"

	"github.com/shopspring/decimal"
)

// EvaluateCriterion evaluates one rule against one asset's
// fundamentals. It is a pure function: no I/O, no side effects, and it
// never fails - a missing fundamental or an unparsable rule value is
// reported in-band on the result so one bad criterion cannot abort
// scoring for an entire asset set.
func EvaluateCriterion(rule domain.CriterionRule, asset domain.AssetWithFundamentals) domain.CriterionResult {
	result := domain.CriterionResult{
		CriterionID:   rule.CriterionID,
		CriterionName: rule.Name,
	}

	// the required-fundamentals check takes priority over the
	// operator, including exists
	for _, key := range rule.Required() {
		if !asset.HasFundamental(key) {
			reason := domain.SkippedReasonMissingFundamental
			result.SkippedReason = &reason
			return result
		}
	}

	actual := asset.Fundamental(rule.Metric)
	if actual != nil {
		s := actual.String()
		result.ActualValue = &s
	}

	if rule.Operator == domain.CriterionOperatorExists {
		if actual != nil {
			result.Matched = true
			result.PointsAwarded = rule.Points
		}
		return result
	}

	// numeric operators need a parseable target value and a present
	// metric; anything else is a non-match, never an error
	if actual == nil {
		return result
	}
	threshold, err := decimal.NewFromString(rule.Value)
	if err != nil {
		return result
	}

	matched := false
	switch rule.Operator {
	case domain.CriterionOperatorGt:
		matched = actual.GreaterThan(threshold)
	case domain.CriterionOperatorLt:
		matched = actual.LessThan(threshold)
	case domain.CriterionOperatorGte:
		matched = actual.GreaterThanOrEqual(threshold)
	case domain.CriterionOperatorLte:
		matched = actual.LessThanOrEqual(threshold)
	case domain.CriterionOperatorEquals:
		matched = actual.Equal(threshold)
	case domain.CriterionOperatorBetween:
		if rule.Value2 == nil {
			return result
		}
		upper, err := decimal.NewFromString(*rule.Value2)
		if err != nil {
			return result
		}
		matched = actual.GreaterThanOrEqual(threshold) && actual.LessThanOrEqual(upper)
	default:
		return result
	}

	if matched {
		result.Matched = true
		result.PointsAwarded = rule.Points
	}
	return result
}
