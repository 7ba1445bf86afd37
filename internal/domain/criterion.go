package domain

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CriterionOperator string

const (
	CriterionOperatorGt      CriterionOperator = "gt"
	CriterionOperatorLt      CriterionOperator = "lt"
	CriterionOperatorGte     CriterionOperator = "gte"
	CriterionOperatorLte     CriterionOperator = "lte"
	CriterionOperatorEquals  CriterionOperator = "equals"
	CriterionOperatorBetween CriterionOperator = "between"
	CriterionOperatorExists  CriterionOperator = "exists"
)

// FundamentalKey names a numeric attribute of an asset, e.g. its P/E
// ratio, that criteria are evaluated against.
type FundamentalKey string

const (
	FundamentalPeRatio       FundamentalKey = "pe_ratio"
	FundamentalPbRatio       FundamentalKey = "pb_ratio"
	FundamentalDividendYield FundamentalKey = "dividend_yield"
	FundamentalMarketCap     FundamentalKey = "market_cap"
	FundamentalEps           FundamentalKey = "eps"
	FundamentalBookValue     FundamentalKey = "book_value"
	FundamentalPayoutRatio   FundamentalKey = "payout_ratio"
	FundamentalDebtToEquity  FundamentalKey = "debt_to_equity"
	FundamentalRevenueGrowth FundamentalKey = "revenue_growth"
	FundamentalPrice         FundamentalKey = "price"
)

// CriterionRule is one scoring rule: compare an asset fundamental
// against a threshold and award points on a match. Value and Value2
// stay strings until evaluation time - a rule with an unparsable value
// must fail in-band, not abort the whole calculation.
type CriterionRule struct {
	CriterionID          uuid.UUID         `json:"criterionId"`
	Name                 string            `json:"name"`
	Metric               FundamentalKey    `json:"metric"`
	Operator             CriterionOperator `json:"operator"`
	Value                string            `json:"value"`
	Value2               *string           `json:"value2,omitempty"`
	Points               int32             `json:"points"`
	RequiredFundamentals []FundamentalKey  `json:"requiredFundamentals,omitempty"`
	SortOrder            int32             `json:"sortOrder"`
}

// Required returns the fundamentals that must be present before the
// rule is evaluated. Defaults to the rule's own metric.
func (r CriterionRule) Required() []FundamentalKey {
	if len(r.RequiredFundamentals) == 0 {
		return []FundamentalKey{r.Metric}
	}
	return r.RequiredFundamentals
}

// Validate enforces rule invariants at the boundary. The evaluator
// itself never returns errors, so malformed rules should be rejected
// before a criteria set is versioned.
func (r CriterionRule) Validate() error {
	switch r.Operator {
	case CriterionOperatorGt, CriterionOperatorLt, CriterionOperatorGte,
		CriterionOperatorLte, CriterionOperatorEquals:
		if _, err := decimal.NewFromString(r.Value); err != nil {
			return fmt.Errorf("criterion %s: operator %s requires a numeric value, got %q", r.Name, r.Operator, r.Value)
		}
		if r.Value2 != nil {
			return fmt.Errorf("criterion %s: value2 is only allowed with the between operator", r.Name)
		}
	case CriterionOperatorBetween:
		v1, err := decimal.NewFromString(r.Value)
		if err != nil {
			return fmt.Errorf("criterion %s: between requires a numeric value, got %q", r.Name, r.Value)
		}
		if r.Value2 == nil {
			return fmt.Errorf("criterion %s: between requires value2", r.Name)
		}
		v2, err := decimal.NewFromString(*r.Value2)
		if err != nil {
			return fmt.Errorf("criterion %s: between requires a numeric value2, got %q", r.Name, *r.Value2)
		}
		if !v1.LessThan(v2) {
			return fmt.Errorf("criterion %s: between requires value < value2", r.Name)
		}
	case CriterionOperatorExists:
		if r.Value2 != nil {
			return fmt.Errorf("criterion %s: value2 is only allowed with the between operator", r.Name)
		}
	default:
		return fmt.Errorf("criterion %s: unknown operator %q", r.Name, r.Operator)
	}

	return nil
}
