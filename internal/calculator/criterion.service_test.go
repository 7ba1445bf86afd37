package calculator

import (
	"testing"

	"assetscore/internal/domain"
	"assetscore/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newAsset(symbol string, fundamentals map[domain.FundamentalKey]*decimal.Decimal) domain.AssetWithFundamentals {
	return domain.AssetWithFundamentals{
		AssetID:      uuid.New(),
		Symbol:       symbol,
		Fundamentals: fundamentals,
	}
}

func d(s string) *decimal.Decimal {
	return util.DecimalPointer(decimal.RequireFromString(s))
}

func TestEvaluateCriterion(t *testing.T) {
	t.Run("missing fundamental skips regardless of operator", func(t *testing.T) {
		operators := []domain.CriterionOperator{
			domain.CriterionOperatorGt,
			domain.CriterionOperatorLt,
			domain.CriterionOperatorEquals,
			domain.CriterionOperatorBetween,
			domain.CriterionOperatorExists,
		}
		asset := newAsset("PETR4", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalPeRatio: nil,
		})

		for _, operator := range operators {
			rule := domain.CriterionRule{
				Name:     "pe check",
				Metric:   domain.FundamentalPeRatio,
				Operator: operator,
				Value:    "10",
				Points:   5,
			}

			result := EvaluateCriterion(rule, asset)

			require.NotNil(t, result.SkippedReason, "operator %s", operator)
			require.Equal(t, domain.SkippedReasonMissingFundamental, *result.SkippedReason)
			require.False(t, result.Matched)
			require.Equal(t, int32(0), result.PointsAwarded)
			require.Nil(t, result.ActualValue)
		}
	})

	t.Run("comparison operators", func(t *testing.T) {
		asset := newAsset("VALE3", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalDividendYield: d("6.5"),
		})

		tests := []struct {
			name     string
			operator domain.CriterionOperator
			value    string
			value2   *string
			matched  bool
		}{
			{"gt match", domain.CriterionOperatorGt, "6", nil, true},
			{"gt no match on equal", domain.CriterionOperatorGt, "6.5", nil, false},
			{"gte match on equal", domain.CriterionOperatorGte, "6.5", nil, true},
			{"lt match", domain.CriterionOperatorLt, "7", nil, true},
			{"lte no match", domain.CriterionOperatorLte, "6", nil, false},
			{"equals match", domain.CriterionOperatorEquals, "6.50", nil, true},
			{"between inclusive lower", domain.CriterionOperatorBetween, "6.5", util.StringPointer("8"), true},
			{"between inclusive upper", domain.CriterionOperatorBetween, "5", util.StringPointer("6.5"), true},
			{"between outside", domain.CriterionOperatorBetween, "7", util.StringPointer("8"), false},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rule := domain.CriterionRule{
					Name:     tt.name,
					Metric:   domain.FundamentalDividendYield,
					Operator: tt.operator,
					Value:    tt.value,
					Value2:   tt.value2,
					Points:   10,
				}

				result := EvaluateCriterion(rule, asset)

				require.Equal(t, tt.matched, result.Matched)
				if tt.matched {
					require.Equal(t, int32(10), result.PointsAwarded)
				} else {
					require.Equal(t, int32(0), result.PointsAwarded)
				}
				require.Nil(t, result.SkippedReason)
				require.NotNil(t, result.ActualValue)
				require.Equal(t, "6.5", *result.ActualValue)
			})
		}
	})

	t.Run("exists awards points without numeric comparison", func(t *testing.T) {
		asset := newAsset("ITUB4", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalEps: d("3.21"),
		})
		rule := domain.CriterionRule{
			Name:     "has eps",
			Metric:   domain.FundamentalEps,
			Operator: domain.CriterionOperatorExists,
			Value:    "this is not a number",
			Points:   2,
		}

		result := EvaluateCriterion(rule, asset)

		require.True(t, result.Matched)
		require.Equal(t, int32(2), result.PointsAwarded)
	})

	t.Run("unparsable rule value is a non-match, not an error", func(t *testing.T) {
		asset := newAsset("BBAS3", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalPeRatio: d("4.2"),
		})
		rule := domain.CriterionRule{
			Name:     "broken threshold",
			Metric:   domain.FundamentalPeRatio,
			Operator: domain.CriterionOperatorLt,
			Value:    "abc",
			Points:   5,
		}

		result := EvaluateCriterion(rule, asset)

		require.False(t, result.Matched)
		require.Equal(t, int32(0), result.PointsAwarded)
		require.Nil(t, result.SkippedReason)
	})

	t.Run("unparsable value2 fails between in-band", func(t *testing.T) {
		asset := newAsset("BBAS3", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalPeRatio: d("4.2"),
		})
		rule := domain.CriterionRule{
			Name:     "broken upper bound",
			Metric:   domain.FundamentalPeRatio,
			Operator: domain.CriterionOperatorBetween,
			Value:    "1",
			Value2:   util.StringPointer("xyz"),
			Points:   5,
		}

		result := EvaluateCriterion(rule, asset)

		require.False(t, result.Matched)
		require.Equal(t, int32(0), result.PointsAwarded)
	})

	t.Run("explicit required fundamentals take priority", func(t *testing.T) {
		asset := newAsset("WEGE3", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalPeRatio: d("30"),
			// payout_ratio absent
		})
		rule := domain.CriterionRule{
			Name:                 "pe with payout context",
			Metric:               domain.FundamentalPeRatio,
			Operator:             domain.CriterionOperatorGt,
			Value:                "10",
			Points:               5,
			RequiredFundamentals: []domain.FundamentalKey{domain.FundamentalPeRatio, domain.FundamentalPayoutRatio},
		}

		result := EvaluateCriterion(rule, asset)

		require.NotNil(t, result.SkippedReason)
		require.Equal(t, int32(0), result.PointsAwarded)
	})

	t.Run("negative points are awarded on match", func(t *testing.T) {
		asset := newAsset("OIBR3", map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalDebtToEquity: d("9.8"),
		})
		rule := domain.CriterionRule{
			Name:     "over-leveraged penalty",
			Metric:   domain.FundamentalDebtToEquity,
			Operator: domain.CriterionOperatorGt,
			Value:    "3",
			Points:   -4,
		}

		result := EvaluateCriterion(rule, asset)

		require.True(t, result.Matched)
		require.Equal(t, int32(-4), result.PointsAwarded)
	})
}
