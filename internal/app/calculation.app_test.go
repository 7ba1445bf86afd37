package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"assetscore/internal/calculator"
	"assetscore/internal/domain"
	"assetscore/internal/repository"
	mock_repository "assetscore/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func fixedClock() time.Time {
	return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func testCriteria() []domain.CriterionRule {
	return []domain.CriterionRule{
		{
			CriterionID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"),
			Name:        "cheap",
			Metric:      domain.FundamentalPeRatio,
			Operator:    domain.CriterionOperatorLt,
			Value:       "10",
			Points:      7,
			SortOrder:   1,
		},
		{
			CriterionID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"),
			Name:        "pays out",
			Metric:      domain.FundamentalDividendYield,
			Operator:    domain.CriterionOperatorGte,
			Value:       "4",
			Points:      3,
			SortOrder:   2,
		},
	}
}

func testAssets() []domain.AssetWithFundamentals {
	pe := decimal.RequireFromString("6.2")
	dy := decimal.RequireFromString("8.1")
	return []domain.AssetWithFundamentals{
		{
			AssetID: uuid.MustParse("00000000-0000-0000-0000-0000000000aa"),
			Symbol:  "TAEE11",
			Fundamentals: map[domain.FundamentalKey]*decimal.Decimal{
				domain.FundamentalPeRatio:       &pe,
				domain.FundamentalDividendYield: &dy,
			},
		},
		{
			AssetID:      uuid.MustParse("00000000-0000-0000-0000-0000000000bb"),
			Symbol:       "NUBR33",
			Fundamentals: map[domain.FundamentalKey]*decimal.Decimal{},
		},
	}
}

func TestCalculateScoresWithEvents(t *testing.T) {
	versionID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("emits exactly 4 events in order under one correlation id", func(t *testing.T) {
		eventStore := repository.NewInMemoryEventStore()
		handler := CalculationHandler{
			ScoringService: calculator.NewScoringServiceWithClock(fixedClock),
			EventStore:     eventStore,
		}

		userID := uuid.New()
		out, err := handler.CalculateScoresWithEvents(
			context.Background(),
			CalculationConfig{UserID: &userID, CriteriaVersionID: versionID},
			testCriteria(),
			testAssets(),
		)
		require.NoError(t, err)
		require.Equal(t, 2, out.AssetCount)
		require.Equal(t, "10.0000", out.Scores[0].Score)
		require.Equal(t, "0.0000", out.Scores[1].Score)

		events, err := eventStore.GetByCorrelationID(out.CorrelationID)
		require.NoError(t, err)
		require.Len(t, events, 4)

		expectedOrder := []domain.CalculationEventType{
			domain.EventTypeCalcStarted,
			domain.EventTypeInputsCaptured,
			domain.EventTypeScoresComputed,
			domain.EventTypeCalcCompleted,
		}
		for i, event := range events {
			require.Equal(t, expectedOrder[i], event.Type)
			require.Equal(t, out.CorrelationID, event.CorrelationID)
			require.Equal(t, int32(i+1), event.Sequence)
		}

		completed := domain.CalcCompletedPayload{}
		require.NoError(t, events[3].UnmarshalPayload(domain.EventTypeCalcCompleted, &completed))
		require.Equal(t, domain.CalculationStatusSuccess, completed.Status)
		require.Equal(t, 2, completed.AssetCount)
	})

	t.Run("two calculations never share a correlation id", func(t *testing.T) {
		eventStore := repository.NewInMemoryEventStore()
		handler := CalculationHandler{
			ScoringService: calculator.NewScoringServiceWithClock(fixedClock),
			EventStore:     eventStore,
		}
		config := CalculationConfig{CriteriaVersionID: versionID}

		first, err := handler.CalculateScoresWithEvents(context.Background(), config, testCriteria(), testAssets())
		require.NoError(t, err)
		second, err := handler.CalculateScoresWithEvents(context.Background(), config, testCriteria(), testAssets())
		require.NoError(t, err)

		require.NotEqual(t, first.CorrelationID, second.CorrelationID)
	})

	t.Run("a failing event sink fails the whole calculation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		eventStore := mock_repository.NewMockEventStore(ctrl)
		eventStore.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Return(nil)
		eventStore.EXPECT().
			Append(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("disk on fire"))

		handler := CalculationHandler{
			ScoringService: calculator.NewScoringServiceWithClock(fixedClock),
			EventStore:     eventStore,
		}

		_, err := handler.CalculateScoresWithEvents(
			context.Background(),
			CalculationConfig{CriteriaVersionID: versionID},
			testCriteria(),
			testAssets(),
		)
		require.Error(t, err)
		require.Contains(t, err.Error(), "INPUTS_CAPTURED")
		require.Contains(t, err.Error(), "disk on fire")
	})

	t.Run("replay reproduces the recorded scores exactly", func(t *testing.T) {
		eventStore := repository.NewInMemoryEventStore()
		scoringService := calculator.NewScoringServiceWithClock(fixedClock)
		handler := CalculationHandler{
			ScoringService: scoringService,
			EventStore:     eventStore,
		}

		out, err := handler.CalculateScoresWithEvents(
			context.Background(),
			CalculationConfig{CriteriaVersionID: versionID},
			testCriteria(),
			testAssets(),
		)
		require.NoError(t, err)

		replayHandler := ReplayHandler{
			EventStore:     eventStore,
			ScoringService: scoringService,
		}
		result, err := replayHandler.VerifyCalculation(context.Background(), out.CorrelationID)
		require.NoError(t, err)

		require.True(t, result.Match, "diff: %s", result.Diff)
		require.Equal(t, 2, result.AssetCount)
	})

	t.Run("replay of an unknown correlation id errors", func(t *testing.T) {
		replayHandler := ReplayHandler{
			EventStore:     repository.NewInMemoryEventStore(),
			ScoringService: calculator.NewScoringService(),
		}

		_, err := replayHandler.VerifyCalculation(context.Background(), uuid.New())
		require.Error(t, err)
	})
}
