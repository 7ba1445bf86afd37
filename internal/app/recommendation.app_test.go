package app

import (
	"context"
	"testing"

	"assetscore/internal/domain"
	"assetscore/internal/repository"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAllocateByGaps(t *testing.T) {
	t.Run("fills the most under-allocated assets first", func(t *testing.T) {
		portfolio := domain.PortfolioState{
			Positions: map[string]decimal.Decimal{
				"BOVA11": dec("6000"),
				"IVVB11": dec("2000"),
			},
		}
		targets := []domain.AllocationTarget{
			{Symbol: "BOVA11", TargetWeight: dec("0.6")},
			{Symbol: "IVVB11", TargetWeight: dec("0.4")},
		}

		// projected total = 8000 + 2000 = 10000
		// BOVA11 gap = 6000 - 6000 = 0, IVVB11 gap = 4000 - 2000 = 2000
		items, err := AllocateByGaps(portfolio, targets, dec("2000"))
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff([]domain.RecommendationItem{
			{Symbol: "BOVA11", Amount: "0.0000", AllocationGap: "0.0000"},
			{Symbol: "IVVB11", Amount: "2000.0000", AllocationGap: "2000.0000"},
		}, items))
	})

	t.Run("splits proportionally when everything is under target", func(t *testing.T) {
		portfolio := domain.PortfolioState{Positions: map[string]decimal.Decimal{}}
		targets := []domain.AllocationTarget{
			{Symbol: "A", TargetWeight: dec("0.75")},
			{Symbol: "B", TargetWeight: dec("0.25")},
		}

		items, err := AllocateByGaps(portfolio, targets, dec("1000"))
		require.NoError(t, err)

		require.Equal(t, "750.0000", items[0].Amount)
		require.Equal(t, "250.0000", items[1].Amount)
	})

	t.Run("zero investable on a balanced portfolio allocates nothing", func(t *testing.T) {
		portfolio := domain.PortfolioState{
			Positions: map[string]decimal.Decimal{
				"A": dec("9000"),
				"B": dec("9000"),
			},
		}
		targets := []domain.AllocationTarget{
			{Symbol: "A", TargetWeight: dec("0.5")},
			{Symbol: "B", TargetWeight: dec("0.5")},
		}

		items, err := AllocateByGaps(portfolio, targets, dec("0"))
		require.NoError(t, err)

		require.Equal(t, "0.0000", items[0].Amount)
		require.Equal(t, "0.0000", items[1].Amount)
	})

	t.Run("items come back in symbol order regardless of input order", func(t *testing.T) {
		portfolio := domain.PortfolioState{Positions: map[string]decimal.Decimal{}}
		targets := []domain.AllocationTarget{
			{Symbol: "ZZZZ", TargetWeight: dec("0.5")},
			{Symbol: "AAAA", TargetWeight: dec("0.5")},
		}

		items, err := AllocateByGaps(portfolio, targets, dec("100"))
		require.NoError(t, err)

		require.Equal(t, "AAAA", items[0].Symbol)
		require.Equal(t, "ZZZZ", items[1].Symbol)
	})

	t.Run("rejects weights that do not sum to 1", func(t *testing.T) {
		portfolio := domain.PortfolioState{Positions: map[string]decimal.Decimal{}}
		targets := []domain.AllocationTarget{
			{Symbol: "A", TargetWeight: dec("0.5")},
			{Symbol: "B", TargetWeight: dec("0.3")},
		}

		_, err := AllocateByGaps(portfolio, targets, dec("100"))
		require.Error(t, err)
	})

	t.Run("rejects a negative investable amount", func(t *testing.T) {
		_, err := AllocateByGaps(domain.PortfolioState{}, []domain.AllocationTarget{
			{Symbol: "A", TargetWeight: dec("1")},
		}, dec("-1"))
		require.Error(t, err)
	})
}

func TestGenerateRecommendations(t *testing.T) {
	t.Run("success emits the 4-event sequence", func(t *testing.T) {
		eventStore := repository.NewInMemoryEventStore()
		handler := RecommendationHandler{EventStore: eventStore}

		out, err := handler.GenerateRecommendations(context.Background(), RecommendationInput{
			PortfolioState: domain.PortfolioState{
				Positions: map[string]decimal.Decimal{"BOVA11": dec("500")},
			},
			AllocationTargets: []domain.AllocationTarget{
				{Symbol: "BOVA11", TargetWeight: dec("1")},
			},
			Contribution: dec("300"),
			Dividends:    dec("50.5"),
		})
		require.NoError(t, err)
		require.Equal(t, "350.5000", out.TotalInvestable)
		require.Len(t, out.Items, 1)
		require.Equal(t, "350.5000", out.Items[0].Amount)

		events, err := eventStore.GetByCorrelationID(out.CorrelationID)
		require.NoError(t, err)
		require.Len(t, events, 4)

		expectedOrder := []domain.CalculationEventType{
			domain.EventTypeCalcStarted,
			domain.EventTypeRecsInputsCaptured,
			domain.EventTypeRecsComputed,
			domain.EventTypeCalcCompleted,
		}
		for i, event := range events {
			require.Equal(t, expectedOrder[i], event.Type)
		}
	})

	t.Run("failure is recorded then returned", func(t *testing.T) {
		eventStore := repository.NewInMemoryEventStore()
		handler := RecommendationHandler{EventStore: eventStore}

		correlationID := uuid.MustParse("33333333-3333-3333-3333-333333333333")
		handler.NewCorrelationID = func() uuid.UUID { return correlationID }

		_, err := handler.GenerateRecommendations(context.Background(), RecommendationInput{
			PortfolioState: domain.PortfolioState{},
			AllocationTargets: []domain.AllocationTarget{
				{Symbol: "A", TargetWeight: dec("0.2")},
			},
			Contribution: dec("100"),
		})
		require.Error(t, err)
		require.Contains(t, err.Error(), "sum to 1")

		events, storeErr := eventStore.GetByCorrelationID(correlationID)
		require.NoError(t, storeErr)

		last := events[len(events)-1]
		require.Equal(t, domain.EventTypeCalcCompleted, last.Type)

		completed := domain.CalcCompletedPayload{}
		require.NoError(t, last.UnmarshalPayload(domain.EventTypeCalcCompleted, &completed))
		require.Equal(t, domain.CalculationStatusFailed, completed.Status)
		require.NotNil(t, completed.ErrorMessage)
		require.Contains(t, *completed.ErrorMessage, "sum to 1")
	})
}
