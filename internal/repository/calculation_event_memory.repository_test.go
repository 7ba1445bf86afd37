package repository

import (
	"testing"
	"time"

	"assetscore/internal/domain"
	"assetscore/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventStore(t *testing.T) {
	t.Run("preserves append order per correlation id", func(t *testing.T) {
		store := NewInMemoryEventStore()
		correlationID := uuid.New()

		types := []domain.CalculationEventType{
			domain.EventTypeCalcStarted,
			domain.EventTypeInputsCaptured,
			domain.EventTypeScoresComputed,
			domain.EventTypeCalcCompleted,
		}
		for i, eventType := range types {
			event, err := domain.NewCalculationEvent(correlationID, nil, eventType, int32(i+1), map[string]string{})
			require.NoError(t, err)
			require.NoError(t, store.Append(nil, event))
		}

		events, err := store.GetByCorrelationID(correlationID)
		require.NoError(t, err)
		require.Len(t, events, 4)
		for i, event := range events {
			require.Equal(t, types[i], event.Type)
		}
	})

	t.Run("correlations are isolated", func(t *testing.T) {
		store := NewInMemoryEventStore()
		first := uuid.New()
		second := uuid.New()

		event, err := domain.NewCalculationEvent(first, nil, domain.EventTypeCalcStarted, 1, map[string]string{})
		require.NoError(t, err)
		require.NoError(t, store.Append(nil, event))

		events, err := store.GetByCorrelationID(second)
		require.NoError(t, err)
		require.Empty(t, events)

		require.Equal(t, []uuid.UUID{first}, store.CorrelationIDs())
	})
}

func TestInMemoryExchangeRateRepository(t *testing.T) {
	t.Run("most recent rate at or before asOf wins", func(t *testing.T) {
		repo := NewInMemoryExchangeRateRepository()

		old := newRate(t, "USD", "BRL", "4.9", "2024-01-01")
		newer := newRate(t, "USD", "BRL", "5.1", "2024-03-01")
		newest := newRate(t, "USD", "BRL", "5.3", "2024-06-01")
		for _, r := range []domain.ExchangeRate{old, newer, newest} {
			require.NoError(t, repo.Add(r))
		}

		latest, err := repo.GetRate("USD", "BRL", nil)
		require.NoError(t, err)
		require.Equal(t, "5.3", latest.Rate.String())

		historical, err := repo.GetRate("USD", "BRL", util.TimePointer(newer.RateDate.AddDate(0, 1, 0)))
		require.NoError(t, err)
		require.Equal(t, "5.1", historical.Rate.String())
	})

	t.Run("missing pair is nil, not an error", func(t *testing.T) {
		repo := NewInMemoryExchangeRateRepository()

		rate, err := repo.GetRate("EUR", "JPY", nil)
		require.NoError(t, err)
		require.Nil(t, rate)
	})
}

func newRate(t *testing.T, base, target, rate, date string) domain.ExchangeRate {
	t.Helper()
	d, err := decimal.NewFromString(rate)
	require.NoError(t, err)
	day, err := time.Parse(time.DateOnly, date)
	require.NoError(t, err)
	return domain.ExchangeRate{
		BaseCurrency:   base,
		TargetCurrency: target,
		Rate:           d,
		Source:         "test",
		FetchedAt:      day,
		RateDate:       day,
	}
}
