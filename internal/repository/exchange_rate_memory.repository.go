package repository

import (
	"sync"
	"time"

	"assetscore/internal/domain"
)

// inMemoryExchangeRateRepository backs the CLI and tests when no
// database is configured. Lookup semantics match the Postgres
// implementation: most recent rate at or before asOf wins.
type inMemoryExchangeRateRepository struct {
	mu    sync.RWMutex
	rates []domain.ExchangeRate
}

func NewInMemoryExchangeRateRepository(seed ...domain.ExchangeRate) ExchangeRateRepository {
	return &inMemoryExchangeRateRepository{rates: seed}
}

func (r *inMemoryExchangeRateRepository) GetRate(base, target string, asOf *time.Time) (*domain.ExchangeRate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *domain.ExchangeRate
	for i := range r.rates {
		rate := r.rates[i]
		if rate.BaseCurrency != base || rate.TargetCurrency != target {
			continue
		}
		if asOf != nil && rate.RateDate.After(*asOf) {
			continue
		}
		if best == nil ||
			rate.RateDate.After(best.RateDate) ||
			(rate.RateDate.Equal(best.RateDate) && rate.FetchedAt.After(best.FetchedAt)) {
			copied := rate
			best = &copied
		}
	}

	return best, nil
}

func (r *inMemoryExchangeRateRepository) Add(rate domain.ExchangeRate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rates = append(r.rates, rate)

	return nil
}
