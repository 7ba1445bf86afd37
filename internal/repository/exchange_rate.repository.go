package repository

import (
	"database/sql"
	"fmt"
	"time"

	"assetscore/internal/db/models/postgres/public/model"
	"assetscore/internal/db/models/postgres/public/table"
	"assetscore/internal/domain"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/google/uuid"
)

// ExchangeRateRepository reads stored (never live) exchange rates.
// GetRate returns the most recent rate at or before asOf, or the
// latest available rate when asOf is nil. A missing pair is (nil, nil),
// not an error - the converter decides whether that is fatal.
type ExchangeRateRepository interface {
	GetRate(base, target string, asOf *time.Time) (*domain.ExchangeRate, error)
	Add(rate domain.ExchangeRate) error
}

type exchangeRateRepositoryHandler struct {
	Db *sql.DB
}

func NewExchangeRateRepository(db *sql.DB) ExchangeRateRepository {
	return exchangeRateRepositoryHandler{db}
}

func (h exchangeRateRepositoryHandler) GetRate(base, target string, asOf *time.Time) (*domain.ExchangeRate, error) {
	conditions := []postgres.BoolExpression{
		table.ExchangeRate.BaseCurrency.EQ(postgres.String(base)),
		table.ExchangeRate.TargetCurrency.EQ(postgres.String(target)),
	}
	if asOf != nil {
		conditions = append(conditions, table.ExchangeRate.RateDate.LT_EQ(postgres.DateT(*asOf)))
	}

	query := table.ExchangeRate.SELECT(table.ExchangeRate.AllColumns).
		WHERE(postgres.AND(conditions...)).
		ORDER_BY(
			table.ExchangeRate.RateDate.DESC(),
			table.ExchangeRate.FetchedAt.DESC(),
		).
		LIMIT(1)

	out := []model.ExchangeRate{}
	err := query.Query(h.Db, &out)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate %s/%s: %w", base, target, err)
	}
	if len(out) == 0 {
		return nil, nil
	}

	m := out[0]
	return &domain.ExchangeRate{
		BaseCurrency:   m.BaseCurrency,
		TargetCurrency: m.TargetCurrency,
		Rate:           m.Rate,
		Source:         m.Source,
		FetchedAt:      m.FetchedAt,
		RateDate:       m.RateDate,
	}, nil
}

func (h exchangeRateRepositoryHandler) Add(rate domain.ExchangeRate) error {
	m := model.ExchangeRate{
		ExchangeRateID: uuid.New(),
		BaseCurrency:   rate.BaseCurrency,
		TargetCurrency: rate.TargetCurrency,
		Rate:           rate.Rate,
		Source:         rate.Source,
		FetchedAt:      rate.FetchedAt,
		RateDate:       rate.RateDate,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	query := table.ExchangeRate.INSERT(table.ExchangeRate.AllColumns).MODEL(m)

	_, err := query.Exec(h.Db)
	if err != nil {
		return fmt.Errorf("failed to insert exchange rate %s/%s: %w", rate.BaseCurrency, rate.TargetCurrency, err)
	}

	return nil
}
