package cmd

import (
	"database/sql"
	"fmt"

	"assetscore/internal/app"
	"assetscore/internal/calculator"
	"assetscore/internal/repository"
	"assetscore/internal/service"
	"assetscore/internal/util"
)

type Handler struct {
	EventStore            repository.EventStore
	RateRepository        repository.ExchangeRateRepository
	CurrencyService       service.CurrencyService
	CalculationHandler    app.CalculationHandler
	RecommendationHandler app.RecommendationHandler
	ReplayHandler         app.ReplayHandler
}

// InitializeDependencies wires the engine. With a secrets file present
// the audit trail and rates live in Postgres; without one everything
// runs on the in-memory stores, which is enough for one-shot CLI runs
// (though replay only works within the same process then).
func InitializeDependencies() (*Handler, error) {
	var (
		eventStore     repository.EventStore
		rateRepository repository.ExchangeRateRepository
	)

	secrets, err := util.LoadSecrets()
	if err == nil {
		dbConn, err := sql.Open("postgres", secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		eventStore = repository.NewCalculationEventRepository(dbConn)
		rateRepository = repository.NewExchangeRateRepository(dbConn)
	} else {
		eventStore = repository.NewInMemoryEventStore()
		rateRepository = repository.NewInMemoryExchangeRateRepository()
	}

	scoringService := calculator.NewScoringService()

	return &Handler{
		EventStore:      eventStore,
		RateRepository:  rateRepository,
		CurrencyService: service.NewCurrencyService(rateRepository, eventStore, true),
		CalculationHandler: app.CalculationHandler{
			ScoringService: scoringService,
			EventStore:     eventStore,
		},
		RecommendationHandler: app.RecommendationHandler{
			EventStore: eventStore,
		},
		ReplayHandler: app.ReplayHandler{
			EventStore:     eventStore,
			ScoringService: scoringService,
		},
	}, nil
}
