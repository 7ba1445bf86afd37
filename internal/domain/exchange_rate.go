package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSourceSameCurrency marks conversions that never touched the rate
// repository because from == to.
const RateSourceSameCurrency = "same-currency"

// StaleRateThreshold is how old a rate's FetchedAt may be before the
// conversion result is flagged stale. Staleness never blocks a
// conversion.
const StaleRateThreshold = 24 * time.Hour

// ExchangeRate is a stored (never live) conversion rate. Owned by the
// rate repository; the converter only reads it.
type ExchangeRate struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	Source         string          `json:"source"`
	FetchedAt      time.Time       `json:"fetchedAt"`
	RateDate       time.Time       `json:"rateDate"`
}

func (r ExchangeRate) IsStale(now time.Time) bool {
	return now.Sub(r.FetchedAt) > StaleRateThreshold
}

// CurrencyConversionResult is one converted value. Value and Rate are
// decimal strings; Value carries exactly 4 fractional digits.
type CurrencyConversionResult struct {
	Value        string `json:"value"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Rate         string `json:"rate"`
	RateSource   string `json:"rateSource"`
	IsStaleRate  bool   `json:"isStaleRate"`
}
