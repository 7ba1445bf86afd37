package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetWithFundamentals is one asset plus the fundamentals snapshot it
// is scored against. Constructed per calculation request from external
// market data and treated as immutable for the duration of one call.
// A nil entry means the fundamental was reported but had no value;
// an absent key means it was never reported. Both count as missing.
type AssetWithFundamentals struct {
	AssetID      uuid.UUID                           `json:"assetId"`
	Symbol       string                              `json:"symbol"`
	Fundamentals map[FundamentalKey]*decimal.Decimal `json:"fundamentals"`
}

// Fundamental returns the value for key, or nil if missing.
func (a AssetWithFundamentals) Fundamental(key FundamentalKey) *decimal.Decimal {
	v, ok := a.Fundamentals[key]
	if !ok {
		return nil
	}
	return v
}

func (a AssetWithFundamentals) HasFundamental(key FundamentalKey) bool {
	return a.Fundamental(key) != nil
}
