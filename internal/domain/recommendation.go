package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PortfolioState is the current holdings snapshot the allocator works
// from. Values are already normalized to the base currency.
type PortfolioState struct {
	Positions map[string]decimal.Decimal `json:"positions"`
}

func (p PortfolioState) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, value := range p.Positions {
		total = total.Add(value)
	}
	return total
}

// AllocationTarget is the desired weight of one asset, expressed as a
// fraction of the whole portfolio. Targets in one set should sum to 1.
type AllocationTarget struct {
	AssetID      uuid.UUID       `json:"assetId"`
	Symbol       string          `json:"symbol"`
	TargetWeight decimal.Decimal `json:"targetWeight"`
}

// RecommendationItem is one allocation slice of the investable amount.
// Amount and AllocationGap carry 4 fractional digits.
type RecommendationItem struct {
	AssetID       uuid.UUID `json:"assetId"`
	Symbol        string    `json:"symbol"`
	Amount        string    `json:"amount"`
	AllocationGap string    `json:"allocationGap"`
}
