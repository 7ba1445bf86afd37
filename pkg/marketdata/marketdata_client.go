package marketdata

import (
	"fmt"

	"assetscore/internal/domain"

	"github.com/google/uuid"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// Client builds per-request fundamentals snapshots from live quote
// data. The scoring engine itself never fetches anything - it scores
// whatever snapshot it is handed, so a calculation stays reproducible
// from its captured inputs.
type Client struct{}

// GetFundamentals fetches quotes for the given symbols and maps them
// onto the fundamentals keys the criteria engine understands. Yahoo
// reports 0 for fields it has no data for, so zero ratio fields are
// treated as missing rather than as a literal zero.
func (c Client) GetFundamentals(symbols []string) ([]domain.AssetWithFundamentals, error) {
	assets := make([]domain.AssetWithFundamentals, 0, len(symbols))
	for _, symbol := range symbols {
		q, err := equity.Get(symbol)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
		}
		if q == nil {
			return nil, fmt.Errorf("no quote data returned for %s", symbol)
		}

		fundamentals := map[domain.FundamentalKey]*decimal.Decimal{
			domain.FundamentalPeRatio:       nonZeroDecimal(q.TrailingPE),
			domain.FundamentalEps:           nonZeroDecimal(q.EpsTrailingTwelveMonths),
			domain.FundamentalBookValue:     nonZeroDecimal(q.BookValue),
			domain.FundamentalDividendYield: nonZeroDecimal(q.TrailingAnnualDividendYield),
			domain.FundamentalMarketCap:     nonZeroDecimal(float64(q.MarketCap)),
			domain.FundamentalPrice:         nonZeroDecimal(q.RegularMarketPrice),
		}

		assets = append(assets, domain.AssetWithFundamentals{
			AssetID:      uuid.New(),
			Symbol:       q.Symbol,
			Fundamentals: fundamentals,
		})
	}

	return assets, nil
}

func nonZeroDecimal(f float64) *decimal.Decimal {
	if f == 0 {
		return nil
	}
	d := decimal.NewFromFloat(f)
	return &d
}
