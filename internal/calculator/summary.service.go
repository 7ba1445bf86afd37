package calculator

import (
	"fmt"

	"assetscore/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// SummarizeScores computes descriptive statistics over one scoring
// run. The summary is advisory (logs and reports) and uses float64 -
// the deterministic decimal contract applies to the per-asset results
// only.
func SummarizeScores(results []domain.AssetScoreResult) (*domain.ScoreSummary, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("cannot summarize an empty scoring run")
	}

	dataset := make([]float64, 0, len(results))
	for _, result := range results {
		score, err := decimal.NewFromString(result.Score)
		if err != nil {
			return nil, fmt.Errorf("failed to parse score %q for %s: %w", result.Score, result.Symbol, err)
		}
		dataset = append(dataset, score.InexactFloat64())
	}

	mean, err := stats.Mean(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	median, err := stats.Median(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}
	min, err := stats.Min(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to compute min: %w", err)
	}
	max, err := stats.Max(dataset)
	if err != nil {
		return nil, fmt.Errorf("failed to compute max: %w", err)
	}

	stdDev := 0.0
	if len(dataset) > 1 {
		stdDev, err = stats.StandardDeviationSample(dataset)
		if err != nil {
			return nil, fmt.Errorf("failed to compute stdev: %w", err)
		}
	}

	return &domain.ScoreSummary{
		Count:  len(dataset),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}, nil
}
