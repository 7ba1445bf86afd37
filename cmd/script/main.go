package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"assetscore/cmd"
	"assetscore/internal/app"
	"assetscore/internal/domain"
	"assetscore/internal/util"
	"assetscore/pkg/marketdata"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func main() {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}

	root := &cobra.Command{
		Use:   "assetscore",
		Short: "criteria-driven asset scoring with an event-sourced audit trail",
	}
	root.AddCommand(
		newScoreCommand(handler),
		newReplayCommand(handler),
		newConvertCommand(handler),
		newRecommendCommand(handler),
		newExportCommand(handler),
	)

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func newScoreCommand(handler *cmd.Handler) *cobra.Command {
	var (
		symbols         string
		criteriaFile    string
		criteriaVersion string
		csvOut          string
	)

	scoreCmd := &cobra.Command{
		Use:   "score",
		Short: "score assets against a criteria set and record the audit trail",
		RunE: func(c *cobra.Command, args []string) error {
			criteria, err := loadCriteria(criteriaFile)
			if err != nil {
				return err
			}

			client := marketdata.Client{}
			assets, err := client.GetFundamentals(strings.Split(symbols, ","))
			if err != nil {
				return err
			}

			versionID := uuid.New()
			if criteriaVersion != "" {
				versionID, err = uuid.Parse(criteriaVersion)
				if err != nil {
					return fmt.Errorf("invalid criteria version id %q: %w", criteriaVersion, err)
				}
			}

			out, err := handler.CalculationHandler.CalculateScoresWithEvents(
				context.Background(),
				app.CalculationConfig{CriteriaVersionID: versionID},
				criteria,
				assets,
			)
			if err != nil {
				return err
			}

			util.Pprint(out)
			if csvOut != "" {
				return writeScoresCsv(csvOut, out.Scores)
			}
			return nil
		},
	}

	scoreCmd.Flags().StringVar(&symbols, "symbols", "", "comma-separated symbols to score")
	scoreCmd.Flags().StringVar(&criteriaFile, "criteria", "", "path to a criteria set JSON file")
	scoreCmd.Flags().StringVar(&criteriaVersion, "criteria-version", "", "optional criteria version id (defaults to a fresh id)")
	scoreCmd.Flags().StringVar(&csvOut, "csv", "", "optional path to write scores as CSV")
	scoreCmd.MarkFlagRequired("symbols")
	scoreCmd.MarkFlagRequired("criteria")

	return scoreCmd
}

func newReplayCommand(handler *cmd.Handler) *cobra.Command {
	var correlationID string

	replayCmd := &cobra.Command{
		Use:   "replay",
		Short: "re-run a recorded calculation and verify the scores match",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := uuid.Parse(correlationID)
			if err != nil {
				return fmt.Errorf("invalid correlation id %q: %w", correlationID, err)
			}

			result, err := handler.ReplayHandler.VerifyCalculation(context.Background(), id)
			if err != nil {
				return err
			}

			util.Pprint(result)
			if !result.Match {
				return fmt.Errorf("replay mismatch for correlation %s", correlationID)
			}
			return nil
		},
	}

	replayCmd.Flags().StringVar(&correlationID, "correlation-id", "", "correlation id of the calculation to verify")
	replayCmd.MarkFlagRequired("correlation-id")

	return replayCmd
}

func newConvertCommand(handler *cmd.Handler) *cobra.Command {
	var value, from, to string

	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "convert a value between currencies using stored rates",
		RunE: func(c *cobra.Command, args []string) error {
			result, err := handler.CurrencyService.Convert(context.Background(), value, from, to, nil)
			if err != nil {
				return err
			}

			util.Pprint(result)
			return nil
		},
	}

	convertCmd.Flags().StringVar(&value, "value", "", "decimal value to convert")
	convertCmd.Flags().StringVar(&from, "from", "", "source currency code")
	convertCmd.Flags().StringVar(&to, "to", "", "target currency code")
	convertCmd.MarkFlagRequired("value")
	convertCmd.MarkFlagRequired("from")
	convertCmd.MarkFlagRequired("to")

	return convertCmd
}

func newRecommendCommand(handler *cmd.Handler) *cobra.Command {
	var (
		portfolioFile string
		targetsFile   string
		contribution  string
		dividends     string
	)

	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "split an investable amount across assets by allocation gap",
		RunE: func(c *cobra.Command, args []string) error {
			portfolio := domain.PortfolioState{}
			if portfolioFile != "" {
				if err := readJsonFile(portfolioFile, &portfolio); err != nil {
					return err
				}
			}
			targets := []domain.AllocationTarget{}
			if err := readJsonFile(targetsFile, &targets); err != nil {
				return err
			}

			contributionAmount, err := decimal.NewFromString(contribution)
			if err != nil {
				return fmt.Errorf("invalid contribution %q: %w", contribution, err)
			}
			dividendAmount := decimal.Zero
			if dividends != "" {
				dividendAmount, err = decimal.NewFromString(dividends)
				if err != nil {
					return fmt.Errorf("invalid dividends %q: %w", dividends, err)
				}
			}

			out, err := handler.RecommendationHandler.GenerateRecommendations(context.Background(), app.RecommendationInput{
				PortfolioState:    portfolio,
				AllocationTargets: targets,
				Contribution:      contributionAmount,
				Dividends:         dividendAmount,
			})
			if err != nil {
				return err
			}

			util.Pprint(out)
			return nil
		},
	}

	recommendCmd.Flags().StringVar(&portfolioFile, "portfolio", "", "path to a portfolio state JSON file (optional, defaults to empty)")
	recommendCmd.Flags().StringVar(&targetsFile, "targets", "", "path to an allocation targets JSON file")
	recommendCmd.Flags().StringVar(&contribution, "contribution", "", "new money being invested")
	recommendCmd.Flags().StringVar(&dividends, "dividends", "", "dividends received since the last run (optional)")
	recommendCmd.MarkFlagRequired("targets")
	recommendCmd.MarkFlagRequired("contribution")

	return recommendCmd
}

func newExportCommand(handler *cmd.Handler) *cobra.Command {
	var correlationID, outFile string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "export the audit events of one calculation to CSV",
		RunE: func(c *cobra.Command, args []string) error {
			id, err := uuid.Parse(correlationID)
			if err != nil {
				return fmt.Errorf("invalid correlation id %q: %w", correlationID, err)
			}

			events, err := handler.EventStore.GetByCorrelationID(id)
			if err != nil {
				return err
			}

			return writeEventsCsv(outFile, events)
		},
	}

	exportCmd.Flags().StringVar(&correlationID, "correlation-id", "", "correlation id to export")
	exportCmd.Flags().StringVar(&outFile, "out", "events.csv", "output CSV path")
	exportCmd.MarkFlagRequired("correlation-id")

	return exportCmd
}

func readJsonFile(path string, out interface{}) error {
	f, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	if err := json.Unmarshal(f, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func loadCriteria(path string) ([]domain.CriterionRule, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open criteria file: %w", err)
	}

	criteria := []domain.CriterionRule{}
	if err := json.Unmarshal(f, &criteria); err != nil {
		return nil, fmt.Errorf("failed to parse criteria file: %w", err)
	}
	for _, rule := range criteria {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	return criteria, nil
}

type scoreCsvRow struct {
	Symbol            string `csv:"symbol"`
	Score             string `csv:"score"`
	CriteriaVersionID string `csv:"criteria_version_id"`
	CalculatedAt      string `csv:"calculated_at"`
}

func writeScoresCsv(path string, scores []domain.AssetScoreResult) error {
	rows := make([]scoreCsvRow, 0, len(scores))
	for _, score := range scores {
		rows = append(rows, scoreCsvRow{
			Symbol:            score.Symbol,
			Score:             score.Score,
			CriteriaVersionID: score.CriteriaVersionID.String(),
			CalculatedAt:      score.CalculatedAt.Format(time.RFC3339),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}

type eventCsvRow struct {
	CorrelationID string `csv:"correlation_id"`
	Sequence      int32  `csv:"sequence"`
	EventType     string `csv:"event_type"`
	CreatedAt     string `csv:"created_at"`
	Payload       string `csv:"payload"`
}

func writeEventsCsv(path string, events []domain.CalculationEvent) error {
	rows := make([]eventCsvRow, 0, len(events))
	for _, event := range events {
		rows = append(rows, eventCsvRow{
			CorrelationID: event.CorrelationID.String(),
			Sequence:      event.Sequence,
			EventType:     string(event.Type),
			CreatedAt:     event.CreatedAt.Format(time.RFC3339),
			Payload:       string(event.Payload),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&rows, f)
}
