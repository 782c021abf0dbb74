package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelens/internal/analysis"
	"pricelens/internal/config"
	"pricelens/internal/pricing"
	"pricelens/pkg/domain"
	"pricelens/pkg/logger"
)

// analyzeCommand constructs the 'analyze' subcommand: it reads a JSON file of
// raw scrape results, normalizes them and prints the full analysis (or a
// targeted comparison when --sites is given) to stdout.
func analyzeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <scrape-results.json>",
		Short: "Normalizes and analyzes a file of raw scrape results",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			sites, _ := cmd.Flags().GetStringSlice("sites")

			b, err := os.ReadFile(args[0])
			if err != nil {
				logger.Fatal(ctx, "could not read input file", zap.Error(err))
			}

			var input struct {
				Results []domain.RawListing `json:"results"`
			}
			if err := json.Unmarshal(b, &input); err != nil {
				logger.Fatal(ctx, "could not decode input file", zap.Error(err))
			}

			table := pricing.DefaultCurrencyTable()
			normalizer := pricing.NewNormalizer(
				pricing.NewParser(table),
				pricing.NewValidator(pricing.Limits{
					MaxValidPrice: cfg.Pricing.MaxValidPrice,
					WarnPrice:     cfg.Pricing.WarnPrice,
				}, table))
			analyzer := analysis.NewDefaultAnalyzer()

			batch := normalizer.ProcessBatch(ctx, input.Results)

			var report any
			if len(sites) > 0 {
				report = analyzer.CompareSites(batch.Records, sites)
			} else {
				report = analyzer.FullAnalysis(batch.Records)
			}

			out, err := json.MarshalIndent(map[string]any{
				"summary":      batch.Summary,
				"failed_items": batch.Rejected,
				"analysis":     report,
			}, "", "  ")
			if err != nil {
				logger.Fatal(ctx, "could not encode report", zap.Error(err))
			}

			fmt.Println(string(out)) //nolint: forbidigo
		},
	}

	cmd.Flags().StringSlice("sites", nil, "Restrict the analysis to these domains (targeted comparison)")

	return cmd
}
