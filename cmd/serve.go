package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pricelens/internal/analysis"
	"pricelens/internal/api"
	"pricelens/internal/api/handler/v1handler"
	"pricelens/internal/config"
	"pricelens/internal/lookup"
	"pricelens/internal/pricing"
	"pricelens/pkg/fetch"
	"pricelens/pkg/logger"
	"pricelens/pkg/search/serper"
)

// buildLookup assembles the end-to-end lookup pipeline from configuration:
// Serper-backed search, a bounded-concurrency page fetcher, the normalizer
// and the analyzer.
func buildLookup(cfg *config.Config) (lookup.Lookup, *pricing.Normalizer, *analysis.Analyzer) {
	searchClient := serper.New(
		&http.Client{Timeout: cfg.Search.Timeout},
		cfg.Search.APIKey,
		serper.Options{
			BaseURL:    cfg.Search.BaseURL,
			MaxResults: cfg.Search.MaxResults,
			Country:    cfg.Search.Country,
		})

	fetcher := fetch.New(&http.Client{Timeout: cfg.Fetch.Timeout}, cfg.Fetch.UserAgent)

	table := pricing.DefaultCurrencyTable()
	normalizer := pricing.NewNormalizer(
		pricing.NewParser(table),
		pricing.NewValidator(pricing.Limits{
			MaxValidPrice: cfg.Pricing.MaxValidPrice,
			WarnPrice:     cfg.Pricing.WarnPrice,
		}, table))
	analyzer := analysis.NewDefaultAnalyzer()

	return lookup.New(lookup.NewOptions(cfg), searchClient, fetcher, normalizer, analyzer),
		normalizer,
		analyzer
}

func setupServer(ctx context.Context, cfg *config.Config) func(ctx context.Context) {
	lookupSvc, normalizer, analyzer := buildLookup(cfg)

	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{
			Lookup:     lookupSvc,
			Normalizer: normalizer,
			Analyzer:   analyzer,
		},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts the pricing API server",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			stopWebserver := setupServer(ctx, cfg)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
