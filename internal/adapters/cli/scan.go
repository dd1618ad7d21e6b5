package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	scanQueries "github.com/ganonim/eve-blueprint-master/internal/application/scan/queries"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	var (
		itemName string
		fees     feeFlags
		topN     int
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Rank all regions by manufacturing profit for one blueprint",
		Long: `Scan every known region, evaluate the blueprint's manufacturing cost
against local sell prices, and print the regions ranked by profit.

Regions with incomplete price data are skipped, never ranked.

Examples:
  eveblueprint scan --item "Rifter Blueprint"
  eveblueprint scan --item "Rifter Blueprint" --broker 2.5 --top 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if itemName == "" {
				return fmt.Errorf("--item flag is required")
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.logger.Sync()

			feeSet, eff, err := fees.resolve(cmd, app.cfg.Market)
			if err != nil {
				return err
			}

			recipe, err := app.blueprints.Resolve(itemName)
			if err != nil {
				return fmt.Errorf("failed to resolve blueprint: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if app.metrics != nil {
				stopMetrics := serveMetrics(app)
				defer stopMetrics()
			}

			start := time.Now()
			response, err := app.mediator.Send(ctx, &scanQueries.ScanRegionsQuery{
				Recipe:              recipe,
				Fees:                feeSet,
				Efficiencies:        eff,
				RegionConcurrency:   app.cfg.Scan.RegionConcurrency,
				MaterialConcurrency: app.cfg.Scan.MaterialConcurrency,
			})
			if err != nil {
				if errors.Is(err, scanQueries.ErrNoRegionData) {
					fmt.Printf("No region produced complete price data for %s\n", recipe.ProductName())
					return nil
				}
				return err
			}

			result, ok := response.(*scanQueries.ScanRegionsResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			app.metrics.ObserveScanDuration(time.Since(start))
			app.metrics.ObserveRegions(result.RegionsScanned, result.RegionsSkipped)

			renderRanking(recipe, result, topN)
			return nil
		},
	}

	cmd.Flags().StringVar(&itemName, "item", "", "Blueprint name (required)")
	cmd.Flags().IntVar(&topN, "top", 0, "Show only the top N regions (0 = all)")
	registerFeeFlags(cmd, &fees)

	return cmd
}

// serveMetrics starts the Prometheus endpoint for the duration of the
// scan and returns its shutdown function
func serveMetrics(app *app) func() {
	mux := http.NewServeMux()
	mux.Handle(app.cfg.Metrics.Path, app.metrics.Handler())
	server := &http.Server{
		Addr:    net.JoinHostPort(app.cfg.Metrics.Host, fmt.Sprintf("%d", app.cfg.Metrics.Port)),
		Handler: mux,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	return func() {
		_ = server.Close()
	}
}
