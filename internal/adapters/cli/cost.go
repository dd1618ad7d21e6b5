package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	manufacturingQueries "github.com/ganonim/eve-blueprint-master/internal/application/manufacturing/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// NewCostCommand creates the cost command
func NewCostCommand() *cobra.Command {
	var (
		itemName   string
		regionName string
		fees       feeFlags
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Evaluate manufacturing cost vs sell price for one blueprint",
		Long: `Evaluate the manufacturing cost of a blueprint against the market.

Without --region, material prices come from the global average price
table. With --region, they come from the cheapest live sell orders in
that region.

Examples:
  eveblueprint cost --item "Rifter Blueprint"
  eveblueprint cost --item "Rifter Blueprint" --region "The Forge" --me 10`,
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

			region := market.Region{ID: market.GlobalMarket, Name: "Global"}
			if regionName != "" {
				regionID, err := app.regions.ResolveID(regionName)
				if err != nil {
					return err
				}
				region = canonicalRegion(app, regionID)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			response, err := app.mediator.Send(ctx, &manufacturingQueries.EvaluateRegionCostQuery{
				Recipe:              recipe,
				Region:              region,
				Fees:                feeSet,
				Efficiencies:        eff,
				MaterialConcurrency: app.cfg.Scan.MaterialConcurrency,
			})
			if err != nil {
				if errors.Is(err, market.ErrIncompletePriceData) || errors.Is(err, market.ErrPriceUnavailable) {
					fmt.Printf("No complete price data for %s in %s\n", recipe.ProductName(), region.Name)
					return nil
				}
				return err
			}

			result, ok := response.(*manufacturingQueries.EvaluateRegionCostResponse)
			if !ok {
				return fmt.Errorf("unexpected response type")
			}

			renderBreakdown(result.Breakdown)
			return nil
		},
	}

	cmd.Flags().StringVar(&itemName, "item", "", "Blueprint name (required)")
	cmd.Flags().StringVar(&regionName, "region", "", "Region name (default: global average prices)")
	registerFeeFlags(cmd, &fees)

	return cmd
}

// canonicalRegion returns the region with its catalog display name
func canonicalRegion(app *app, regionID int64) market.Region {
	regions, err := app.regions.AllRegions()
	if err == nil {
		for _, r := range regions {
			if r.ID == regionID {
				return r
			}
		}
	}
	return market.Region{ID: regionID, Name: fmt.Sprintf("Region %d", regionID)}
}
