package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ganonim/eve-blueprint-master/internal/adapters/catalog"
	"github.com/ganonim/eve-blueprint-master/internal/adapters/esi"
	"github.com/ganonim/eve-blueprint-master/internal/adapters/metrics"
	"github.com/ganonim/eve-blueprint-master/internal/application/common"
	manufacturingQueries "github.com/ganonim/eve-blueprint-master/internal/application/manufacturing/queries"
	pricingQueries "github.com/ganonim/eve-blueprint-master/internal/application/pricing/queries"
	scanQueries "github.com/ganonim/eve-blueprint-master/internal/application/scan/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
	"github.com/ganonim/eve-blueprint-master/internal/infrastructure/config"
	"github.com/ganonim/eve-blueprint-master/internal/infrastructure/logging"
)

// app holds the wired dependencies one command invocation needs
type app struct {
	cfg        *config.Config
	logger     *zap.Logger
	metrics    *metrics.MarketMetrics
	blueprints *catalog.BlueprintCatalog
	regions    *catalog.RegionCatalog
	mediator   common.Mediator
}

// newApp loads configuration, opens the catalogs and registers every
// query handler on the mediator
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	var collector *metrics.MarketMetrics
	if cfg.Metrics.Enabled {
		collector = metrics.NewMarketMetrics()
	}

	types, err := catalog.LoadTypeIndex(cfg.Catalog.TypeIDPath)
	if err != nil {
		return nil, err
	}
	blueprints, err := catalog.LoadBlueprintCatalog(cfg.Catalog.BlueprintsPath, types)
	if err != nil {
		return nil, err
	}
	regions, err := catalog.LoadRegionCatalog(cfg.Catalog.RegionsPath)
	if err != nil {
		return nil, err
	}

	prices := esi.NewClient(esi.ClientConfig{
		BaseURL:     cfg.ESI.BaseURL,
		Timeout:     cfg.ESI.Timeout,
		RateLimit:   float64(cfg.ESI.RateLimit.Requests),
		RateBurst:   cfg.ESI.RateLimit.Burst,
		MaxAttempts: cfg.ESI.Retry.MaxAttempts,
		RetryDelay:  cfg.ESI.Retry.Delay,
	}, nil, logger, collector)

	mediator := common.NewMediator()
	if err := common.RegisterHandler[*pricingQueries.FetchRegionPricesQuery](
		mediator, pricingQueries.NewFetchRegionPricesHandler(prices, logger)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*manufacturingQueries.EvaluateRegionCostQuery](
		mediator, manufacturingQueries.NewEvaluateRegionCostHandler(prices, mediator, nil, logger)); err != nil {
		return nil, err
	}
	if err := common.RegisterHandler[*scanQueries.ScanRegionsQuery](
		mediator, scanQueries.NewScanRegionsHandler(regions, mediator, logger)); err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		logger:     logger,
		metrics:    collector,
		blueprints: blueprints,
		regions:    regions,
		mediator:   mediator,
	}, nil
}

// feeFlags holds the trade fee and efficiency flags shared by cost and
// scan. Flag values are percents; config defaults apply when a flag was
// not set on the command line.
type feeFlags struct {
	brokerPct  float64
	stationPct float64
	taxPct     float64
	mePct      float64
	tePct      float64
}

func registerFeeFlags(cmd *cobra.Command, f *feeFlags) {
	cmd.Flags().Float64Var(&f.brokerPct, "broker", 3.0, "Broker fee percent")
	cmd.Flags().Float64Var(&f.stationPct, "station", 10.0, "Station fee percent")
	cmd.Flags().Float64Var(&f.taxPct, "tax", 0.5, "Sales tax percent")
	cmd.Flags().Float64Var(&f.mePct, "me", 0, "Material efficiency percent")
	cmd.Flags().Float64Var(&f.tePct, "te", 0, "Time efficiency percent")
}

// resolve converts the percent flags into validated domain values,
// falling back to configured defaults for flags left untouched
func (f *feeFlags) resolve(cmd *cobra.Command, cfg config.MarketConfig) (manufacturing.Fees, manufacturing.Efficiencies, error) {
	brokerPct := f.brokerPct
	if !cmd.Flags().Changed("broker") {
		brokerPct = cfg.BrokerFeePct
	}
	stationPct := f.stationPct
	if !cmd.Flags().Changed("station") {
		stationPct = cfg.StationFeePct
	}
	taxPct := f.taxPct
	if !cmd.Flags().Changed("tax") {
		taxPct = cfg.SalesTaxPct
	}

	fees, err := manufacturing.NewFees(brokerPct/100, stationPct/100, taxPct/100)
	if err != nil {
		return manufacturing.Fees{}, manufacturing.Efficiencies{}, err
	}
	eff, err := manufacturing.NewEfficiencies(f.mePct, f.tePct)
	if err != nil {
		return manufacturing.Fees{}, manufacturing.Efficiencies{}, err
	}
	return fees, eff, nil
}
