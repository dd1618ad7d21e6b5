package steps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/ganonim/eve-blueprint-master/internal/application/common"
	manufacturingQueries "github.com/ganonim/eve-blueprint-master/internal/application/manufacturing/queries"
	pricingQueries "github.com/ganonim/eve-blueprint-master/internal/application/pricing/queries"
	scanQueries "github.com/ganonim/eve-blueprint-master/internal/application/scan/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
	"github.com/ganonim/eve-blueprint-master/internal/domain/shared"
	"github.com/ganonim/eve-blueprint-master/test/helpers"
)

func InitializeRegionScanScenario(ctx *godog.ScenarioContext) {
	sc := sharedScannerContext

	ctx.Step(`^region (\d+) named "([^"]*)" with prices:$`, sc.regionNamedWithPrices)
	ctx.Step(`^I scan all regions$`, sc.iScanAllRegions)
	ctx.Step(`^(\d+) regions should be ranked and (\d+) skipped$`, sc.regionsRankedAndSkipped)
	ctx.Step(`^rank (\d+) should be region "([^"]*)"$`, sc.rankShouldBeRegion)
	ctx.Step(`^the scan should report no region data$`, sc.theScanShouldReportNoRegionData)
}

func (sc *scannerContext) regionNamedWithPrices(regionID int, name string, table *godog.Table) error {
	prices, err := parsePriceTable(table)
	if err != nil {
		return err
	}
	sc.regionNames[int64(regionID)] = name
	sc.regionPrices[int64(regionID)] = prices
	return nil
}

func (sc *scannerContext) iScanAllRegions() error {
	if sc.recipe == nil {
		return fmt.Errorf("no recipe configured")
	}

	source := helpers.NewStaticPriceSource(sc.regionPrices)
	regions := make([]market.Region, 0, len(sc.regionNames))
	for id, name := range sc.regionNames {
		regions = append(regions, market.Region{ID: id, Name: name})
	}
	directory := helpers.NewStaticRegionDirectory(regions...)

	mediator := common.NewMediator()
	if err := common.RegisterHandler[*pricingQueries.FetchRegionPricesQuery](
		mediator, pricingQueries.NewFetchRegionPricesHandler(source, zap.NewNop())); err != nil {
		return err
	}
	if err := common.RegisterHandler[*manufacturingQueries.EvaluateRegionCostQuery](
		mediator, manufacturingQueries.NewEvaluateRegionCostHandler(
			source, mediator, shared.NewMockClock(time.Now()), zap.NewNop())); err != nil {
		return err
	}
	handler := scanQueries.NewScanRegionsHandler(directory, mediator, zap.NewNop())

	response, err := handler.Handle(context.Background(), &scanQueries.ScanRegionsQuery{
		Recipe:       sc.recipe,
		Fees:         sc.fees,
		Efficiencies: sc.eff,
	})
	if err != nil {
		sc.scanErr = err
		return nil
	}

	result, ok := response.(*scanQueries.ScanRegionsResponse)
	if !ok {
		return fmt.Errorf("unexpected response type")
	}

	names := make([]string, len(result.Ranking))
	for i, breakdown := range result.Ranking {
		names[i] = breakdown.RegionName
	}
	sc.scanResult = &scanResultState{
		ranked:  result.RegionsScanned,
		skipped: result.RegionsSkipped,
		regions: names,
	}
	return nil
}

func (sc *scannerContext) regionsRankedAndSkipped(ranked, skipped int) error {
	if sc.scanErr != nil {
		return fmt.Errorf("scan failed: %w", sc.scanErr)
	}
	if sc.scanResult == nil {
		return fmt.Errorf("no scan result")
	}
	if sc.scanResult.ranked != ranked {
		return fmt.Errorf("expected %d ranked regions, got %d", ranked, sc.scanResult.ranked)
	}
	if sc.scanResult.skipped != skipped {
		return fmt.Errorf("expected %d skipped regions, got %d", skipped, sc.scanResult.skipped)
	}
	return nil
}

func (sc *scannerContext) rankShouldBeRegion(rank int, name string) error {
	if sc.scanResult == nil {
		return fmt.Errorf("no scan result")
	}
	if rank < 1 || rank > len(sc.scanResult.regions) {
		return fmt.Errorf("rank %d out of range, %d regions ranked", rank, len(sc.scanResult.regions))
	}
	if got := sc.scanResult.regions[rank-1]; got != name {
		return fmt.Errorf("expected region %q at rank %s, got %q", name, strconv.Itoa(rank), got)
	}
	return nil
}

func (sc *scannerContext) theScanShouldReportNoRegionData() error {
	if sc.scanErr == nil {
		return fmt.Errorf("expected scan to fail, but it succeeded")
	}
	if !errors.Is(sc.scanErr, scanQueries.ErrNoRegionData) {
		return fmt.Errorf("expected no-region-data error, got: %v", sc.scanErr)
	}
	return nil
}
