package queries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/ganonim/eve-blueprint-master/internal/application/common"
	manufacturingQueries "github.com/ganonim/eve-blueprint-master/internal/application/manufacturing/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
	"github.com/ganonim/eve-blueprint-master/internal/domain/market"
)

// DefaultRegionConcurrency bounds in-flight region evaluations
const DefaultRegionConcurrency = 10

// ErrNoRegionData indicates a scan completed but no region produced a
// usable result. Distinct from an internal failure: callers can tell
// "everything was skipped" apart from "the scan crashed".
var ErrNoRegionData = errors.New("no region produced price data")

// ScanRegionsQuery requests a ranked cost evaluation of one recipe
// across every region in the directory
type ScanRegionsQuery struct {
	Recipe              *blueprint.Recipe
	Fees                manufacturing.Fees
	Efficiencies        manufacturing.Efficiencies
	RegionConcurrency   int64
	MaterialConcurrency int64
}

// ScanRegionsResponse carries the ranking and per-scan bookkeeping
type ScanRegionsResponse struct {
	ScanID         string
	Ranking        []*manufacturing.CostBreakdown
	RegionsScanned int
	RegionsSkipped int
}

// ScanRegionsHandler drives per-region evaluations across all known
// regions concurrently and ranks the survivors. Region evaluations are
// independent units of work: one region failing never cancels or
// corrupts its siblings, and the final sort happens exactly once after
// every task has settled.
type ScanRegionsHandler struct {
	regions  market.RegionDirectory
	mediator common.Mediator
	logger   *zap.Logger
}

// NewScanRegionsHandler creates a new scanner handler
func NewScanRegionsHandler(
	regions market.RegionDirectory,
	mediator common.Mediator,
	logger *zap.Logger,
) *ScanRegionsHandler {
	return &ScanRegionsHandler{
		regions:  regions,
		mediator: mediator,
		logger:   logger,
	}
}

// Handle executes the scan
func (h *ScanRegionsHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*ScanRegionsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	regions, err := h.regions.AllRegions()
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	limit := query.RegionConcurrency
	if limit <= 0 {
		limit = DefaultRegionConcurrency
	}

	scanID := shortScanID()
	h.logger.Info("region scan started",
		zap.String("scan_id", scanID),
		zap.String("product", query.Recipe.ProductName()),
		zap.Int("regions", len(regions)))

	var (
		sem     = semaphore.NewWeighted(limit)
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]*manufacturing.CostBreakdown, 0, len(regions))
		skipped int
	)

	for _, region := range regions {
		if region.Name == "" {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			// Scan cancelled: abandon admission, let in-flight tasks drain.
			break
		}

		wg.Add(1)
		go func(region market.Region) {
			defer wg.Done()
			defer sem.Release(1)

			response, err := h.mediator.Send(ctx, &manufacturingQueries.EvaluateRegionCostQuery{
				Recipe:              query.Recipe,
				Region:              region,
				Fees:                query.Fees,
				Efficiencies:        query.Efficiencies,
				MaterialConcurrency: query.MaterialConcurrency,
			})
			if err != nil {
				h.logger.Debug("region skipped",
					zap.String("scan_id", scanID),
					zap.Int64("region_id", region.ID),
					zap.String("region", region.Name),
					zap.Error(err))
				mu.Lock()
				skipped++
				mu.Unlock()
				return
			}

			result, ok := response.(*manufacturingQueries.EvaluateRegionCostResponse)
			if !ok {
				mu.Lock()
				skipped++
				mu.Unlock()
				return
			}

			mu.Lock()
			results = append(results, result.Breakdown)
			mu.Unlock()
		}(region)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("scan cancelled: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("scan %s over %d regions: %w", scanID, len(regions), ErrNoRegionData)
	}

	manufacturing.SortByProfit(results)

	h.logger.Info("region scan finished",
		zap.String("scan_id", scanID),
		zap.Int("ranked", len(results)),
		zap.Int("skipped", skipped))

	return &ScanRegionsResponse{
		ScanID:         scanID,
		Ranking:        results,
		RegionsScanned: len(results),
		RegionsSkipped: skipped,
	}, nil
}

// shortScanID generates an 8-character hex id tagging one scan run
func shortScanID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
