package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/ganonim/eve-blueprint-master/internal/application/scan/queries"
	"github.com/ganonim/eve-blueprint-master/internal/domain/blueprint"
	"github.com/ganonim/eve-blueprint-master/internal/domain/manufacturing"
)

// renderBreakdown prints one region's full material breakdown
func renderBreakdown(b *manufacturing.CostBreakdown) {
	fmt.Printf("\n=== %s (region: %s) ===\n", b.ProductName, b.RegionName)
	fmt.Printf("Output: %d per run, production time %s\n", b.OutputQuantity, formatDuration(b.ProductionTime))
	fmt.Printf("Evaluated: %s\n\n", b.Timestamp.Format("2006-01-02 15:04:05"))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MATERIAL\tTYPE ID\tQTY\tUNIT PRICE\tLINE TOTAL")
	for _, line := range b.Materials {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
			line.Name, line.TypeID, line.Quantity, formatISK(line.EffectiveUnitPrice), formatISK(line.LineTotal))
	}
	w.Flush()

	fmt.Printf("\nTotal material cost: %s ISK\n", formatISK(b.TotalMaterialCost))
	fmt.Printf("Sell total (after tax): %s ISK\n", formatISK(b.SellPriceTotal))
	fmt.Printf("Profit: %s ISK\n", formatISK(b.Profit))
	fmt.Printf("Build index: %.2f%%\n", b.BuildIndex)
}

// renderRanking prints the scan result as a ranked region table
func renderRanking(recipe *blueprint.Recipe, result *queries.ScanRegionsResponse, topN int) {
	ranking := result.Ranking
	if topN > 0 && topN < len(ranking) {
		ranking = ranking[:topN]
	}

	fmt.Printf("\n=== Scan %s: %s ===\n", result.ScanID, recipe.ProductName())
	fmt.Printf("Regions ranked: %d, skipped: %d\n\n", result.RegionsScanned, result.RegionsSkipped)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tREGION\tCOST\tSELL TOTAL\tPROFIT\tBUILD INDEX")
	for i, b := range ranking {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.2f%%\n",
			i+1, b.RegionName,
			formatISK(b.TotalMaterialCost), formatISK(b.SellPriceTotal),
			formatISK(b.Profit), b.BuildIndex)
	}
	w.Flush()
}

// formatISK renders a price with thousands separators and two decimals
func formatISK(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}
	s := strconv.FormatFloat(v, 'f', 2, 64)

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var grouped strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + "." + parts[1]
	if negative {
		return "-" + out
	}
	return out
}

// formatDuration renders a production time as h/m/s without fractions
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	s := d - m*time.Minute

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s/time.Second)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s/time.Second)
	default:
		return fmt.Sprintf("%ds", s/time.Second)
	}
}
