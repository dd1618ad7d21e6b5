package manufacturing

import "sort"

// SortByProfit orders breakdowns by profit descending, ties broken by
// region id ascending so repeated scans over identical data rank
// identically. It must be applied once after all results are collected,
// never incrementally.
func SortByProfit(breakdowns []*CostBreakdown) {
	sort.SliceStable(breakdowns, func(i, j int) bool {
		if breakdowns[i].Profit != breakdowns[j].Profit {
			return breakdowns[i].Profit > breakdowns[j].Profit
		}
		return breakdowns[i].RegionID < breakdowns[j].RegionID
	})
}
