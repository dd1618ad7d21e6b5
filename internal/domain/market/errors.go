package market

import "errors"

var (
	// ErrPriceUnavailable indicates a price could not be obtained: an empty
	// order book, a missing summary entry, or exhausted retries. It degrades
	// the owning region to "incomplete"; it never aborts a scan.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrIncompletePriceData indicates at least one material or the output
	// item lacked a usable price, so the region is excluded from results
	ErrIncompletePriceData = errors.New("incomplete price data")

	// ErrRegionNotFound indicates a region name matched no directory entry
	ErrRegionNotFound = errors.New("region not found")
)
