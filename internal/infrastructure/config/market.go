package config

// MarketConfig holds default trade fee percentages. Values are percents
// as a player would quote them, converted to fractions at the CLI
// boundary.
type MarketConfig struct {
	BrokerFeePct  float64 `mapstructure:"broker_fee_pct" validate:"gte=0,lt=100"`
	StationFeePct float64 `mapstructure:"station_fee_pct" validate:"gte=0,lt=100"`
	SalesTaxPct   float64 `mapstructure:"sales_tax_pct" validate:"gte=0,lt=100"`
}
