package config

// ScanConfig holds concurrency bounds for multi-region scans. The two
// levels are independent: regions in flight and material fetches per
// region.
type ScanConfig struct {
	RegionConcurrency   int64 `mapstructure:"region_concurrency" validate:"min=1"`
	MaterialConcurrency int64 `mapstructure:"material_concurrency" validate:"min=1"`
}
