package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// ESI defaults
	if cfg.ESI.BaseURL == "" {
		cfg.ESI.BaseURL = "https://esi.evetech.net/latest"
	}
	if cfg.ESI.Timeout == 0 {
		cfg.ESI.Timeout = 10 * time.Second
	}
	if cfg.ESI.RateLimit.Requests == 0 {
		cfg.ESI.RateLimit.Requests = 20
	}
	if cfg.ESI.RateLimit.Burst == 0 {
		cfg.ESI.RateLimit.Burst = 20
	}
	if cfg.ESI.Retry.MaxAttempts == 0 {
		cfg.ESI.Retry.MaxAttempts = 3
	}
	if cfg.ESI.Retry.Delay == 0 {
		cfg.ESI.Retry.Delay = 1 * time.Second
	}

	// Scan defaults
	if cfg.Scan.RegionConcurrency == 0 {
		cfg.Scan.RegionConcurrency = 10
	}
	if cfg.Scan.MaterialConcurrency == 0 {
		cfg.Scan.MaterialConcurrency = 10
	}

	// Market fee defaults
	if cfg.Market.BrokerFeePct == 0 {
		cfg.Market.BrokerFeePct = 3.0
	}
	if cfg.Market.StationFeePct == 0 {
		cfg.Market.StationFeePct = 10.0
	}
	if cfg.Market.SalesTaxPct == 0 {
		cfg.Market.SalesTaxPct = 0.5
	}

	// Catalog defaults
	if cfg.Catalog.TypeIDPath == "" {
		cfg.Catalog.TypeIDPath = "resources/typeid.json"
	}
	if cfg.Catalog.BlueprintsPath == "" {
		cfg.Catalog.BlueprintsPath = "resources/blueprints_materials.json"
	}
	if cfg.Catalog.RegionsPath == "" {
		cfg.Catalog.RegionsPath = "resources/regions.json"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
