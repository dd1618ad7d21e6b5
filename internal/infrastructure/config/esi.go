package config

import "time"

// ESIConfig holds EVE Swagger Interface client configuration
type ESIConfig struct {
	// Base URL for the market service
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for transient server faults
type RetryConfig struct {
	// Total attempts per request, first try included
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=1"`

	// Fixed delay between attempts
	Delay time.Duration `mapstructure:"delay"`
}
