package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig returns an enabled configuration allowing rps requests per second per
// client with the given burst, plus the default endpoint overrides.
func DefaultConfig(rps float64, burst int) *Config {
	return &Config{
		Enabled:           true,
		RequestsPerSecond: rps,
		Burst:             burst,
		CleanupInterval:   5 * time.Minute,
		IdleTimeout:       time.Hour,
		Whitelist:         make(map[string]bool),
		Blacklist:         make(map[string]bool),
		EndpointConfigs:   DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Document parsing and bulk writes
		{Path: "/candidates/upload", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/import", Method: "POST", Limit: 10, Window: time.Minute, Burst: 2},

		// Whole-pool rescoring
		{Path: "/jobs/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Dictionary edits
		{Path: "/dictionary/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/dictionary/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
