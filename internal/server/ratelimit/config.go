package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a group of endpoints.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" matches every path below it
	Method string        // HTTP method; empty matches any method
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from the environment.
// getenv is os.Getenv outside tests.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	askLimit := env.int("RATE_LIMIT_ASK_LIMIT", 30)

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(askLimit),
	}
}

// DefaultEndpointConfigs returns the endpoint groups with their own budgets.
// Every request that reaches an AI provider shares the askLimit budget.
func DefaultEndpointConfigs(askLimit int) []EndpointConfig {
	burst := max(askLimit/6, 1)
	return []EndpointConfig{
		// Tier 1: requests that call an AI provider
		{Path: "/ask-ai/", Method: "POST", Limit: askLimit, Window: time.Minute, Burst: burst},
		{Path: "/chat", Method: "POST", Limit: askLimit, Window: time.Minute, Burst: burst},
		{Path: "/chat/stream", Method: "POST", Limit: askLimit, Window: time.Minute, Burst: burst},

		// Tier 2: exports start a headless browser
		{Path: "/resume/export/", Method: "GET", Limit: 20, Window: time.Minute, Burst: 5},

		// Tier 3: edits and reads use the default limit
		// Tier 4: health check and preflight are unlimited (see MatchEndpoint)
	}
}

type envReader func(string) string

func (e envReader) int(key string, defaultValue int) int {
	if value := e(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) bool(key string, defaultValue bool) bool {
	if value := e(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if value := e(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
