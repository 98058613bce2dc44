package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited is returned for endpoints that are never limited
var unlimited = &EndpointConfig{Path: "*"}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact paths win over prefix paths; among prefixes the longest wins.
// Returns nil if no configuration matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodOptions || (path == "/health" && method == http.MethodGet) {
		return unlimited
	}

	var best *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != "" && config.Method != method {
			continue
		}
		if config.Path == path {
			return config
		}
		if strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			if best == nil || len(config.Path) > len(best.Path) {
				best = config
			}
		}
	}
	return best
}
