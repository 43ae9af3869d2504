package config

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultGorestBaseURL is the public users collection exercised by the API scenarios.
const DefaultGorestBaseURL = "https://gorest.co.in/public/v2/users"

// GorestConfig holds configuration for the users REST API
type GorestConfig struct {
	BaseURL string
	Token   string
	// RateLimit caps outgoing requests per second. Zero means unlimited.
	RateLimit float64
}

// LoadGorestConfig loads users API configuration from environment variables
func LoadGorestConfig(getenv func(string) string) (*GorestConfig, error) {
	config := GorestConfig{
		BaseURL: strings.TrimRight(getenv("GOREST_BASE_URL"), "/"),
		Token:   getenv("GOREST_TOKEN"),
	}

	if config.Token == "" {
		return nil, fmt.Errorf("GOREST_TOKEN is required")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultGorestBaseURL
	}

	if raw := getenv("GOREST_RATE_LIMIT"); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("GOREST_RATE_LIMIT must be a non-negative number: got %q", raw)
		}
		config.RateLimit = rps
	}

	return &config, nil
}

// UserURL returns the resource URL of a single user
func (c *GorestConfig) UserURL(id int64) string {
	return fmt.Sprintf("%s/%d", c.BaseURL, id)
}
