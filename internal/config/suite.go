package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DefaultTimeout applies to every element action unless DEFAULT_TIMEOUT_MS overrides it.
const DefaultTimeout = 30 * time.Second

// Supported browser engines
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// SuiteConfig holds the test-run configuration consumed by the login fixture
type SuiteConfig struct {
	BaseURL  string
	Username string
	Password string
	Browser  string
	Headless bool
	Timeout  time.Duration
}

// LoadSuiteConfig loads test-run configuration from environment variables.
// An empty STORE_BASE_URL selects local mode, where credentials are optional
// because the caller provides its own storefront.
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:  strings.TrimSpace(getenv("STORE_BASE_URL")),
		Username: getenv("STORE_USERNAME"),
		Password: getenv("STORE_PASSWORD"),
		Browser:  strings.ToLower(valueOr(getenv("BROWSER"), BrowserChromium)),
		Headless: true,
		Timeout:  DefaultTimeout,
	}

	if config.BaseURL != "" {
		if config.Username == "" {
			return nil, fmt.Errorf("STORE_USERNAME is required")
		}
		if config.Password == "" {
			return nil, fmt.Errorf("STORE_PASSWORD is required")
		}
	}

	switch config.Browser {
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, fmt.Errorf("BROWSER must be one of %s, %s, %s: got %q",
			BrowserChromium, BrowserFirefox, BrowserWebKit, config.Browser)
	}

	if raw := getenv("HEADLESS"); raw != "" {
		headless, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("HEADLESS must be a boolean: %w", err)
		}
		config.Headless = headless
	}

	if raw := getenv("DEFAULT_TIMEOUT_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("DEFAULT_TIMEOUT_MS must be a positive integer: got %q", raw)
		}
		config.Timeout = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}

// Local reports whether no remote storefront is configured
func (c *SuiteConfig) Local() bool {
	return c.BaseURL == ""
}

// LoginURL returns the account login route for the configured storefront
func (c *SuiteConfig) LoginURL() string {
	return LoginURL(c.BaseURL)
}

// LoginURL builds the login route of an OpenCart-style entry URL
func LoginURL(baseURL string) string {
	return baseURL + "?route=account/login"
}
