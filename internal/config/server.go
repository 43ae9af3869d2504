package config

// Local storefront defaults. The e2e suite logs in with these when no
// STORE_BASE_URL is configured.
const (
	DefaultDemoEmail    = "demo.shopper@storeqa.test"
	DefaultDemoPassword = "Shopper@2024"
	DefaultAPIToken     = "storeqa-local-token"
)

// ServerConfig holds settings for the local storefront server
type ServerConfig struct {
	Port         string
	APIToken     string
	DemoEmail    string
	DemoPassword string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) ServerConfig {
	return ServerConfig{
		Port:         valueOr(getenv("PORT"), "8080"),
		APIToken:     valueOr(getenv("STORE_API_TOKEN"), DefaultAPIToken),
		DemoEmail:    valueOr(getenv("STORE_DEMO_EMAIL"), DefaultDemoEmail),
		DemoPassword: valueOr(getenv("STORE_DEMO_PASSWORD"), DefaultDemoPassword),
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
