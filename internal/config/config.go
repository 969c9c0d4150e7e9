package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env  string
	Port string

	WFMBaseURL        string
	WFMOrderTimeout   time.Duration
	WFMCatalogTimeout time.Duration

	CatalogCacheTTL time.Duration

	EstimateRateMax    int
	EstimateRateWindow time.Duration
}

// Load reads configuration from the environment with defaults suitable for
// local development. The upstream timeouts are the warframe.market call
// budgets: 10s per order-book fetch, 15s for the full catalog.
func Load() *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("WFM_BASE_URL", "https://api.warframe.market/v2")
	v.SetDefault("WFM_ORDER_TIMEOUT", "10s")
	v.SetDefault("WFM_CATALOG_TIMEOUT", "15s")
	v.SetDefault("CATALOG_CACHE_TTL", "24h")
	v.SetDefault("ESTIMATE_RATE_MAX", 30)
	v.SetDefault("ESTIMATE_RATE_WINDOW", "1m")

	return &Config{
		Env:                v.GetString("ENV"),
		Port:               v.GetString("PORT"),
		WFMBaseURL:         v.GetString("WFM_BASE_URL"),
		WFMOrderTimeout:    v.GetDuration("WFM_ORDER_TIMEOUT"),
		WFMCatalogTimeout:  v.GetDuration("WFM_CATALOG_TIMEOUT"),
		CatalogCacheTTL:    v.GetDuration("CATALOG_CACHE_TTL"),
		EstimateRateMax:    v.GetInt("ESTIMATE_RATE_MAX"),
		EstimateRateWindow: v.GetDuration("ESTIMATE_RATE_WINDOW"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
