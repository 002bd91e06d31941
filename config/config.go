package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultCurrency is the fallback currency symbol for products and carts.
const DefaultCurrency = "ر.س"

// Config holds all application configuration.
type Config struct {
	// Catalog endpoint
	APIURL string

	// Catalog rules
	AllowedBrands []string
	PageSize      int

	// Rate limiting for catalog fetches
	RatePerSecond float64
	RateBurst     int
	MaxRetries    int

	// Local state (cart, theme, catalog snapshot)
	StateDir string

	// HTTP server (serve-http)
	HTTPPort string
	APIKey   string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:        "https://script.google.com/macros/s/AKfycby2Obsz6zZcEaRevj4JCj5qFm3Tkqbf5hXbtRsooxFqzIVaRR5yIOuGzBTpzo9mSEGflQ/exec",
		AllowedBrands: []string{"apple", "samsung", "google", "motorola"},
		PageSize:      16,
		RatePerSecond: 2.0,
		RateBurst:     3,
		MaxRetries:    2,
		HTTPPort:      "8080",
	}
}

// LoadFromEnv loads .env file (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("PHONESTORE_API_URL"); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv("PHONESTORE_BRANDS"); v != "" {
		var brands []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.ToLower(strings.TrimSpace(b)); b != "" {
				brands = append(brands, b)
			}
		}
		if len(brands) > 0 {
			c.AllowedBrands = brands
		}
	}
	if v := os.Getenv("PHONESTORE_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.PageSize = n
		}
	}
	if v := os.Getenv("PHONESTORE_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("PHONESTORE_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("PHONESTORE_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}
	if v := os.Getenv("PHONESTORE_STATE_DIR"); v != "" {
		c.StateDir = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("PHONESTORE_API_KEY"); v != "" {
		c.APIKey = v
	}
}

// BrandAllowed reports whether brand (already lowercased) is on the
// allow-list.
func (c *Config) BrandAllowed(brand string) bool {
	for _, b := range c.AllowedBrands {
		if b == brand {
			return true
		}
	}
	return false
}
