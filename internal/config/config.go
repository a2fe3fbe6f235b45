package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the carpool CLI.
type Config struct {
	DatabaseDSN string
	LogLevel    string

	GeocoderURL     string
	AutocompleteURL string
	UserAgent       string
	// HTTPTimeout bounds each external lookup; zero means no timeout.
	HTTPTimeout time.Duration

	// GeocodeCacheTTL of zero or less disables the geocoding cache.
	GeocodeCacheTTL    time.Duration
	GeocodeCacheSize   int
	GeocodeConcurrency int
	SuggestDelay       time.Duration

	MapCenterLat    float64
	MapCenterLon    float64
	MapZoom         int
	TileURL         string
	TileAttribution string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "carpool.db"
	c.LogLevel = "info"

	c.GeocoderURL = "https://nominatim.openstreetmap.org"
	c.AutocompleteURL = "https://api-adresse.data.gouv.fr"
	c.UserAgent = "carpool-cli/1.0"
	c.HTTPTimeout = 0

	c.GeocodeCacheTTL = 24 * time.Hour
	c.GeocodeCacheSize = 1000
	c.GeocodeConcurrency = 8
	c.SuggestDelay = 250 * time.Millisecond

	c.MapCenterLat = 48.8566
	c.MapCenterLon = 2.3522
	c.MapZoom = 12
	c.TileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	c.TileAttribution = "© OpenStreetMap"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
