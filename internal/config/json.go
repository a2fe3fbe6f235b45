package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/carpool/internal/flagx"
	"github.com/dmitrijs2005/carpool/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// keep whatever the Config already holds.
type JsonConfig struct {
	DatabaseDSN        string          `json:"database_dsn"`
	LogLevel           string          `json:"log_level"`
	GeocoderURL        string          `json:"geocoder_url"`
	AutocompleteURL    string          `json:"autocomplete_url"`
	UserAgent          string          `json:"user_agent"`
	HTTPTimeout        *timex.Duration `json:"http_timeout"`
	GeocodeCacheTTL    *timex.Duration `json:"geocode_cache_ttl"`
	GeocodeCacheSize   int             `json:"geocode_cache_size"`
	GeocodeConcurrency int             `json:"geocode_concurrency"`
	SuggestDelay       *timex.Duration `json:"suggest_delay"`
	MapCenter          []float64       `json:"map_center"`
	MapZoom            int             `json:"map_zoom"`
	TileURL            string          `json:"tile_url"`
	TileAttribution    string          `json:"tile_attribution"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without such a flag nothing happens. Read or decode failures panic, as
// a broken config file is not something the CLI can run with.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.GeocoderURL, jc.GeocoderURL)
	setString(&cfg.AutocompleteURL, jc.AutocompleteURL)
	setString(&cfg.UserAgent, jc.UserAgent)
	setString(&cfg.TileURL, jc.TileURL)
	setString(&cfg.TileAttribution, jc.TileAttribution)

	if jc.HTTPTimeout != nil {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
	if jc.GeocodeCacheTTL != nil {
		cfg.GeocodeCacheTTL = jc.GeocodeCacheTTL.Duration
	}
	if jc.SuggestDelay != nil {
		cfg.SuggestDelay = jc.SuggestDelay.Duration
	}
	if jc.GeocodeCacheSize > 0 {
		cfg.GeocodeCacheSize = jc.GeocodeCacheSize
	}
	if jc.GeocodeConcurrency > 0 {
		cfg.GeocodeConcurrency = jc.GeocodeConcurrency
	}
	if len(jc.MapCenter) == 2 {
		cfg.MapCenterLat, cfg.MapCenterLon = jc.MapCenter[0], jc.MapCenter[1]
	}
	if jc.MapZoom > 0 {
		cfg.MapZoom = jc.MapZoom
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
