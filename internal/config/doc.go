// Package config loads runtime configuration for the carpool CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database DSN (file path for SQLite, postgres:// URL for Postgres)
//	-g string   geocoder (Nominatim) base URL
//	-s string   address autocomplete base URL
//	-l string   log level: debug, info, warn, error
//	-t int      HTTP timeout in seconds for external lookups (0 = none)
//
// # JSON schema
//
// Durations accept strings like "24h" or integer nanoseconds:
//
//	{
//	  "database_dsn": "carpool.db",
//	  "geocoder_url": "https://nominatim.openstreetmap.org",
//	  "autocomplete_url": "https://api-adresse.data.gouv.fr",
//	  "geocode_cache_ttl": "24h",
//	  "map_center": [48.8566, 2.3522],
//	  "map_zoom": 12
//	}
//
// Environment variables are not read.
package config
