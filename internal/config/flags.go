package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/carpool/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Only the flags listed in doc.go are considered; everything else in args
// is filtered out with flagx.FilterArgs. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-d", "-g", "-s", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.GeocoderURL, "g", cfg.GeocoderURL, "geocoder base URL")
	fs.StringVar(&cfg.AutocompleteURL, "s", cfg.AutocompleteURL, "address autocomplete base URL")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds, 0 = none)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is whole seconds; apply it only when given so a finer JSON value survives
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.HTTPTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
