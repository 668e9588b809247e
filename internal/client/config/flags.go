package config

import (
	"flag"
	"os"

	"github.com/soukbid/soukbid-cli/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   base URL of the REST backend
//	-w string   URL of the push-event endpoint
//	-d string   path of the on-device state database
//	-v          verbose (debug) logging
//
// Only the flags owned by this package are parsed; the argument list is
// filtered first so the -c/-config flag handled by the JSON layer does not
// interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-w", "-d", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the auction backend")
	fs.StringVar(&cfg.WSURL, "w", cfg.WSURL, "URL of the push-event endpoint")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the local state database")
	fs.BoolVar(&cfg.Debug, "v", cfg.Debug, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
