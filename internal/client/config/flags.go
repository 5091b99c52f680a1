package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkazymov/dealerdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   backend base URL
//	-b int      identity check bound in seconds
//	-l string   log level
//
// Arguments are filtered through flagx.FilterArgs so flags owned by other
// stages (such as -config) do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	bound := fs.Int("b", int(cfg.CheckBound.Seconds()), "identity check bound (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CheckBound = time.Duration(*bound) * time.Second
}
