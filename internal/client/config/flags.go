package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/signage/internal/flagx"
)

// parseFlags populates selected client Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   server base URL (e.g., "http://127.0.0.1:8080")
//	-i string   screen id to display
//	-r int      refresh interval, minutes
//	-o int      request timeout, seconds
//	-d string   data directory for the local cache
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-i", "-r", "-o", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "server base URL")
	fs.StringVar(&config.ScreenID, "i", config.ScreenID, "screen id")

	refreshInterval := fs.Int("r", int(config.RefreshInterval.Minutes()), "refresh_interval (in minutes)")
	requestTimeout := fs.Int("o", int(config.RequestTimeout.Seconds()), "request_timeout (in seconds)")

	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.RefreshInterval = time.Duration(*refreshInterval) * time.Minute
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
