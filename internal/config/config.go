// Package config provides functionality for managing configuration options
// for the client using command-line flags, environment variables and an
// optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the backend API base URL.
	BaseURL string `json:"base_url" env:"ELIKIA_API_URL"`

	// SessionFile is the path of the durable session credential file.
	SessionFile string `json:"session_file" env:"ELIKIA_SESSION_FILE"`

	// PageSize is the default page size for paginated listings.
	PageSize int `json:"page_size" env:"ELIKIA_PAGE_SIZE"`

	// Timeout bounds every HTTP call.
	Timeout time.Duration `json:"timeout" env:"ELIKIA_TIMEOUT"`

	// Config is the path to the config file.
	Config string `json:"-" env:"ELIKIA_CONFIG"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.BaseURL, "url", "http://localhost:8080/api", "backend API base URL")
	flag.StringVar(&options.SessionFile, "session", "session.json", "path to session credential file")
	flag.IntVar(&options.PageSize, "size", 12, "default page size for listings")
	flag.DurationVar(&options.Timeout, "timeout", 10*time.Second, "HTTP request timeout")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file and the
// environment to produce the effective configuration. Precedence, lowest
// to highest: flag defaults, config file, environment variables.
func Parse() *Options {
	flag.Parse()

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Environment variables win over flags and file values.
	if err := env.Parse(options); err != nil {
		log.Fatalf("error while parsing environment: %v", err)
	}

	return options
}
