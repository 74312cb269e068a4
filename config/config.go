package config

import (
	"flag"
	"os"
	"strconv"
)

// Config holds server configuration
type Config struct {
	DNSPort int    // DNS server UDP port
	WebPort int    // Web dashboard port
	DataDir string // Zone record database directory
}

// Default returns a config with default values
func Default() *Config {
	return &Config{
		DNSPort: 5353,
		WebPort: 8080,
		DataDir: "./data",
	}
}

// Load builds the config from defaults, then environment variables,
// then command-line flags. Calls flag.Parse.
func Load() *Config {
	cfg := Default()

	if v, ok := os.LookupEnv("TANUKIDNS_DNS_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.DNSPort = p
		}
	}
	if v, ok := os.LookupEnv("TANUKIDNS_WEB_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.WebPort = p
		}
	}
	if v, ok := os.LookupEnv("TANUKIDNS_DATA_DIR"); ok {
		cfg.DataDir = v
	}

	flag.IntVar(&cfg.DNSPort, "dns-port", cfg.DNSPort, "UDP port to serve DNS on. Also env var TANUKIDNS_DNS_PORT")
	flag.IntVar(&cfg.WebPort, "web-port", cfg.WebPort, "TCP port for the web dashboard. Also env var TANUKIDNS_WEB_PORT")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory to store zone records in. Also env var TANUKIDNS_DATA_DIR")
	flag.Parse()

	return cfg
}
