package cmd

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig. A .env file in the working
// directory is loaded first, variables already set win over it.
const (
	EnvDocument     = "MM_DOCUMENT"
	EnvBonds        = "MM_BONDS"
	EnvLogLevel     = "MM_LOG_LEVEL"
	EnvPrettyLog    = "MM_PRETTY_LOG"
	EnvWorkers      = "MM_WORKERS"
	EnvQuoteMapping = "MM_QUOTE_MAPPING"
)

// Config holds the settings shared by every subcommand.
type Config struct {
	Document     string // instrument document path
	Bonds        string // bonds file path
	LogLevel     string // debug, info, warn, error
	PrettyLog    bool   // human readable logs on stderr
	Workers      int    // evaluation workers, sequential when <= 1
	QuoteMapping string // default mapping of the quotes subcommand
	Raw          bool   // print markdown as is, without terminal rendering
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	return Config{
		Document:     getEnv(EnvDocument, "lecaps.json"),
		Bonds:        getEnv(EnvBonds, "bonds.json"),
		LogLevel:     getEnv(EnvLogLevel, "warn"),
		PrettyLog:    getEnvAsBool(EnvPrettyLog, true),
		Workers:      getEnvAsInt(EnvWorkers, 1),
		QuoteMapping: getEnv(EnvQuoteMapping, ""),
	}
}

// SetFlags declares the global flags, defaulting to the current values.
func (c *Config) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.Document, "document", c.Document, "Path to the instrument document (JSON). Env: "+EnvDocument)
	f.StringVar(&c.Bonds, "bonds", c.Bonds, "Path to the bonds file (JSON). Env: "+EnvBonds)
	f.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error. Env: "+EnvLogLevel)
	f.BoolVar(&c.PrettyLog, "pretty-log", c.PrettyLog, "Human readable logs. Env: "+EnvPrettyLog)
	f.IntVar(&c.Workers, "workers", c.Workers, "Number of concurrent evaluation workers. Env: "+EnvWorkers)
	f.BoolVar(&c.Raw, "raw", c.Raw, "Print markdown without terminal rendering")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
