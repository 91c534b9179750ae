package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-docconv/internal/config"
)

// envPrefix is shared by every recognized variable.
const envPrefix = "DOCCONV_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // DOCCONV_CONFIG: config file name or path
	From       string // DOCCONV_FROM: source format
	To         string // DOCCONV_TO: target format
	Style      string // DOCCONV_STYLE: envelope CSS name
	AssetsDir  string // DOCCONV_ASSETS_DIR: custom asset directory
	OutputDir  string // DOCCONV_OUTPUT_DIR: default output directory
	LogLevel   string // DOCCONV_LOG_LEVEL: debug, info, warn, error
	LogFormat  string // DOCCONV_LOG_FORMAT: text, json
	Workers    int    // DOCCONV_WORKERS: parallel workers
}

// knownEnvVars lists valid DOCCONV_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCCONV_CONFIG":     true,
	"DOCCONV_FROM":       true,
	"DOCCONV_TO":         true,
	"DOCCONV_STYLE":      true,
	"DOCCONV_ASSETS_DIR": true,
	"DOCCONV_OUTPUT_DIR": true,
	"DOCCONV_LOG_LEVEL":  true,
	"DOCCONV_LOG_FORMAT": true,
	"DOCCONV_WORKERS":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("DOCCONV_CONFIG"),
		From:       getenv("DOCCONV_FROM"),
		To:         getenv("DOCCONV_TO"),
		Style:      getenv("DOCCONV_STYLE"),
		AssetsDir:  getenv("DOCCONV_ASSETS_DIR"),
		OutputDir:  getenv("DOCCONV_OUTPUT_DIR"),
		LogLevel:   getenv("DOCCONV_LOG_LEVEL"),
		LogFormat:  getenv("DOCCONV_LOG_FORMAT"),
	}

	// Parse int for workers
	if workers := getenv("DOCCONV_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized DOCCONV_* variables.
// Helps catch typos like DOCCONV_STYEL.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.From, env.From)
	set(&cfg.To, env.To)
	set(&cfg.Style, env.Style)
	set(&cfg.AssetsDir, env.AssetsDir)
	set(&cfg.Output.DefaultDir, env.OutputDir)
	set(&cfg.Log.Level, env.LogLevel)
	set(&cfg.Log.Format, env.LogFormat)
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
}
