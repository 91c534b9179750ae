package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-docconv"
	"github.com/alnah/go-docconv/internal/fileutil"
	"github.com/alnah/go-docconv/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxNameLength = 64   // style and highlight style names
	MaxPathLength = 4096 // directories
	MaxChunkSize  = 1 << 20
	MaxWorkers    = 64
	MaxTOCDepth   = 6
)

const (
	configDirName   = "docconv"
	defaultLogLevel = "info"
)

// Accepted log settings.
var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds the CLI configuration. Zero values mean "use the default".
type Config struct {
	From           string       `yaml:"from"`           // source format name (empty = infer from file extension)
	To             string       `yaml:"to"`             // target format name (empty = html)
	Options        []string     `yaml:"options"`        // toc, standalone, highlight
	Extensions     []string     `yaml:"extensions"`     // autolink, typographer, hardbreaks
	Style          string       `yaml:"style"`          // envelope CSS name
	AssetsDir      string       `yaml:"assetsDir"`      // overrides embedded styles/templates
	HighlightStyle string       `yaml:"highlightStyle"` // chroma style name
	ChunkSize      int          `yaml:"chunkSize"`      // sink buffer size in bytes
	MaxInputSize   int64        `yaml:"maxInputSize"`   // bytes, negative = unlimited
	TOCDepth       int          `yaml:"tocDepth"`       // 1-6
	Workers        int          `yaml:"workers"`        // parallel conversions (0 = auto)
	Output         OutputConfig `yaml:"output"`
	Log            LogConfig    `yaml:"log"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// LogConfig defines logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Validate checks every field. Called by LoadConfig, and by the CLI after
// flags and environment variables are merged.
func (c *Config) Validate() error {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"from", c.From},
		{"to", c.To},
	} {
		if f.value == "" {
			continue
		}
		if _, err := docconv.ParseFormat(f.value); err != nil {
			return fmt.Errorf("%w: %s: unknown format %q", ErrInvalidValue, f.name, f.value)
		}
	}

	if _, err := docconv.ParseOptions(strings.Join(c.Options, ",")); err != nil {
		return fmt.Errorf("%w: options: %v", ErrInvalidValue, err)
	}
	if _, err := docconv.ParseExtensions(strings.Join(c.Extensions, ",")); err != nil {
		return fmt.Errorf("%w: extensions: %v", ErrInvalidValue, err)
	}

	if err := validateFieldLength("style", c.Style, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlightStyle", c.HighlightStyle, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("assetsDir", c.AssetsDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.ChunkSize < 0 || c.ChunkSize > MaxChunkSize {
		return fmt.Errorf("%w: chunkSize: must be between 0 and %d, got %d", ErrInvalidValue, MaxChunkSize, c.ChunkSize)
	}
	if c.TOCDepth < 0 || c.TOCDepth > MaxTOCDepth {
		return fmt.Errorf("%w: tocDepth: must be between 0 and %d, got %d", ErrInvalidValue, MaxTOCDepth, c.TOCDepth)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	if c.Log.Level != "" && !oneOf(c.Log.Level, logLevels) {
		return fmt.Errorf("%w: log.level: %q (must be %s)", ErrInvalidValue, c.Log.Level, strings.Join(logLevels, ", "))
	}
	if c.Log.Format != "" && !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("%w: log.format: %q (must be %s)", ErrInvalidValue, c.Log.Format, strings.Join(logFormats, ", "))
	}

	return nil
}

func oneOf(v string, allowed []string) bool {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a configuration that leaves every engine setting at
// its default.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: defaultLogLevel, Format: "text"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Decode(data, cfg, yamlutil.Strict); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// the current directory, then the user config directory, each with .yaml
// before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
