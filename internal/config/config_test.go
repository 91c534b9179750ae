package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.From != "" || cfg.To != "" {
		t.Errorf("From/To = %q/%q, want empty", cfg.From, cfg.To)
	}
	if cfg.Style != "" {
		t.Errorf("Style = %q, want empty", cfg.Style)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want text", cfg.Log.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		maxLength int
		wantErr   bool
	}{
		{
			name:      "empty value is valid",
			fieldName: "test",
			value:     "",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value at limit is valid",
			fieldName: "test",
			value:     "1234567890",
			maxLength: 10,
			wantErr:   false,
		},
		{
			name:      "value over limit returns error",
			fieldName: "test.field",
			value:     "12345678901",
			maxLength: 10,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength(tt.fieldName, tt.value, tt.maxLength)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), tt.fieldName) {
					t.Errorf("error should mention %q: %v", tt.fieldName, err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"known formats", func(c *Config) { c.From, c.To = "md", "HTML" }, nil},
		{"unknown source format", func(c *Config) { c.From = "docx" }, ErrInvalidValue},
		{"unknown target format", func(c *Config) { c.To = "pdf" }, ErrInvalidValue},
		{"known options", func(c *Config) { c.Options = []string{"toc", "standalone", "highlight"} }, nil},
		{"unknown option", func(c *Config) { c.Options = []string{"toc", "watermark"} }, ErrInvalidValue},
		{"known extensions", func(c *Config) { c.Extensions = []string{"autolink", "hardbreaks"} }, nil},
		{"unknown extension", func(c *Config) { c.Extensions = []string{"tables"} }, ErrInvalidValue},
		{"style too long", func(c *Config) { c.Style = strings.Repeat("s", MaxNameLength+1) }, ErrFieldTooLong},
		{"highlight style too long", func(c *Config) { c.HighlightStyle = strings.Repeat("h", MaxNameLength+1) }, ErrFieldTooLong},
		{"assets dir too long", func(c *Config) { c.AssetsDir = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
		{"negative chunk size", func(c *Config) { c.ChunkSize = -1 }, ErrInvalidValue},
		{"chunk size over max", func(c *Config) { c.ChunkSize = MaxChunkSize + 1 }, ErrInvalidValue},
		{"chunk size at max", func(c *Config) { c.ChunkSize = MaxChunkSize }, nil},
		{"negative max input is unlimited", func(c *Config) { c.MaxInputSize = -1 }, nil},
		{"toc depth seven", func(c *Config) { c.TOCDepth = 7 }, ErrInvalidValue},
		{"toc depth three", func(c *Config) { c.TOCDepth = 3 }, nil},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrInvalidValue},
		{"too many workers", func(c *Config) { c.Workers = MaxWorkers + 1 }, ErrInvalidValue},
		{"log level upper case", func(c *Config) { c.Log.Level = "DEBUG" }, nil},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }, ErrInvalidValue},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "test.yaml", `from: markdown
to: html
options: [toc, standalone]
extensions:
  - autolink
style: minimal
highlightStyle: monokai
chunkSize: 8192
maxInputSize: 1048576
tocDepth: 3
workers: 4
output:
  defaultDir: out
log:
  level: debug
  format: json
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := &Config{
			From:           "markdown",
			To:             "html",
			Options:        []string{"toc", "standalone"},
			Extensions:     []string{"autolink"},
			Style:          "minimal",
			HighlightStyle: "monokai",
			ChunkSize:      8192,
			MaxInputSize:   1048576,
			TOCDepth:       3,
			Workers:        4,
			Output:         OutputConfig{DefaultDir: "out"},
			Log:            LogConfig{Level: "debug", Format: "json"},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("omitted log settings keep defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "partial.yaml", "to: plain\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
			t.Errorf("Log = %+v, want defaults", cfg.Log)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "style: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "style: default\npageSize: a4\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "tocDepth: 9\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	// Changes the working directory; not parallel.
	dir := t.TempDir()
	t.Chdir(dir)

	writeConfig(t, dir, "work.yml", "to: markdown\n")

	cfg, err := LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig(\"work\") error = %v", err)
	}
	if cfg.To != "markdown" {
		t.Errorf("To = %q, want markdown", cfg.To)
	}

	writeConfig(t, dir, "work.yaml", "to: plain\n")
	cfg, err = LoadConfig("work")
	if err != nil {
		t.Fatalf("LoadConfig(\"work\") error = %v", err)
	}
	if cfg.To != "plain" {
		t.Errorf("To = %q, want plain (.yaml preferred over .yml)", cfg.To)
	}

	_, err = LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should list tried paths: %v", err)
	}
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("work")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("local candidates = %v, want work.yaml, work.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("docconv", "work.")) {
			t.Errorf("user candidate %q not under docconv config dir", p)
		}
	}
}
