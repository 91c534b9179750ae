// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/docconv/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/docconv) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/docconv") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForUnsupportedFormat lists the formats that can be read and written.
func ForUnsupportedFormat(readable, writable []string) string {
	var hints []string
	if len(readable) > 0 {
		hints = append(hints, "readable: "+strings.Join(readable, ", "))
	}
	if len(writable) > 0 {
		hints = append(hints, "writable: "+strings.Join(writable, ", "))
	}
	return formatHints(hints)
}

// ForUnknownFormat returns a hint for inputs whose format cannot be inferred.
func ForUnknownFormat() string {
	return format("set the input format with --from")
}

// ForUnsupportedOption points at the command listing capabilities.
func ForUnsupportedOption() string {
	return format("run 'docconv formats' to see what each format supports")
}

// ForParse suggests checking the declared input format.
func ForParse() string {
	return format("check that --from matches the input")
}

// ForInputTooLarge suggests raising the input limit.
func ForInputTooLarge() string {
	return format("raise maxInputSize in the config file (negative = unlimited)")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
