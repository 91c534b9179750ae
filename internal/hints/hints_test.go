package hints

// Notes:
// - Every constructor is checked against its exact output, so a wording
//   change shows up here. The prefix test guards the shared layout.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestHints - Exact hint text
// ---------------------------------------------------------------------------

func TestHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "config not found without user path",
			got:  ForConfigNotFound([]string{"team.yaml", "team.yml"}),
			want: "\n  hint: use --config /path/to/file.yaml",
		},
		{
			name: "config not found with user path",
			got:  ForConfigNotFound([]string{"team.yaml", "/home/u/.config/docconv/team.yaml", "/home/u/.config/docconv/team.yml"}),
			want: "\n  hint: use --config /path/to/file.yaml or create /home/u/.config/docconv/team.yaml",
		},
		{
			name: "output directory",
			got:  ForOutputDirectory(),
			want: "\n  hint: check parent directory exists and is writable",
		},
		{
			name: "style not found",
			got:  ForStyleNotFound([]string{"default", "minimal"}),
			want: "\n  hint: available: default, minimal",
		},
		{
			name: "style not found without styles",
			got:  ForStyleNotFound(nil),
			want: "",
		},
		{
			name: "unsupported format",
			got:  ForUnsupportedFormat([]string{"markdown", "html"}, []string{"markdown", "html", "plain"}),
			want: "\n  hint: readable: markdown, html; writable: markdown, html, plain",
		},
		{
			name: "unsupported format writable only",
			got:  ForUnsupportedFormat(nil, []string{"plain"}),
			want: "\n  hint: writable: plain",
		},
		{
			name: "unsupported format without formats",
			got:  ForUnsupportedFormat(nil, nil),
			want: "",
		},
		{
			name: "unknown format",
			got:  ForUnknownFormat(),
			want: "\n  hint: set the input format with --from",
		},
		{
			name: "unsupported option",
			got:  ForUnsupportedOption(),
			want: "\n  hint: run 'docconv formats' to see what each format supports",
		},
		{
			name: "parse",
			got:  ForParse(),
			want: "\n  hint: check that --from matches the input",
		},
		{
			name: "input too large",
			got:  ForInputTooLarge(),
			want: "\n  hint: raise maxInputSize in the config file (negative = unlimited)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestFormat - Shared layout
// ---------------------------------------------------------------------------

func TestFormat(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q, want empty", got)
	}
	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
	if got := formatHints([]string{"a", "b"}); got != "\n  hint: a; b" {
		t.Errorf("formatHints() = %q", got)
	}
	if got := format("x"); !strings.HasPrefix(got, "\n  hint: ") {
		t.Errorf("format() = %q, want hint prefix", got)
	}
}
