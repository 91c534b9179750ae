package docconv

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    Options
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"single", "toc", OptGenerateTOC, false},
		{"several", "toc, Standalone,highlight", OptGenerateTOC | OptStandalone | OptHighlightCode, false},
		{"order does not matter", "highlight,toc", OptGenerateTOC | OptHighlightCode, false},
		{"duplicates", "toc,toc", OptGenerateTOC, false},
		{"trailing comma", "standalone,", OptStandalone, false},
		{"unknown", "toc,pdf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOptions(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedOption) {
					t.Fatalf("ParseOptions(%q) error = %v, want ErrUnsupportedOption", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseOptions(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseOptions(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseExtensions(t *testing.T) {
	t.Parallel()

	got, err := ParseExtensions("autolink,hardbreaks")
	if err != nil {
		t.Fatalf("ParseExtensions() unexpected error: %v", err)
	}
	if got != ExtAutolink|ExtHardLineBreaks {
		t.Errorf("ParseExtensions() = %v", got)
	}

	if _, err := ParseExtensions("toc"); !errors.Is(err, ErrUnsupportedOption) {
		t.Errorf("ParseExtensions(\"toc\") error = %v, want ErrUnsupportedOption", err)
	}
}

func TestOptions_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		opts Options
		want string
	}{
		{0, ""},
		{OptStandalone, "standalone"},
		{OptHighlightCode | OptGenerateTOC, "toc,highlight"},
		{OptGenerateTOC | Options(1<<8), "toc,0x100"},
	}
	for _, tt := range tests {
		if got := tt.opts.String(); got != tt.want {
			t.Errorf("Options(%d).String() = %q, want %q", tt.opts, got, tt.want)
		}
	}

	if got := (ExtTypographer | ExtAutolink).String(); got != "autolink,typographer" {
		t.Errorf("Extensions.String() = %q", got)
	}
}

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	if err := (OptGenerateTOC | OptStandalone | OptHighlightCode).Validate(); err != nil {
		t.Errorf("Validate() on known options: %v", err)
	}
	err := Options(1 << 5).Validate()
	if KindOf(err) != KindUnsupportedOption {
		t.Errorf("Validate() = %v, want UnsupportedOption", err)
	}
	if err := Extensions(1 << 9).Validate(); KindOf(err) != KindUnsupportedOption {
		t.Errorf("Extensions.Validate() = %v, want UnsupportedOption", err)
	}
}

func TestOptionNames(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"toc", "standalone", "highlight"}, OptionNames()); diff != "" {
		t.Errorf("OptionNames() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"autolink", "typographer", "hardbreaks"}, ExtensionNames()); diff != "" {
		t.Errorf("ExtensionNames() mismatch (-want +got):\n%s", diff)
	}
}
