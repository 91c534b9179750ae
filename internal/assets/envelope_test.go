package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadEnvelope_Embedded(t *testing.T) {
	t.Parallel()

	env, err := LoadEnvelope(NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("LoadEnvelope() error = %v", err)
	}

	var b strings.Builder
	data := NewEnvelopeData(`A <b> & "c"`, "Ann", "2024-01-02", "p{}", "", "</style><script>")
	if err := env.Prelude(&b, data); err != nil {
		t.Fatalf("Prelude() error = %v", err)
	}
	b.WriteString("<p>x</p>\n")
	if err := env.Postlude(&b); err != nil {
		t.Fatalf("Postlude() error = %v", err)
	}
	got := b.String()

	for _, want := range []string{
		"<html>",
		"<head>",
		"<title>A &lt;b&gt; &amp; &#34;c&#34;</title>",
		`<meta name="author" content="Ann">`,
		`<meta name="date" content="2024-01-02">`,
		"p{}\n<\\/style><script>",
		"</head>\n<body>\n<p>x</p>\n</body>\n</html>\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("envelope output missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "</style>") != 1 {
		t.Errorf("stylesheet escaped its element:\n%s", got)
	}
}

func TestLoadEnvelope_OmitsEmptyFields(t *testing.T) {
	t.Parallel()

	env, err := LoadEnvelope(NewEmbeddedLoader())
	if err != nil {
		t.Fatalf("LoadEnvelope() error = %v", err)
	}

	var b strings.Builder
	if err := env.Prelude(&b, NewEnvelopeData("", "", "")); err != nil {
		t.Fatalf("Prelude() error = %v", err)
	}
	for _, absent := range []string{"<title>", `name="author"`, `name="date"`, "<style>"} {
		if strings.Contains(b.String(), absent) {
			t.Errorf("Prelude() wrote %q for empty data:\n%s", absent, b.String())
		}
	}
}

func TestParseEnvelope_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "syntax error", src: `{{define "prelude"}}{{.Title`},
		{name: "missing postlude", src: `{{define "prelude"}}<html>{{end}}`},
		{name: "missing prelude", src: `{{define "postlude"}}</html>{{end}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := ParseEnvelope(tt.src); !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("ParseEnvelope() error = %v, want ErrInvalidTemplate", err)
			}
		})
	}
}
