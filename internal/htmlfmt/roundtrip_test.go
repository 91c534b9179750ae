package htmlfmt

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docconv/internal/pipeline"
)

// Every document the Reader produces must survive Write followed by Read.
func TestRoundTrip(t *testing.T) {
	t.Parallel()

	corpus := []struct {
		name string
		src  string
	}{
		{name: "basic", src: "<h1>Title</h1><p>Hello <em>world</em></p>"},
		{name: "duplicate headings", src: `<h1>A</h1><h1>A</h1><h2 id="custom">A</h2><h1 id="a-2">B</h1>`},
		{name: "repeated explicit ids", src: `<h1 id="x">X</h1><h1 id="x">X</h1>`},
		{name: "whitespace", src: "<p>\n  a  <b> b </b>\n c <br> d\n</p>"},
		{name: "lists", src: "<ul><li>a<ul><li>b</li></ul></li><li><p>c</p><p>d</p></li><li></li></ul><ol><li>x</li></ol>"},
		{name: "stray list content", src: "<ul>text<li>item</li></ul>"},
		{name: "code", src: "<pre><code class=\"language-go\">a &lt; b\n\n  indented</code></pre><pre>\nplain</pre>"},
		{name: "quotes", src: "<blockquote>loose<blockquote><p>nested</p></blockquote></blockquote>"},
		{name: "links", src: `<p><a href="/x?a=1&amp;b=2" title="t &quot;q&quot;">go <code>c</code></a> <a href="">empty</a></p>`},
		{name: "containers", src: "<main><article><h2>In</h2>text <i>here</i></article></main><hr>"},
		{name: "metadata", src: `<html><head><title>T</title><meta name="author" content="A &amp; B"><meta name="date" content="2024"></head><body><p>x</p></body></html>`},
		{name: "entities", src: "<p>&lt;&gt;&amp;&quot;&#39;&copy;&nbsp;x</p>"},
		{name: "unicode", src: "<h1>Ünïcödé</h1><p>日本語 <em>テキスト</em></p>"},
		{name: "degraded", src: "<table><tr><td>a</td><td>b</td></tr></table><p>after</p>"},
	}

	r := NewReader()
	w := newTestWriter(t)
	ctx := context.Background()

	for _, tt := range corpus {
		for _, opts := range []pipeline.WriteOptions{{Standalone: true}, {Standalone: true, Highlight: true}} {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				first, err := r.Parse(ctx, []byte(tt.src))
				if err != nil {
					t.Fatalf("Parse(source) unexpected error: %v", err)
				}

				var buf bytes.Buffer
				if err := w.Write(ctx, first, &buf, opts); err != nil {
					t.Fatalf("Write() unexpected error: %v", err)
				}

				second, err := r.Parse(ctx, buf.Bytes())
				if err != nil {
					t.Fatalf("Parse(rendered) unexpected error: %v\nrendered:\n%s", err, buf.String())
				}
				if diff := cmp.Diff(first, second); diff != "" {
					t.Errorf("round trip mismatch (-first +second):\n%s\nrendered:\n%s", diff, buf.String())
				}
			})
		}
	}
}

// Fragments drop metadata, so only heading anchors are checked without the
// envelope.
func TestRoundTrip_FragmentHeadings(t *testing.T) {
	t.Parallel()

	corpus := []string{
		`<h1>A</h1><h1>A</h1><h2 id="custom">A</h2>`,
		`<h1 id="x">X</h1><h1 id="x">X</h1>`,
		`<h1 id="x-2">X</h1><h1 id="x">X</h1><h1>X</h1>`,
	}

	r := NewReader()
	w := newTestWriter(t)
	ctx := context.Background()

	for _, src := range corpus {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			first, err := r.Parse(ctx, []byte(src))
			if err != nil {
				t.Fatalf("Parse(source) unexpected error: %v", err)
			}

			var buf bytes.Buffer
			if err := w.Write(ctx, first, &buf, pipeline.WriteOptions{}); err != nil {
				t.Fatalf("Write() unexpected error: %v", err)
			}

			second, err := r.Parse(ctx, buf.Bytes())
			if err != nil {
				t.Fatalf("Parse(rendered) unexpected error: %v", err)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("round trip mismatch (-first +second):\n%s\nrendered:\n%s", diff, buf.String())
			}
		})
	}
}
