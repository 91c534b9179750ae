package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
	"github.com/alnah/go-docconv/internal/yamlutil"
)

const fenceLine = "---"

// frontMatter is the subset of YAML front matter mapped onto document.Meta.
type frontMatter struct {
	Title  string `yaml:"title,omitempty"`
	Author string `yaml:"author,omitempty"`
	Date   string `yaml:"date,omitempty"`
}

// splitFrontMatter separates a leading YAML block delimited by "---" lines.
// An opening delimiter without a closing one is ordinary Markdown.
// It returns the metadata, the remaining body and the body's offset in src.
func splitFrontMatter(src []byte) (document.Meta, []byte, int, error) {
	if !bytes.HasPrefix(src, []byte(fenceLine+"\n")) {
		return document.Meta{}, src, 0, nil
	}

	start := len(fenceLine) + 1
	for pos := start; pos <= len(src); {
		end := bytes.IndexByte(src[pos:], '\n')
		line := src[pos:]
		next := len(src)
		if end >= 0 {
			line = src[pos : pos+end]
			next = pos + end + 1
		}
		if trimmed := bytes.TrimRight(line, " \t"); string(trimmed) == fenceLine || string(trimmed) == "..." {
			meta, err := decodeFrontMatter(src[start:pos])
			if err != nil {
				return document.Meta{}, nil, 0, err
			}
			return meta, src[next:], next, nil
		}
		if end < 0 {
			break
		}
		pos = next
	}
	return document.Meta{}, src, 0, nil
}

func decodeFrontMatter(block []byte) (document.Meta, error) {
	var raw map[string]any
	if err := yamlutil.Decode(block, &raw, yamlutil.Lenient); err != nil {
		return document.Meta{}, &pipeline.ParseError{
			Message: fmt.Sprintf("invalid front matter: %v", err),
			Pos:     pipeline.Position{Line: 1, Column: 1},
		}
	}
	return document.Meta{
		Title:  scalar(raw["title"]),
		Author: scalar(raw["author"]),
		Date:   scalar(raw["date"]),
	}, nil
}

// scalar renders a decoded YAML value as metadata text.
func scalar(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format(time.DateOnly)
		}
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

// encodeFrontMatter renders meta as a delimited YAML block.
func encodeFrontMatter(meta document.Meta) ([]byte, error) {
	body, err := yamlutil.Encode(frontMatter{Title: meta.Title, Author: meta.Author, Date: meta.Date})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(fenceLine + "\n")
	buf.Write(body)
	if !bytes.HasSuffix(body, []byte("\n")) {
		buf.WriteByte('\n')
	}
	buf.WriteString(fenceLine + "\n\n")
	return buf.Bytes(), nil
}
