package pipeline

import (
	"bytes"
	"regexp"
	"unicode/utf8"
)

// crlfOrCR matches Windows and classic Mac line endings.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(src []byte) []byte {
	if bytes.IndexByte(src, '\r') < 0 {
		return src
	}
	return crlfOrCR.ReplaceAll(src, []byte("\n"))
}

// CheckUTF8 returns a ParseError locating the first invalid UTF-8 sequence.
func CheckUTF8(src []byte) error {
	if utf8.Valid(src) {
		return nil
	}
	for i := 0; i < len(src); {
		r, size := utf8.DecodeRune(src[i:])
		if r == utf8.RuneError && size <= 1 {
			return &ParseError{Message: "invalid UTF-8 sequence", Pos: PositionAt(src, i)}
		}
		i += size
	}
	return nil
}

// Prepare normalizes raw input before a Reader parses it.
func Prepare(src []byte) ([]byte, error) {
	if err := CheckUTF8(src); err != nil {
		return nil, err
	}
	return NormalizeLineEndings(src), nil
}
