// Package yamlutil isolates the YAML dependency shared by configuration
// loading and Markdown front matter.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize bounds the YAML accepted by Decode.
const MaxInputSize = 1 << 20

// Sentinel errors for YAML operations.
var (
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrDecode         = errors.New("yamlutil: invalid YAML")
	ErrEncode         = errors.New("yamlutil: cannot encode value")
)

// Mode selects how unknown keys are treated.
type Mode int

const (
	// Lenient ignores keys that have no matching field.
	Lenient Mode = iota
	// Strict rejects keys that have no matching field.
	Strict
)

// Decode parses data into v. Empty input leaves v untouched.
func Decode(data []byte, v any, mode Mode) error {
	if v == nil {
		return ErrNilDestination
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if len(data) == 0 {
		return nil
	}

	var opts []yaml.DecodeOption
	if mode == Strict {
		opts = append(opts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// Encode serializes v as block-style YAML.
func Encode(v any) ([]byte, error) {
	out, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return out, nil
}
