// Package input guards the engine against hostile console and network input.
package input

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxSize is 4KB.
const DefaultMaxSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// Sanitizer rejects oversized or malformed input and strips control characters
// that would corrupt a terminal or a log line.
type Sanitizer struct {
	MaxSize int
}

// New returns a Sanitizer with the given limit. Non-positive limits fall back to DefaultMaxSize.
func New(maxSize int) Sanitizer {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return Sanitizer{MaxSize: maxSize}
}

// Clean validates input and returns it without unsafe control characters.
// Oversized input is rejected, never truncated, so a partial line is never fed
// to a machine.
func (s Sanitizer) Clean(input string) (string, error) {
	limit := s.MaxSize
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	if !utf8.ValidString(input) {
		return "", ErrInvalidUTF8
	}

	if strings.IndexFunc(input, unsafe) < 0 {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unsafe(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// unsafe reports control characters other than newline, tab and carriage return.
func unsafe(r rune) bool {
	if r == '\n' || r == '\t' || r == '\r' {
		return false
	}
	return unicode.IsControl(r)
}
