package bits

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHex   = errors.New("bits: invalid hex digit")
	ErrTruncated    = errors.New("bits: truncated input")
	ErrInvalidWidth = errors.New("bits: invalid field width")
	ErrValueTooWide = errors.New("bits: value does not fit field width")
)

// InvalidHexError reports the first character that is not a hex digit.
type InvalidHexError struct {
	Offset int
	Char   rune
}

func (e *InvalidHexError) Error() string {
	return fmt.Sprintf("bits: invalid hex digit %q at offset %d", e.Char, e.Offset)
}

func (e *InvalidHexError) Unwrap() error {
	return ErrInvalidHex
}
