package packet

import (
	"errors"
	"fmt"

	"github.com/danmuck/pktdecode/internal/protocol/bits"
)

var (
	ErrInvalidHex      = bits.ErrInvalidHex
	ErrTruncated       = bits.ErrTruncated
	ErrUnknownOperator = errors.New("packet: unknown operator type")
	ErrArity           = errors.New("packet: invalid operator arity")
	ErrTrailingData    = errors.New("packet: trailing data after packet")
	ErrLiteralOverflow = errors.New("packet: literal exceeds 64 bits")
	ErrValueOverflow   = errors.New("packet: value exceeds 64 bits")
	ErrDepthExceeded   = errors.New("packet: nesting depth exceeded")
	ErrInputTooLarge   = errors.New("packet: input too large")
	ErrFieldRange      = errors.New("packet: field out of range")
)

// UnknownOperatorError indicates a type id that names no operator.
type UnknownOperatorError struct {
	TypeID uint64
}

func (e UnknownOperatorError) Error() string {
	return fmt.Sprintf("packet: unknown operator type %d", e.TypeID)
}

func (e UnknownOperatorError) Unwrap() error {
	return ErrUnknownOperator
}

// ArityError indicates an operator evaluated with a child count its
// semantics forbid.
type ArityError struct {
	Type Type
	Got  int
}

func (e ArityError) Error() string {
	return fmt.Sprintf("packet: %s operator with %d children", e.Type, e.Got)
}

func (e ArityError) Unwrap() error {
	return ErrArity
}

// TrailingDataError reports non-padding bits left after the top-level packet.
type TrailingDataError struct {
	Offset int
	Bits   int
}

func (e TrailingDataError) Error() string {
	return fmt.Sprintf("packet: %d trailing bits at offset %d are not padding", e.Bits, e.Offset)
}

func (e TrailingDataError) Unwrap() error {
	return ErrTrailingData
}
