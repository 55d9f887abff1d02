package bits

import (
	"errors"
	"testing"
)

func TestFromHexExpandsMSBFirst(t *testing.T) {
	r, err := FromHex("D2FE28")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	if r.Len() != 24 {
		t.Fatalf("expected 24 bits, got %d", r.Len())
	}
	if got, want := r.String(), "110100101111111000101000"; got != want {
		t.Fatalf("bits mismatch: got=%s want=%s", got, want)
	}
}

func TestFromHexCaseInsensitiveAndOddLength(t *testing.T) {
	upper, err := FromHex("ABC")
	if err != nil {
		t.Fatalf("from hex upper: %v", err)
	}
	lower, err := FromHex("abc")
	if err != nil {
		t.Fatalf("from hex lower: %v", err)
	}
	if upper.Len() != 12 || lower.Len() != 12 {
		t.Fatalf("expected 12 bits, got %d and %d", upper.Len(), lower.Len())
	}
	if upper.String() != lower.String() {
		t.Fatalf("case mismatch: %s vs %s", upper.String(), lower.String())
	}
	if upper.String() != "101010111100" {
		t.Fatalf("unexpected bits: %s", upper.String())
	}
}

func TestFromHexRejectsNonHex(t *testing.T) {
	_, err := FromHex("D2FG28")
	if !errors.Is(err, ErrInvalidHex) {
		t.Fatalf("expected ErrInvalidHex, got %v", err)
	}
	var hexErr *InvalidHexError
	if !errors.As(err, &hexErr) {
		t.Fatalf("expected InvalidHexError, got %T", err)
	}
	if hexErr.Offset != 3 || hexErr.Char != 'G' {
		t.Fatalf("unexpected error detail: %+v", hexErr)
	}
}

func TestFromHexReportsMultiByteCharacter(t *testing.T) {
	_, err := FromHex("D2FE2é")
	var hexErr *InvalidHexError
	if !errors.As(err, &hexErr) {
		t.Fatalf("expected InvalidHexError, got %v", err)
	}
	if hexErr.Offset != 5 || hexErr.Char != 'é' {
		t.Fatalf("unexpected error detail: %+v", hexErr)
	}
	if want := `bits: invalid hex digit 'é' at offset 5`; err.Error() != want {
		t.Fatalf("error = %q, want %q", err.Error(), want)
	}
}

func TestReadUintAndBits(t *testing.T) {
	r, err := FromHex("D2FE28")
	if err != nil {
		t.Fatalf("from hex: %v", err)
	}
	version, err := r.ReadUint(3)
	if err != nil || version != 6 {
		t.Fatalf("version: got=%d err=%v", version, err)
	}
	typeID, err := r.ReadUint(3)
	if err != nil || typeID != 4 {
		t.Fatalf("type id: got=%d err=%v", typeID, err)
	}
	flag, err := r.ReadBit()
	if err != nil || !flag {
		t.Fatalf("flag: got=%v err=%v", flag, err)
	}
	if r.Pos() != 7 || r.Remaining() != 17 {
		t.Fatalf("cursor: pos=%d remaining=%d", r.Pos(), r.Remaining())
	}
}

func TestReadUintTruncated(t *testing.T) {
	r, _ := FromHex("F")
	if _, err := r.ReadUint(5); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
	if r.Remaining() != 4 {
		t.Fatalf("failed read must not move the cursor, remaining=%d", r.Remaining())
	}
	if _, err := r.ReadUint(65); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
}

func TestSubBoundsChildAndAdvancesParent(t *testing.T) {
	r, _ := FromHex("FF00")
	sub, err := r.Sub(6)
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if sub.Remaining() != 6 || r.Remaining() != 10 {
		t.Fatalf("remaining: sub=%d parent=%d", sub.Remaining(), r.Remaining())
	}
	if _, err := sub.ReadUint(7); !errors.Is(err, ErrTruncated) {
		t.Fatalf("sub must not read past its bound, got %v", err)
	}
	v, err := sub.ReadUint(6)
	if err != nil || v != 0x3F {
		t.Fatalf("sub read: got=%d err=%v", v, err)
	}
	if _, err := r.Sub(11); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestAllZero(t *testing.T) {
	r, _ := FromHex("8000")
	if r.AllZero() {
		t.Fatalf("expected non-zero bits")
	}
	_, _ = r.ReadBit()
	if !r.AllZero() {
		t.Fatalf("expected only zero bits after first bit, got %s", r.String())
	}
	if r.Remaining() != 15 {
		t.Fatalf("AllZero must not move the cursor")
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var w Writer
	if err := w.WriteUint(6, 3); err != nil {
		t.Fatalf("write version: %v", err)
	}
	if err := w.WriteUint(4, 3); err != nil {
		t.Fatalf("write type: %v", err)
	}
	for _, group := range []uint64{0b10111, 0b11110, 0b00101} {
		if err := w.WriteUint(group, 5); err != nil {
			t.Fatalf("write group: %v", err)
		}
	}
	if w.Len() != 21 {
		t.Fatalf("expected 21 bits, got %d", w.Len())
	}
	if got := w.Hex(); got != "D2FE28" {
		t.Fatalf("hex mismatch: %s", got)
	}
	if got := w.Reader().String(); got != "110100101111111000101" {
		t.Fatalf("reader mismatch: %s", got)
	}
}

func TestWriterRejectsWideValues(t *testing.T) {
	var w Writer
	if err := w.WriteUint(8, 3); !errors.Is(err, ErrValueTooWide) {
		t.Fatalf("expected ErrValueTooWide, got %v", err)
	}
	if err := w.WriteUint(1, 65); !errors.Is(err, ErrInvalidWidth) {
		t.Fatalf("expected ErrInvalidWidth, got %v", err)
	}
	if err := w.WriteUint(^uint64(0), 64); err != nil {
		t.Fatalf("64-bit write: %v", err)
	}
	if w.Len() != 64 {
		t.Fatalf("expected 64 bits, got %d", w.Len())
	}
}

func TestWriterAppend(t *testing.T) {
	var a, b Writer
	_ = a.WriteUint(0b101, 3)
	_ = b.WriteUint(0b11111, 5)
	a.Append(&b)
	if a.Len() != 8 || a.Hex() != "BF" {
		t.Fatalf("append: len=%d hex=%s", a.Len(), a.Hex())
	}
}
