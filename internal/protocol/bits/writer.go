package bits

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Writer accumulates an MSB-first bit sequence.
type Writer struct {
	buf []byte
	n   int
}

// Len reports the number of bits written.
func (w *Writer) Len() int {
	return w.n
}

// WriteBit appends one bit.
func (w *Writer) WriteBit(b bool) {
	if w.n%8 == 0 {
		w.buf = append(w.buf, 0)
	}
	if b {
		w.buf[w.n/8] |= 0x80 >> (w.n % 8)
	}
	w.n++
}

// WriteUint appends the low n bits of v, most significant first.
func (w *Writer) WriteUint(v uint64, n int) error {
	if n < 0 || n > 64 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, n)
	}
	if n < 64 && v>>n != 0 {
		return fmt.Errorf("%w: %d in %d bits", ErrValueTooWide, v, n)
	}
	for i := n - 1; i >= 0; i-- {
		w.WriteBit(v>>i&1 == 1)
	}
	return nil
}

// Append copies every bit written to other onto w.
func (w *Writer) Append(other *Writer) {
	r := other.Reader()
	for r.Remaining() > 0 {
		b, _ := r.ReadBit()
		w.WriteBit(b)
	}
}

// Reader returns a reader over a snapshot of the written bits.
func (w *Writer) Reader() *Reader {
	data := make([]byte, len(w.buf))
	copy(data, w.buf)
	return NewReader(data, w.n)
}

// Hex renders the bits as uppercase hex, zero-padded to a whole byte.
func (w *Writer) Hex() string {
	return strings.ToUpper(hex.EncodeToString(w.buf))
}
