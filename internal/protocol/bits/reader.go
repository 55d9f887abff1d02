package bits

import (
	"fmt"
	"strings"
)

// Reader is a forward-only cursor over a packed MSB-first bit sequence.
// A Reader never reads past end, even when the backing slice is longer.
type Reader struct {
	data []byte
	pos  int
	end  int
}

// NewReader reads the first n bits of data.
func NewReader(data []byte, n int) *Reader {
	if n < 0 {
		n = 0
	}
	if limit := len(data) * 8; n > limit {
		n = limit
	}
	return &Reader{data: data, end: n}
}

// Len reports the total bits visible to r, consumed or not.
func (r *Reader) Len() int {
	return r.end
}

// Pos reports the absolute offset of the cursor within the backing data.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining reports the bits left before end.
func (r *Reader) Remaining() int {
	return r.end - r.pos
}

// ReadBit consumes one bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.Remaining() < 1 {
		return false, fmt.Errorf("%w: need 1 bit, have 0", ErrTruncated)
	}
	b := r.bit(r.pos)
	r.pos++
	return b, nil
}

// ReadUint consumes n bits (0..64) as an unsigned big-endian integer.
func (r *Reader) ReadUint(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidWidth, n)
	}
	if r.Remaining() < n {
		return 0, fmt.Errorf("%w: need %d bits, have %d", ErrTruncated, n, r.Remaining())
	}
	var v uint64
	for i := 0; i < n; i++ {
		v <<= 1
		if r.bit(r.pos + i) {
			v |= 1
		}
	}
	r.pos += n
	return v, nil
}

// Sub returns a reader bounded to the next n bits and advances r past them.
func (r *Reader) Sub(n int) (*Reader, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, n)
	}
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bits, have %d", ErrTruncated, n, r.Remaining())
	}
	sub := &Reader{data: r.data, pos: r.pos, end: r.pos + n}
	r.pos += n
	return sub, nil
}

// Skip discards the remaining bits.
func (r *Reader) Skip() {
	r.pos = r.end
}

// AllZero reports whether every remaining bit is unset. It does not move
// the cursor.
func (r *Reader) AllZero() bool {
	for i := r.pos; i < r.end; i++ {
		if r.bit(i) {
			return false
		}
	}
	return true
}

// String renders the remaining bits as a string of 0s and 1s.
func (r *Reader) String() string {
	var b strings.Builder
	b.Grow(r.Remaining())
	for i := r.pos; i < r.end; i++ {
		if r.bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func (r *Reader) bit(i int) bool {
	return r.data[i/8]&(0x80>>(i%8)) != 0
}
