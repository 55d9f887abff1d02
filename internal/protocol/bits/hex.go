package bits

import "unicode/utf8"

// FromHex expands s into a Reader holding 4 bits per digit, most
// significant bit first. Digits are case-insensitive and an odd digit
// count is allowed. An InvalidHexError carries the byte offset and the
// full character found there.
func FromHex(s string) (*Reader, error) {
	data := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		nib, ok := nibble(s[i])
		if !ok {
			ch, _ := utf8.DecodeRuneInString(s[i:])
			return nil, &InvalidHexError{Offset: i, Char: ch}
		}
		if i%2 == 0 {
			data[i/2] = nib << 4
		} else {
			data[i/2] |= nib
		}
	}
	return NewReader(data, len(s)*4), nil
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}
