// Package bits owns bit-granularity access to hex transmissions.
//
// Ownership boundary:
// - hex digit to bit expansion (MSB first)
// - bounded read cursors over a bit sequence
// - bit writers used by the packet encoder
package bits
