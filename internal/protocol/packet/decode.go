package packet

import (
	"fmt"
	"strings"

	"github.com/danmuck/pktdecode/internal/protocol/bits"
)

// Limits constrains decode recursion and input size. Zero disables a limit.
type Limits struct {
	MaxDepth       int
	MaxInputDigits int
}

func DefaultLimits() Limits {
	return Limits{
		MaxDepth:       512,
		MaxInputDigits: 1 << 20,
	}
}

// Decoder parses transmissions under a fixed set of limits. A Decoder holds
// no per-call state and may be shared.
type Decoder struct {
	limits Limits
}

func NewDecoder(limits Limits) *Decoder {
	return &Decoder{limits: limits}
}

// ParseHex decodes a hex transmission with DefaultLimits.
func ParseHex(s string) (Packet, error) {
	return NewDecoder(DefaultLimits()).DecodeHex(s)
}

// Parse decodes the transmission held by r with DefaultLimits.
func Parse(r *bits.Reader) (Packet, error) {
	return NewDecoder(DefaultLimits()).Decode(r)
}

// DecodeHex decodes one transmission. Surrounding whitespace is ignored.
func (d *Decoder) DecodeHex(s string) (Packet, error) {
	s = strings.TrimSpace(s)
	if d.limits.MaxInputDigits > 0 && len(s) > d.limits.MaxInputDigits {
		return Packet{}, fmt.Errorf("%w: %d digits, limit %d", ErrInputTooLarge, len(s), d.limits.MaxInputDigits)
	}
	r, err := bits.FromHex(s)
	if err != nil {
		return Packet{}, err
	}
	return d.Decode(r)
}

// Decode parses exactly one packet from r. Bits left afterwards must be
// padding: fewer than MinPacketBits, or all zero.
func (d *Decoder) Decode(r *bits.Reader) (Packet, error) {
	p, err := d.parse(r, 1)
	if err != nil {
		return Packet{}, err
	}
	if r.Remaining() >= MinPacketBits && !r.AllZero() {
		return Packet{}, TrailingDataError{Offset: r.Pos(), Bits: r.Remaining()}
	}
	r.Skip()
	return p, nil
}

// Next parses one packet from r and leaves the cursor just past it,
// without applying the top-level padding rule.
func (d *Decoder) Next(r *bits.Reader) (Packet, error) {
	return d.parse(r, 1)
}

func (d *Decoder) parse(r *bits.Reader, depth int) (Packet, error) {
	if d.limits.MaxDepth > 0 && depth > d.limits.MaxDepth {
		return Packet{}, fmt.Errorf("%w: limit %d", ErrDepthExceeded, d.limits.MaxDepth)
	}
	version, err := r.ReadUint(versionWidth)
	if err != nil {
		return Packet{}, fmt.Errorf("packet: read version at bit %d: %w", r.Pos(), err)
	}
	typeID, err := r.ReadUint(typeWidth)
	if err != nil {
		return Packet{}, fmt.Errorf("packet: read type at bit %d: %w", r.Pos(), err)
	}

	if Type(typeID) == TypeLiteral {
		value, err := readLiteral(r)
		if err != nil {
			return Packet{}, err
		}
		return Literal(uint8(version), value), nil
	}

	op, err := ParseOperator(typeID)
	if err != nil {
		return Packet{}, err
	}
	byCount, err := r.ReadBit()
	if err != nil {
		return Packet{}, fmt.Errorf("packet: read length type at bit %d: %w", r.Pos(), err)
	}

	p := Packet{Version: uint8(version), Type: op}
	if byCount {
		p.Length = LengthByCount
		p.Children, err = d.parseCounted(r, depth)
	} else {
		p.Length = LengthByBits
		p.Children, err = d.parseBounded(r, depth)
	}
	if err != nil {
		return Packet{}, err
	}
	return p, nil
}

// parseCounted reads an 11-bit child count and exactly that many children.
func (d *Decoder) parseCounted(r *bits.Reader, depth int) ([]Packet, error) {
	n, err := r.ReadUint(countWidth)
	if err != nil {
		return nil, fmt.Errorf("packet: read child count at bit %d: %w", r.Pos(), err)
	}
	var children []Packet
	if n > 0 {
		children = make([]Packet, 0, n)
	}
	for i := uint64(0); i < n; i++ {
		child, err := d.parse(r, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// parseBounded reads a 15-bit length and parses children from exactly that
// many bits. A tail shorter than MinPacketBits is padding.
func (d *Decoder) parseBounded(r *bits.Reader, depth int) ([]Packet, error) {
	total, err := r.ReadUint(totalBitsWidth)
	if err != nil {
		return nil, fmt.Errorf("packet: read sub-packet length at bit %d: %w", r.Pos(), err)
	}
	sub, err := r.Sub(int(total))
	if err != nil {
		return nil, fmt.Errorf("packet: sub-packet body at bit %d: %w", r.Pos(), err)
	}
	var children []Packet
	for sub.Remaining() >= MinPacketBits {
		child, err := d.parse(sub, depth+1)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func readLiteral(r *bits.Reader) (uint64, error) {
	var value uint64
	for {
		group, err := r.ReadUint(groupWidth)
		if err != nil {
			return 0, fmt.Errorf("packet: read literal group at bit %d: %w", r.Pos(), err)
		}
		if value>>60 != 0 {
			return 0, ErrLiteralOverflow
		}
		value = value<<4 | group&0xF
		if group&0x10 == 0 {
			return value, nil
		}
	}
}
