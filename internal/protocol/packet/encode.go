package packet

import (
	"fmt"

	"github.com/danmuck/pktdecode/internal/protocol/bits"
)

// Encode renders p as an uppercase hex transmission, zero-padded to a
// whole byte.
func Encode(p Packet) (string, error) {
	w, err := EncodeBits(p)
	if err != nil {
		return "", err
	}
	return w.Hex(), nil
}

// EncodeBits writes p without padding. Literals use the fewest 4-bit
// groups that hold the value; operators keep their recorded framing.
func EncodeBits(p Packet) (*bits.Writer, error) {
	w := &bits.Writer{}
	if err := encodePacket(w, p); err != nil {
		return nil, err
	}
	return w, nil
}

func encodePacket(w *bits.Writer, p Packet) error {
	if p.Version > MaxVersion {
		return fmt.Errorf("%w: version %d", ErrFieldRange, p.Version)
	}
	if p.Type > TypeEqualTo {
		return UnknownOperatorError{TypeID: uint64(p.Type)}
	}
	if err := w.WriteUint(uint64(p.Version), versionWidth); err != nil {
		return err
	}
	if err := w.WriteUint(uint64(p.Type), typeWidth); err != nil {
		return err
	}

	if p.IsLiteral() {
		if len(p.Children) != 0 {
			return fmt.Errorf("%w: literal with %d children", ErrFieldRange, len(p.Children))
		}
		return writeLiteral(w, p.Value)
	}

	switch p.Length {
	case LengthByCount:
		if len(p.Children) > MaxChildren {
			return fmt.Errorf("%w: %d children", ErrFieldRange, len(p.Children))
		}
		w.WriteBit(true)
		if err := w.WriteUint(uint64(len(p.Children)), countWidth); err != nil {
			return err
		}
		for _, child := range p.Children {
			if err := encodePacket(w, child); err != nil {
				return err
			}
		}
		return nil
	case LengthByBits:
		body := &bits.Writer{}
		for _, child := range p.Children {
			if err := encodePacket(body, child); err != nil {
				return err
			}
		}
		if body.Len() > MaxTotalBits {
			return fmt.Errorf("%w: %d sub-packet bits", ErrFieldRange, body.Len())
		}
		w.WriteBit(false)
		if err := w.WriteUint(uint64(body.Len()), totalBitsWidth); err != nil {
			return err
		}
		w.Append(body)
		return nil
	default:
		return fmt.Errorf("%w: length type %d", ErrFieldRange, p.Length)
	}
}

func writeLiteral(w *bits.Writer, value uint64) error {
	groups := 1
	for groups < 16 && value>>(4*groups) != 0 {
		groups++
	}
	for i := groups - 1; i >= 0; i-- {
		w.WriteBit(i > 0)
		if err := w.WriteUint(value>>(4*i)&0xF, 4); err != nil {
			return err
		}
	}
	return nil
}
