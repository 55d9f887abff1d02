package packet

import "fmt"

// Field widths of the wire format, in bits.
const (
	versionWidth   = 3
	typeWidth      = 3
	groupWidth     = 5
	countWidth     = 11
	totalBitsWidth = 15

	// MinPacketBits is the smallest encodable packet. Fewer remaining bits
	// can only be padding.
	MinPacketBits = 11

	MaxVersion   = 1<<versionWidth - 1
	MaxChildren  = 1<<countWidth - 1
	MaxTotalBits = 1<<totalBitsWidth - 1
)

// Type is the 3-bit packet type id.
type Type uint8

const (
	TypeSum         Type = 0
	TypeProduct     Type = 1
	TypeMinimum     Type = 2
	TypeMaximum     Type = 3
	TypeLiteral     Type = 4
	TypeGreaterThan Type = 5
	TypeLessThan    Type = 6
	TypeEqualTo     Type = 7
)

// ParseOperator converts a wire type id into an operator type. The literal
// id and ids above 7 are rejected.
func ParseOperator(id uint64) (Type, error) {
	if id > uint64(TypeEqualTo) || Type(id) == TypeLiteral {
		return 0, UnknownOperatorError{TypeID: id}
	}
	return Type(id), nil
}

// IsOperator reports whether t is one of the seven operator kinds.
func (t Type) IsOperator() bool {
	return t <= TypeEqualTo && t != TypeLiteral
}

func (t Type) String() string {
	switch t {
	case TypeSum:
		return "sum"
	case TypeProduct:
		return "product"
	case TypeMinimum:
		return "minimum"
	case TypeMaximum:
		return "maximum"
	case TypeLiteral:
		return "literal"
	case TypeGreaterThan:
		return "greater_than"
	case TypeLessThan:
		return "less_than"
	case TypeEqualTo:
		return "equal_to"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// LengthType is the framing an operator used for its children.
type LengthType uint8

const (
	LengthByBits  LengthType = 0
	LengthByCount LengthType = 1
)

func (l LengthType) String() string {
	switch l {
	case LengthByBits:
		return "bits"
	case LengthByCount:
		return "count"
	default:
		return fmt.Sprintf("length(%d)", uint8(l))
	}
}

// Packet is one node of a decoded transmission. Literals carry Value and
// no children; operators carry Children and the framing they arrived in.
type Packet struct {
	Version  uint8
	Type     Type
	Value    uint64
	Length   LengthType
	Children []Packet
}

// Literal builds a literal packet.
func Literal(version uint8, value uint64) Packet {
	return Packet{Version: version, Type: TypeLiteral, Value: value}
}

// Operator builds an operator packet framed by total bit length.
func Operator(version uint8, t Type, children ...Packet) Packet {
	return Packet{Version: version, Type: t, Length: LengthByBits, Children: children}
}

// WithLength returns a copy of p using the given child framing.
func (p Packet) WithLength(l LengthType) Packet {
	p.Length = l
	return p
}

// IsLiteral reports whether p is a literal packet.
func (p Packet) IsLiteral() bool {
	return p.Type == TypeLiteral
}
