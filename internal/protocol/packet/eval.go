package packet

import (
	"math/bits"
	"slices"
)

// VersionSum adds the version of p and of every nested packet.
func VersionSum(p Packet) uint64 {
	sum := uint64(p.Version)
	for _, child := range p.Children {
		sum += VersionSum(child)
	}
	return sum
}

// Evaluate reduces p to a single value. Sum, product, minimum and maximum
// need at least one child; comparisons need exactly two and yield 1 or 0.
func Evaluate(p Packet) (uint64, error) {
	if p.IsLiteral() {
		return p.Value, nil
	}
	if err := checkArity(p); err != nil {
		return 0, err
	}

	values := make([]uint64, len(p.Children))
	for i, child := range p.Children {
		v, err := Evaluate(child)
		if err != nil {
			return 0, err
		}
		values[i] = v
	}

	switch p.Type {
	case TypeSum:
		var sum uint64
		for _, v := range values {
			var carry uint64
			sum, carry = bits.Add64(sum, v, 0)
			if carry != 0 {
				return 0, ErrValueOverflow
			}
		}
		return sum, nil
	case TypeProduct:
		product := uint64(1)
		for _, v := range values {
			hi, lo := bits.Mul64(product, v)
			if hi != 0 {
				return 0, ErrValueOverflow
			}
			product = lo
		}
		return product, nil
	case TypeMinimum:
		return slices.Min(values), nil
	case TypeMaximum:
		return slices.Max(values), nil
	case TypeGreaterThan:
		return boolValue(values[0] > values[1]), nil
	case TypeLessThan:
		return boolValue(values[0] < values[1]), nil
	case TypeEqualTo:
		return boolValue(values[0] == values[1]), nil
	default:
		return 0, UnknownOperatorError{TypeID: uint64(p.Type)}
	}
}

func checkArity(p Packet) error {
	n := len(p.Children)
	switch p.Type {
	case TypeSum, TypeProduct, TypeMinimum, TypeMaximum:
		if n < 1 {
			return ArityError{Type: p.Type, Got: n}
		}
	case TypeGreaterThan, TypeLessThan, TypeEqualTo:
		if n != 2 {
			return ArityError{Type: p.Type, Got: n}
		}
	default:
		return UnknownOperatorError{TypeID: uint64(p.Type)}
	}
	return nil
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
