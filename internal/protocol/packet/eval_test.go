package packet

import (
	"errors"
	"testing"
)

func TestVersionSum(t *testing.T) {
	cases := []struct {
		hex  string
		want uint64
	}{
		{"D2FE28", 6},
		{"38006F45291200", 9},
		{"EE00D40C823060", 14},
		{"8A004A801A8002F478", 16},
		{"620080001611562C8802118E34", 12},
		{"C0015000016115A2E0802F182340", 23},
		{"A0016C880162017C3686B18A3D4780", 31},
	}
	for _, tc := range cases {
		t.Run(tc.hex, func(t *testing.T) {
			if got := VersionSum(mustParse(t, tc.hex)); got != tc.want {
				t.Fatalf("VersionSum(%s)=%d; want %d", tc.hex, got, tc.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		hex  string
		want uint64
	}{
		{"D2FE28", 2021},
		{"38006F45291200", 1},
		{"C200B40A82", 3},
		{"04005AC33890", 54},
		{"880086C3E88112", 7},
		{"CE00C43D881120", 9},
		{"D8005AC2A8F0", 1},
		{"F600BC2D8F", 0},
		{"9C005AC2F8F0", 0},
		{"9C0141080250320F1802104A08", 1},
	}
	for _, tc := range cases {
		t.Run(tc.hex, func(t *testing.T) {
			got, err := Evaluate(mustParse(t, tc.hex))
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Evaluate(%s)=%d; want %d", tc.hex, got, tc.want)
			}
		})
	}
}

func TestEvaluateComparisonsOrder(t *testing.T) {
	five, fifteen := Literal(0, 5), Literal(0, 15)
	cases := []struct {
		name string
		p    Packet
		want uint64
	}{
		{"GreaterThanFalse", Operator(0, TypeGreaterThan, five, fifteen), 0},
		{"GreaterThanTrue", Operator(0, TypeGreaterThan, fifteen, five), 1},
		{"LessThanTrue", Operator(0, TypeLessThan, five, fifteen), 1},
		{"LessThanEqual", Operator(0, TypeLessThan, five, five), 0},
		{"EqualTo", Operator(0, TypeEqualTo, fifteen, fifteen), 1},
		{"SingleSum", Operator(0, TypeSum, five), 5},
		{"SingleProduct", Operator(0, TypeProduct, fifteen), 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Evaluate(tc.p)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %d; want %d", got, tc.want)
			}
		})
	}
}

func TestEvaluateArity(t *testing.T) {
	one := Literal(0, 1)
	cases := []struct {
		name string
		p    Packet
		got  int
	}{
		{"EmptySum", Operator(0, TypeSum), 0},
		{"EmptyProduct", Operator(0, TypeProduct), 0},
		{"EmptyMinimum", Operator(0, TypeMinimum), 0},
		{"EmptyMaximum", Operator(0, TypeMaximum), 0},
		{"UnaryLessThan", Operator(0, TypeLessThan, one), 1},
		{"TernaryEqualTo", Operator(0, TypeEqualTo, one, one, one), 3},
		{"NestedGreaterThan", Operator(0, TypeSum, Operator(0, TypeGreaterThan)), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Evaluate(tc.p)
			if !errors.Is(err, ErrArity) {
				t.Fatalf("expected ErrArity, got %v", err)
			}
			var arity ArityError
			if !errors.As(err, &arity) || arity.Got != tc.got {
				t.Fatalf("unexpected arity detail: %v", err)
			}
		})
	}
}

func TestArityCheckedOnlyAtEvaluation(t *testing.T) {
	hex, err := Encode(Operator(2, TypeEqualTo, Literal(1, 1)))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	p, err := ParseHex(hex)
	if err != nil {
		t.Fatalf("parse must accept any arity: %v", err)
	}
	if VersionSum(p) != 3 {
		t.Fatalf("unexpected version sum: %d", VersionSum(p))
	}
	if _, err := Evaluate(p); !errors.Is(err, ErrArity) {
		t.Fatalf("expected ErrArity, got %v", err)
	}
}

func TestEvaluateOverflow(t *testing.T) {
	sum := Operator(0, TypeSum, Literal(0, ^uint64(0)), Literal(0, 1))
	if _, err := Evaluate(sum); !errors.Is(err, ErrValueOverflow) {
		t.Fatalf("sum: expected ErrValueOverflow, got %v", err)
	}
	product := Operator(0, TypeProduct, Literal(0, 1<<32), Literal(0, 1<<32))
	if _, err := Evaluate(product); !errors.Is(err, ErrValueOverflow) {
		t.Fatalf("product: expected ErrValueOverflow, got %v", err)
	}
	fits := Operator(0, TypeProduct, Literal(0, 1<<31), Literal(0, 1<<32))
	if v, err := Evaluate(fits); err != nil || v != 1<<63 {
		t.Fatalf("product: got=%d err=%v", v, err)
	}
}

func TestEvaluateUnknownType(t *testing.T) {
	_, err := Evaluate(Packet{Type: 9, Children: []Packet{Literal(0, 1)}})
	if !errors.Is(err, ErrUnknownOperator) {
		t.Fatalf("expected ErrUnknownOperator, got %v", err)
	}
}

func TestMeasure(t *testing.T) {
	got := Measure(mustParse(t, "A0016C880162017C3686B18A3D4780"))
	want := Stats{Packets: 8, Literals: 5, Operators: 3, MaxDepth: 4}
	if got != want {
		t.Fatalf("Measure=%+v; want %+v", got, want)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	p := mustParse(t, "620080001611562C8802118E34")
	visited := 0
	Walk(p, func(p Packet, depth int) bool {
		visited++
		return depth < 2
	})
	if visited != 3 {
		t.Fatalf("expected root and two operators, visited %d", visited)
	}
}
