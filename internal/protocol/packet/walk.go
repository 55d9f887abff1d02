package packet

// Walk visits p and its descendants depth first, parents before children.
// depth is 1 for p. Returning false from fn skips the node's children.
func Walk(p Packet, fn func(p Packet, depth int) bool) {
	walk(p, 1, fn)
}

func walk(p Packet, depth int, fn func(Packet, int) bool) {
	if !fn(p, depth) {
		return
	}
	for _, child := range p.Children {
		walk(child, depth+1, fn)
	}
}

// Stats summarizes the shape of a packet tree.
type Stats struct {
	Packets   int `json:"packets" yaml:"packets"`
	Literals  int `json:"literals" yaml:"literals"`
	Operators int `json:"operators" yaml:"operators"`
	MaxDepth  int `json:"max_depth" yaml:"max_depth"`
}

func Measure(p Packet) Stats {
	var s Stats
	Walk(p, func(p Packet, depth int) bool {
		s.Packets++
		if p.IsLiteral() {
			s.Literals++
		} else {
			s.Operators++
		}
		s.MaxDepth = max(s.MaxDepth, depth)
		return true
	})
	return s
}
