// Package report turns decoded transmissions into answers and renders them.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/pktdecode/internal/protocol/packet"
)

var (
	ErrUnknownMode   = errors.New("report: unknown mode")
	ErrUnknownFormat = errors.New("report: unknown format")
)

// Mode selects which reduction a transmission is answered with.
type Mode string

const (
	ModeValue    Mode = "value"
	ModeVersions Mode = "versions"
	ModeTree     Mode = "tree"
)

func ParseMode(raw string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeValue, ModeVersions, ModeTree:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, raw)
	}
}

// Format selects how results are written.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// Result is the outcome of one transmission. Err is set when decoding or
// evaluation failed; the other outputs are then zero.
type Result struct {
	Line   int
	Input  string
	Mode   Mode
	Answer uint64
	Tree   *Node
	Stats  *packet.Stats
	Err    error
}

// Decode parses input with dec and answers it in the given mode.
func Decode(dec *packet.Decoder, line int, input string, mode Mode) Result {
	res := Result{Line: line, Input: strings.TrimSpace(input), Mode: mode}
	p, err := dec.DecodeHex(res.Input)
	if err != nil {
		res.Err = err
		return res
	}
	switch mode {
	case ModeVersions:
		res.Answer = packet.VersionSum(p)
	case ModeValue:
		v, err := packet.Evaluate(p)
		if err != nil {
			res.Err = err
			return res
		}
		res.Answer = v
	case ModeTree:
		node := NewNode(p)
		stats := packet.Measure(p)
		res.Tree = &node
		res.Stats = &stats
	default:
		res.Err = fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return res
}

// Node is the serializable view of a packet.
type Node struct {
	Version  uint8   `json:"version" yaml:"version"`
	Type     string  `json:"type" yaml:"type"`
	Value    *uint64 `json:"value,omitempty" yaml:"value,omitempty"`
	Length   string  `json:"length,omitempty" yaml:"length,omitempty"`
	Children []Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

func NewNode(p packet.Packet) Node {
	n := Node{Version: p.Version, Type: p.Type.String()}
	if p.IsLiteral() {
		v := p.Value
		n.Value = &v
		return n
	}
	n.Length = p.Length.String()
	if len(p.Children) > 0 {
		n.Children = make([]Node, 0, len(p.Children))
		for _, child := range p.Children {
			n.Children = append(n.Children, NewNode(child))
		}
	}
	return n
}
