package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/danmuck/pktdecode/internal/protocol/packet"
	"gopkg.in/yaml.v3"
)

type resultView struct {
	Line   int           `json:"line" yaml:"line"`
	Input  string        `json:"input" yaml:"input"`
	Mode   Mode          `json:"mode" yaml:"mode"`
	Answer *uint64       `json:"answer,omitempty" yaml:"answer,omitempty"`
	Tree   *Node         `json:"tree,omitempty" yaml:"tree,omitempty"`
	Stats  *packet.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
	Error  string        `json:"error,omitempty" yaml:"error,omitempty"`
}

func view(r Result) resultView {
	v := resultView{Line: r.Line, Input: r.Input, Mode: r.Mode, Tree: r.Tree, Stats: r.Stats}
	if r.Err != nil {
		v.Error = r.Err.Error()
		return v
	}
	if r.Mode != ModeTree {
		answer := r.Answer
		v.Answer = &answer
	}
	return v
}

// Write renders results in the given format.
func Write(w io.Writer, format Format, results []Result) error {
	switch format {
	case FormatText:
		return writeText(w, results)
	case FormatJSON:
		views := make([]resultView, 0, len(results))
		for _, r := range results {
			views = append(views, view(r))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case FormatYAML:
		views := make([]resultView, 0, len(results))
		for _, r := range results {
			views = append(views, view(r))
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, results []Result) error {
	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "error: line %d: %v\n", r.Line, r.Err); err != nil {
				return err
			}
			continue
		}
		if r.Mode != ModeTree {
			if _, err := fmt.Fprintln(w, r.Answer); err != nil {
				return err
			}
			continue
		}
		var b strings.Builder
		outline(&b, *r.Tree, 0)
		if r.Stats != nil {
			fmt.Fprintf(&b, "# packets=%d literals=%d operators=%d depth=%d\n",
				r.Stats.Packets, r.Stats.Literals, r.Stats.Operators, r.Stats.MaxDepth)
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func outline(b *strings.Builder, n Node, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	if n.Value != nil {
		fmt.Fprintf(b, "%s v%d = %d\n", n.Type, n.Version, *n.Value)
		return
	}
	fmt.Fprintf(b, "%s v%d (%s)\n", n.Type, n.Version, n.Length)
	for _, child := range n.Children {
		outline(b, child, indent+1)
	}
}
