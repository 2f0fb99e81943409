// Package roundviz draws a recorded block operation as a Graphviz digraph of
// its Feistel rounds.
package roundviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"des-go/pkg/des"
	"des-go/pkg/transcript"

	"github.com/goccy/go-graphviz"
)

const header = `digraph rounds {
    graph [fontname = "monospace" rankdir=TB];
    node [fontname = "courier new" shape=box style=rounded];
    edge [fontname = "courier new"];
    bgcolor=transparent;
`

func Header() string {
	return header
}

// registerNode declares a node holding a 32-bit register.
func registerNode(id, label string, value uint32, group int) string {
	return fmt.Sprintf("  %q [label=\"%s\\n%s\"]\n", id, label, des.FormatBinary(uint64(value), 32, group))
}

// DOT renders t with every register in binary, grouped group bits at a time.
// Each round gets an L and R node; the f node shows the round function
// output mixed into the next R.
func DOT(t *transcript.Transcript, group int) (string, error) {
	if !t.Complete() {
		return "", transcript.ErrIncomplete
	}
	var b strings.Builder
	b.WriteString(Header())
	fmt.Fprintf(&b, "  label=\"%s %016x\";\n", t.Direction, t.Input)
	fmt.Fprintf(&b, "  \"ip\" [shape=underline label=\"IP\\n%s\"]\n", des.FormatBinary(t.Permuted, 64, group))
	b.WriteString(registerNode("L0", "L0", uint32(t.Permuted>>32), group))
	b.WriteString(registerNode("R0", "R0", uint32(t.Permuted), group))
	b.WriteString("  \"ip\" -> \"L0\"\n  \"ip\" -> \"R0\"\n")

	for _, rt := range t.Rounds {
		n := rt.Round
		prevL, prevR := fmt.Sprintf("L%d", n-1), fmt.Sprintf("R%d", n-1)
		l, r, f := fmt.Sprintf("L%d", n), fmt.Sprintf("R%d", n), fmt.Sprintf("f%d", n)
		b.WriteString(registerNode(l, l, rt.L, group))
		b.WriteString(registerNode(r, r, rt.R, group))
		fmt.Fprintf(&b, "  %q [shape=ellipse style=dashed label=\"f(%s, K%d)\\n%s\"]\n",
			f, prevR, n, des.FormatBinary(uint64(rt.F), 32, group))
		fmt.Fprintf(&b, "  %q -> %q\n", prevR, l)
		fmt.Fprintf(&b, "  %q -> %q [style=dashed]\n", prevR, f)
		fmt.Fprintf(&b, "  %q -> %q [label=\"xor\"]\n", f, r)
		fmt.Fprintf(&b, "  %q -> %q [label=\"xor\"]\n", prevL, r)
	}

	last := t.Rounds[len(t.Rounds)-1].Round
	fmt.Fprintf(&b, "  \"out\" [shape=underline label=\"IP-1\\n%s\"]\n", des.FormatBinary(t.Output, 64, group))
	fmt.Fprintf(&b, "  \"R%d\" -> \"out\" [label=\"swap\"]\n", last)
	fmt.Fprintf(&b, "  \"L%d\" -> \"out\"\n", last)
	b.WriteString("}\n")
	return b.String(), nil
}

// SVG lays out the DOT graph of t and renders it as SVG.
func SVG(ctx context.Context, t *transcript.Transcript, group int) ([]byte, error) {
	dot, err := DOT(t, group)
	if err != nil {
		return nil, err
	}
	graph, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("roundviz: failed to parse graph: %w", err)
	}
	g, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("roundviz: %w", err)
	}
	defer g.Close()
	var buf bytes.Buffer
	if err := g.Render(ctx, graph, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("roundviz: failed to render: %w", err)
	}
	return buf.Bytes(), nil
}
