package roundviz

import (
	"strings"
	"testing"

	"des-go/pkg/des"
	"des-go/pkg/transcript"
)

func TestDOT(t *testing.T) {
	tr, err := transcript.Record(0x133457799BBCDFF1, 0x0123456789ABCDEF, des.Encrypt)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	dot, err := DOT(tr, 4)
	if err != nil {
		t.Fatalf("DOT failed: %v", err)
	}
	if !strings.HasPrefix(dot, "digraph rounds {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("unexpected graph framing:\n%s", dot)
	}
	for _, want := range []string{
		`label="encrypt 0123456789abcdef"`,
		`"R16" -> "out" [label="swap"]`,
		`"f1" -> "R1" [label="xor"]`,
		"L1\\n1111 0000 1010 1010 1111 0000 1010 1010",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("graph is missing %q", want)
		}
	}
	if n := strings.Count(dot, "[label=\"xor\"]"); n != 2*des.Rounds {
		t.Errorf("expected %d xor edges, got %d", 2*des.Rounds, n)
	}
}

func TestDOTIncomplete(t *testing.T) {
	if _, err := DOT(&transcript.Transcript{}, 4); err == nil {
		t.Error("expected error for an empty transcript")
	}
}
