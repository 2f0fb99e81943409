package des

import "testing"

func TestSBoxIndexBounds(t *testing.T) {
	seen := make(map[[2]int]bool)
	for g := 0; g < 64; g++ {
		row, col := SBoxIndex(uint8(g))
		if row < 0 || row > 3 || col < 0 || col > 15 {
			t.Fatalf("group %06b: row %d col %d out of range", g, row, col)
		}
		seen[[2]int{row, col}] = true
	}
	if len(seen) != 64 {
		t.Errorf("expected 64 distinct cells, got %d", len(seen))
	}
}

func TestSBoxIndexOuterBits(t *testing.T) {
	row, col := SBoxIndex(0b011011)
	if row != 1 || col != 13 {
		t.Errorf("011011: expected row 1 col 13, got row %d col %d", row, col)
	}
	row, col = SBoxIndex(0b100000)
	if row != 2 || col != 0 {
		t.Errorf("100000: expected row 2 col 0, got row %d col %d", row, col)
	}
}

func TestSBoxLookup(t *testing.T) {
	if got := sBoxes[0].Lookup(0b011011); got != 5 {
		t.Errorf("S1(011011) = %d, want 5", got)
	}
	if got := sBoxes[7].Lookup(0b111111); got != 11 {
		t.Errorf("S8(111111) = %d, want 11", got)
	}
}

func TestSubstituteVector(t *testing.T) {
	// K1 xor E(R0) for key 133457799bbcdff1 and block 0123456789abcdef
	if got := substitute(0x6117BA866527); got != 0x5C82B597 {
		t.Errorf("S(6117ba866527) = %08x, want 5c82b597", got)
	}
}
