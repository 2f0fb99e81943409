package des

import (
	"errors"
	"testing"
)

func TestPermuteIdentity(t *testing.T) {
	for _, n := range []int{1, 8, 28, 32, 48, 64} {
		table := make([]int, n)
		for i := range table {
			table[i] = i + 1
		}
		mask := uint64(1)<<uint(n) - 1
		for _, v := range []uint64{0, 1, 0xDEADBEEFCAFEF00D, ^uint64(0)} {
			got, err := Permute(table, v&mask, n)
			if err != nil {
				t.Fatalf("Permute(identity %d) failed: %v", n, err)
			}
			if got != v&mask {
				t.Errorf("identity over %d bits: got %x, want %x", n, got, v&mask)
			}
		}
	}
}

func TestPermuteReverse(t *testing.T) {
	got, err := Permute([]int{4, 3, 2, 1}, 0b0001, 4)
	if err != nil {
		t.Fatalf("Permute failed: %v", err)
	}
	if got != 0b1000 {
		t.Errorf("expected 1000, got %04b", got)
	}
}

func TestPermuteContractAndExpand(t *testing.T) {
	got, err := Permute([]int{1, 3}, 0b1010, 4)
	if err != nil {
		t.Fatalf("Permute failed: %v", err)
	}
	if got != 0b11 {
		t.Errorf("contraction: expected 11, got %02b", got)
	}
	got, err = Permute([]int{1, 1, 2, 2}, 0b10, 2)
	if err != nil {
		t.Fatalf("Permute failed: %v", err)
	}
	if got != 0b1100 {
		t.Errorf("expansion: expected 1100, got %04b", got)
	}
}

func TestNewPermutationTableRejects(t *testing.T) {
	cases := []struct {
		name  string
		table []int
		width int
	}{
		{"zero entry", []int{0, 1}, 2},
		{"entry past width", []int{1, 3}, 2},
		{"negative entry", []int{-1}, 8},
		{"empty", nil, 8},
		{"zero width", []int{1}, 0},
		{"wide input", []int{1}, 65},
	}
	for _, tc := range cases {
		if _, err := NewPermutationTable(tc.table, tc.width); !errors.Is(err, ErrInvalidTable) {
			t.Errorf("%s: expected ErrInvalidTable, got %v", tc.name, err)
		}
	}
}

func TestMustTablePanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrInvalidTable) {
			t.Errorf("expected panic with ErrInvalidTable, got %v", r)
		}
	}()
	mustTable("broken", []int{9}, 8)
}

func TestExpansionWidth(t *testing.T) {
	if expansion.InputWidth() != 32 || expansion.OutputWidth() != 48 {
		t.Fatalf("E maps %d to %d bits", expansion.InputWidth(), expansion.OutputWidth())
	}
	for _, r := range []uint32{0, 1, 0x80000000, 0xF0AAF0AA, 0xFFFFFFFF} {
		if e := expansion.Apply(uint64(r)); e>>48 != 0 {
			t.Errorf("E(%08x) = %x exceeds 48 bits", r, e)
		}
	}
	// all ones stays all ones over 48 bits
	if e := expansion.Apply(0xFFFFFFFF); e != 1<<48-1 {
		t.Errorf("E(ffffffff) = %x", e)
	}
}

func TestFinalPermutationInvertsInitial(t *testing.T) {
	for _, v := range []uint64{0, 1, 0x0123456789ABCDEF, 0x8000000000000001, ^uint64(0)} {
		if got := finalPermutation.Apply(initialPermutation.Apply(v)); got != v {
			t.Errorf("IP-1(IP(%016x)) = %016x", v, got)
		}
	}
}

func TestInitialPermutationVector(t *testing.T) {
	if got := initialPermutation.Apply(0x0123456789ABCDEF); got != 0xCC00CCFFF0AAF0AA {
		t.Errorf("IP(0123456789abcdef) = %016x, want cc00ccfff0aaf0aa", got)
	}
}

func TestValidateTables(t *testing.T) {
	if err := validateTables(); err != nil {
		t.Fatalf("constant tables invalid: %v", err)
	}
}
