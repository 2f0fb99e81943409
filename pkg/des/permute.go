package des

import "fmt"

// PermutationTable remaps the bits of a fixed-width field. Entry i names the
// 1-indexed input bit (bit 1 is the most significant) that becomes output bit
// i, also counted from the most significant end. Entries may repeat.
type PermutationTable struct {
	positions []uint8
	inWidth   int
}

// NewPermutationTable validates positions against inputWidth. Both widths are
// limited to 64 bits.
func NewPermutationTable(positions []int, inputWidth int) (PermutationTable, error) {
	if inputWidth < 1 || inputWidth > 64 {
		return PermutationTable{}, fmt.Errorf("%w: input width %d out of range", ErrInvalidTable, inputWidth)
	}
	if len(positions) == 0 || len(positions) > 64 {
		return PermutationTable{}, fmt.Errorf("%w: output width %d out of range", ErrInvalidTable, len(positions))
	}
	p := make([]uint8, len(positions))
	for i, pos := range positions {
		if pos < 1 || pos > inputWidth {
			return PermutationTable{}, fmt.Errorf("%w: entry %d is %d, want [1, %d]", ErrInvalidTable, i, pos, inputWidth)
		}
		p[i] = uint8(pos)
	}
	return PermutationTable{positions: p, inWidth: inputWidth}, nil
}

func mustTable(name string, positions []int, inputWidth int) PermutationTable {
	t, err := NewPermutationTable(positions, inputWidth)
	if err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
	return t
}

func (t PermutationTable) InputWidth() int  { return t.inWidth }
func (t PermutationTable) OutputWidth() int { return len(t.positions) }

// Apply permutes the low InputWidth bits of value.
func (t PermutationTable) Apply(value uint64) uint64 {
	var out uint64
	w := uint(t.inWidth)
	for _, pos := range t.positions {
		out = out<<1 | (value>>(w-uint(pos)))&1
	}
	return out
}

// Permute validates table and applies it to value in one step. Constant
// tables should be built once with NewPermutationTable instead.
func Permute(table []int, value uint64, inputWidth int) (uint64, error) {
	t, err := NewPermutationTable(table, inputWidth)
	if err != nil {
		return 0, err
	}
	return t.Apply(value), nil
}
