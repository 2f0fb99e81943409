package des

import "fmt"

// Rounds is the number of Feistel rounds and of round keys.
const Rounds = 16

var (
	pc1 = mustTable("PC-1", []int{
		57, 49, 41, 33, 25, 17, 9,
		1, 58, 50, 42, 34, 26, 18,
		10, 2, 59, 51, 43, 35, 27,
		19, 11, 3, 60, 52, 44, 36,
		63, 55, 47, 39, 31, 23, 15,
		7, 62, 54, 46, 38, 30, 22,
		14, 6, 61, 53, 45, 37, 29,
		21, 13, 5, 28, 20, 12, 4,
	}, 64)

	pc2 = mustTable("PC-2", []int{
		14, 17, 11, 24, 1, 5,
		3, 28, 15, 6, 21, 10,
		23, 19, 12, 4, 26, 8,
		16, 7, 27, 20, 13, 2,
		41, 52, 31, 37, 47, 55,
		30, 40, 51, 45, 33, 48,
		44, 49, 39, 56, 34, 53,
		46, 42, 50, 36, 29, 32,
	}, 56)

	initialPermutation = mustTable("IP", []int{
		58, 50, 42, 34, 26, 18, 10, 2,
		60, 52, 44, 36, 28, 20, 12, 4,
		62, 54, 46, 38, 30, 22, 14, 6,
		64, 56, 48, 40, 32, 24, 16, 8,
		57, 49, 41, 33, 25, 17, 9, 1,
		59, 51, 43, 35, 27, 19, 11, 3,
		61, 53, 45, 37, 29, 21, 13, 5,
		63, 55, 47, 39, 31, 23, 15, 7,
	}, 64)

	finalPermutation = mustTable("IP-1", []int{
		40, 8, 48, 16, 56, 24, 64, 32,
		39, 7, 47, 15, 55, 23, 63, 31,
		38, 6, 46, 14, 54, 22, 62, 30,
		37, 5, 45, 13, 53, 21, 61, 29,
		36, 4, 44, 12, 52, 20, 60, 28,
		35, 3, 43, 11, 51, 19, 59, 27,
		34, 2, 42, 10, 50, 18, 58, 26,
		33, 1, 41, 9, 49, 17, 57, 25,
	}, 64)

	expansion = mustTable("E", []int{
		32, 1, 2, 3, 4, 5,
		4, 5, 6, 7, 8, 9,
		8, 9, 10, 11, 12, 13,
		12, 13, 14, 15, 16, 17,
		16, 17, 18, 19, 20, 21,
		20, 21, 22, 23, 24, 25,
		24, 25, 26, 27, 28, 29,
		28, 29, 30, 31, 32, 1,
	}, 32)

	pBox = mustTable("P", []int{
		16, 7, 20, 21, 29, 12, 28, 17,
		1, 15, 23, 26, 5, 18, 31, 10,
		2, 8, 24, 14, 32, 27, 3, 9,
		19, 13, 30, 6, 22, 11, 4, 25,
	}, 32)
)

// left rotations applied to C and D before each round key
var rotations = [Rounds]int{1, 1, 2, 2, 2, 2, 2, 2, 1, 2, 2, 2, 2, 2, 2, 1}

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

func validateTables() error {
	widths := []struct {
		name    string
		t       PermutationTable
		in, out int
	}{
		{"PC-1", pc1, 64, 56},
		{"PC-2", pc2, 56, 48},
		{"IP", initialPermutation, 64, 64},
		{"IP-1", finalPermutation, 64, 64},
		{"E", expansion, 32, 48},
		{"P", pBox, 32, 32},
	}
	for _, w := range widths {
		if w.t.InputWidth() != w.in || w.t.OutputWidth() != w.out {
			return fmt.Errorf("%w: %s maps %d to %d bits, want %d to %d",
				ErrInvalidTable, w.name, w.t.InputWidth(), w.t.OutputWidth(), w.in, w.out)
		}
	}
	for _, b := range []struct {
		name string
		t    PermutationTable
	}{{"IP", initialPermutation}, {"IP-1", finalPermutation}, {"P", pBox}} {
		if !isBijection(b.t) {
			return fmt.Errorf("%w: %s is not a bijection", ErrInvalidTable, b.name)
		}
	}
	for i := range initialPermutation.positions {
		if finalPermutation.positions[initialPermutation.positions[i]-1] != uint8(i+1) {
			return fmt.Errorf("%w: IP-1 does not invert IP at bit %d", ErrInvalidTable, i+1)
		}
	}
	return validateSBoxes()
}

func isBijection(t PermutationTable) bool {
	if t.OutputWidth() != t.InputWidth() {
		return false
	}
	var seen uint64
	for _, pos := range t.positions {
		bit := uint64(1) << (pos - 1)
		if seen&bit != 0 {
			return false
		}
		seen |= bit
	}
	return true
}
