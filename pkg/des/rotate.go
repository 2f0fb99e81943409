package des

import "fmt"

// RotateLeft circularly shifts the low width bits of value left by amount.
// It panics unless 1 <= width <= 64 and 0 <= amount < width.
func RotateLeft(value uint64, amount, width int) uint64 {
	if width < 1 || width > 64 || amount < 0 || amount >= width {
		panic(fmt.Sprintf("des: rotate by %d over %d bits", amount, width))
	}
	mask := uint64(1)<<uint(width) - 1
	value &= mask
	if amount == 0 {
		return value
	}
	return (value<<uint(amount) | value>>uint(width-amount)) & mask
}
