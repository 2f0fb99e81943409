package des

const mask28 = 1<<28 - 1

// Schedule holds the 48-bit round keys K1..K16 in round order.
type Schedule [Rounds]uint64

// NewSchedule derives the round keys of a master key. The eight parity bits
// of key are ignored.
func NewSchedule(key uint64) Schedule {
	var s Schedule
	k := pc1.Apply(key)
	c, d := k>>28&mask28, k&mask28
	for i, n := range rotations {
		c = RotateLeft(c, n, 28)
		d = RotateLeft(d, n, 28)
		s[i] = pc2.Apply(c<<28 | d)
	}
	return s
}

// Key returns round key K_round, 1 <= round <= Rounds.
func (s Schedule) Key(round int) uint64 {
	return s[round-1]
}
