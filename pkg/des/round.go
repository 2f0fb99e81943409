package des

// RoundTrace carries the intermediate registers of one Feistel round. L and R
// are the halves after the round.
type RoundTrace struct {
	Round       int
	Key         uint64
	Expanded    uint64
	Mixed       uint64
	Substituted uint32
	F           uint32
	L, R        uint32
}

// feistel is the round function f(R, K).
func feistel(r uint32, k uint64) uint32 {
	x := expansion.Apply(uint64(r)) ^ k
	return uint32(pBox.Apply(uint64(substitute(x))))
}

// feistelTrace computes the same value as feistel and fills in rt.
func feistelTrace(r uint32, k uint64, rt *RoundTrace) uint32 {
	rt.Expanded = expansion.Apply(uint64(r))
	rt.Mixed = rt.Expanded ^ k
	rt.Substituted = substitute(rt.Mixed)
	rt.F = uint32(pBox.Apply(uint64(rt.Substituted)))
	return rt.F
}
