package des

import "testing"

func TestScheduleVector(t *testing.T) {
	s := NewSchedule(0x133457799BBCDFF1)
	if got := s.Key(1); got != 0x1B02EFFC7072 {
		t.Errorf("K1 = %012x, want 1b02effc7072", got)
	}
	if got := s.Key(16); got != 0xCB3D8B0E17F5 {
		t.Errorf("K16 = %012x, want cb3d8b0e17f5", got)
	}
	for i := 1; i <= Rounds; i++ {
		if s.Key(i)>>48 != 0 {
			t.Errorf("K%d = %x exceeds 48 bits", i, s.Key(i))
		}
	}
}

func TestScheduleDeterministic(t *testing.T) {
	for _, key := range []uint64{0, 0x133457799BBCDFF1, ^uint64(0), 0x0E329232EA6D0D73} {
		a, b := NewSchedule(key), NewSchedule(key)
		if a != b {
			t.Errorf("schedule for %016x differs between calls", key)
		}
		if len(a) != Rounds {
			t.Errorf("expected %d round keys, got %d", Rounds, len(a))
		}
	}
}

func TestScheduleIgnoresParity(t *testing.T) {
	key := uint64(0x133457799BBCDFF1)
	if NewSchedule(key) != NewSchedule(key^0x0101010101010101) {
		t.Error("flipping parity bits changed the schedule")
	}
}

func TestFeistelVector(t *testing.T) {
	k1 := NewSchedule(0x133457799BBCDFF1).Key(1)
	if got := feistel(0xF0AAF0AA, k1); got != 0x234AA9BB {
		t.Errorf("f(R0, K1) = %08x, want 234aa9bb", got)
	}
	var rt RoundTrace
	if got := feistelTrace(0xF0AAF0AA, k1, &rt); got != 0x234AA9BB {
		t.Errorf("traced f(R0, K1) = %08x, want 234aa9bb", got)
	}
	if rt.Expanded != 0x7A15557A1555 {
		t.Errorf("E(R0) = %012x, want 7a15557a1555", rt.Expanded)
	}
	if rt.Mixed != 0x6117BA866527 || rt.Substituted != 0x5C82B597 {
		t.Errorf("unexpected intermediates %012x %08x", rt.Mixed, rt.Substituted)
	}
}
