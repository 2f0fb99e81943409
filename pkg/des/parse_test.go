package des

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	cases := map[string]uint64{
		"133457799BBCDFF1":         0x133457799BBCDFF1,
		"0x133457799bbcdff1":       0x133457799BBCDFF1,
		"1334 5779 9BBC DFF1":      0x133457799BBCDFF1,
		"  0X1334_5779_9bbc_dff1 ": 0x133457799BBCDFF1,
		"ff":                       0xFF,
		"ffffffffffffffff":         ^uint64(0),
	}
	for in, want := range cases {
		got, err := ParseKey(in)
		if err != nil {
			t.Errorf("ParseKey(%q) failed: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseKey(%q) = %x, want %x", in, got, want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"", "0x", "1ffffffffffffffff", "xyz", "-1", "12.5"} {
		if _, err := ParseKey(in); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("ParseKey(%q): expected ErrInvalidKey, got %v", in, err)
		}
		if _, err := ParseBlock(in); !errors.Is(err, ErrInvalidBlock) {
			t.Errorf("ParseBlock(%q): expected ErrInvalidBlock, got %v", in, err)
		}
	}
}

func TestHexOperations(t *testing.T) {
	c := New(0x133457799BBCDFF1)
	ct, err := c.EncryptHex("0123456789abcdef")
	if err != nil {
		t.Fatalf("EncryptHex failed: %v", err)
	}
	if FormatHex(ct) != "85e813540f0ab405" {
		t.Errorf("EncryptHex = %s", FormatHex(ct))
	}
	pt, err := c.DecryptHex(FormatHex(ct))
	if err != nil || pt != 0x0123456789ABCDEF {
		t.Errorf("DecryptHex = %x, %v", pt, err)
	}
	if _, err := c.EncryptHex("10000000000000000"); !errors.Is(err, ErrInvalidBlock) {
		t.Errorf("expected ErrInvalidBlock for a 65-bit block, got %v", err)
	}
	if c.State() != KeyScheduled {
		t.Errorf("unexpected state %v", c.State())
	}
	fresh := New(1)
	if _, err := fresh.DecryptHex("zz"); err == nil {
		t.Error("expected error for invalid block")
	}
	if fresh.State() != Uninitialized {
		t.Error("invalid input must not trigger key scheduling")
	}
}
