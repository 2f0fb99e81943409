package des

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParseKey reads a master key written in hex. A 0x prefix, spaces and
// underscores are accepted; values wider than 64 bits are rejected with
// ErrInvalidKey.
func ParseKey(s string) (uint64, error) {
	return parseHex64(s, ErrInvalidKey)
}

// ParseBlock is ParseKey for blocks and fails with ErrInvalidBlock.
func ParseBlock(s string) (uint64, error) {
	return parseHex64(s, ErrInvalidBlock)
}

func parseHex64(s string, kind error) (uint64, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
	if len(clean) > 1 && (clean[:2] == "0x" || clean[:2] == "0X") {
		clean = clean[2:]
	}
	if clean == "" {
		return 0, fmt.Errorf("%w: empty value", kind)
	}
	v, err := strconv.ParseUint(clean, 16, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q exceeds 64 bits", kind, s)
		}
		return 0, fmt.Errorf("%w: %q is not hexadecimal", kind, s)
	}
	return v, nil
}

// FormatHex renders a key or block as 16 lower-case hex digits.
func FormatHex(v uint64) string {
	return fmt.Sprintf("%016x", v)
}
