package log

import (
	"des-go/pkg/des"

	"github.com/rs/zerolog"
)

// RoundObserver logs every block operation it observes at debug level, one
// event per round.
type RoundObserver struct {
	Group int
}

func (o RoundObserver) bits(v uint64, width int) string {
	return des.FormatBinary(v, width, o.Group)
}

func (o RoundObserver) Start(dir des.Direction, _, input, permuted uint64) {
	Debug().Str("op", dir.String()).
		Str("input", des.FormatHex(input)).
		Str("ip", o.bits(permuted, 64)).
		Msg("block start")
}

func (o RoundObserver) Round(rt des.RoundTrace) {
	Debug().Int("round", rt.Round).
		Str("key", o.bits(rt.Key, 48)).
		Str("f", o.bits(uint64(rt.F), 32)).
		Str("l", o.bits(uint64(rt.L), 32)).
		Str("r", o.bits(uint64(rt.R), 32)).
		Msg("round")
}

func (o RoundObserver) Finish(preOutput, output uint64) {
	Debug().Str("pre_output", o.bits(preOutput, 64)).
		Str("output", des.FormatHex(output)).
		Msg("block done")
}

// Enabled reports whether debug events would be written, so callers can skip
// attaching the observer entirely.
func Enabled() bool {
	return logger().GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel
}
