package des

import (
	"fmt"
	"io"
	"strings"
)

// Direction tells an Observer which way a block is travelling.
type Direction int

const (
	Encrypt Direction = iota
	Decrypt
)

func (d Direction) String() string {
	switch d {
	case Encrypt:
		return "encrypt"
	case Decrypt:
		return "decrypt"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Observer receives the intermediate state of a block operation. Start
// carries the master key the operation runs under. Observers are
// called synchronously from EncryptBlock and DecryptBlock and cannot alter
// their result. Implementations shared by concurrent callers must do their
// own locking.
type Observer interface {
	Start(dir Direction, key, input, permuted uint64)
	Round(rt RoundTrace)
	Finish(preOutput, output uint64)
}

type multiObserver []Observer

// MultiObserver fans every event out to all observers in order.
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

func (m multiObserver) Start(dir Direction, key, input, permuted uint64) {
	for _, o := range m {
		o.Start(dir, key, input, permuted)
	}
}

func (m multiObserver) Round(rt RoundTrace) {
	for _, o := range m {
		o.Round(rt)
	}
}

func (m multiObserver) Finish(preOutput, output uint64) {
	for _, o := range m {
		o.Finish(preOutput, output)
	}
}

// FormatBinary renders the low width bits of value as binary digits, split
// from the left into groups of group bits separated by one space. A group of
// zero or less disables grouping.
func FormatBinary(value uint64, width, group int) string {
	var b strings.Builder
	b.Grow(width + width/max(group, 1))
	for i := width - 1; i >= 0; i-- {
		if group > 0 && i != width-1 && (width-1-i)%group == 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('0' + byte(value>>uint(i)&1))
	}
	return b.String()
}

// TextObserver writes every register as a labelled binary line. Write errors
// are kept in Err and stop further output.
type TextObserver struct {
	W     io.Writer
	Group int
	Err   error
}

func (t *TextObserver) line(label string, value uint64, width int) {
	if t.Err != nil {
		return
	}
	_, t.Err = fmt.Fprintf(t.W, "%s: %s\n", label, FormatBinary(value, width, t.Group))
}

func (t *TextObserver) Start(dir Direction, _, input, permuted uint64) {
	if t.Err == nil {
		_, t.Err = fmt.Fprintf(t.W, "%s %016x\n", dir, input)
	}
	t.line("input", input, 64)
	t.line("IP", permuted, 64)
	t.line("L0", permuted>>32, 32)
	t.line("R0", permuted&0xFFFFFFFF, 32)
}

func (t *TextObserver) Round(rt RoundTrace) {
	n := rt.Round
	t.line(fmt.Sprintf("K%d", n), rt.Key, 48)
	t.line(fmt.Sprintf("E%d", n), rt.Expanded, 48)
	t.line(fmt.Sprintf("E%d^K%d", n, n), rt.Mixed, 48)
	t.line(fmt.Sprintf("S%d", n), uint64(rt.Substituted), 32)
	t.line(fmt.Sprintf("f%d", n), uint64(rt.F), 32)
	t.line(fmt.Sprintf("L%d", n), uint64(rt.L), 32)
	t.line(fmt.Sprintf("R%d", n), uint64(rt.R), 32)
}

func (t *TextObserver) Finish(preOutput, output uint64) {
	t.line("R16L16", preOutput, 64)
	t.line("output", output, 64)
}
