// Package des implements the Data Encryption Standard block transform on a
// single 64-bit block under a single 64-bit key.
package des

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// BlockSize is the DES block size in bytes.
const BlockSize = 8

// State is the key schedule lifecycle of a Cipher.
type State int

const (
	Uninitialized State = iota
	KeyScheduled
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case KeyScheduled:
		return "key-scheduled"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// keyState is replaced as a whole, never mutated, so readers holding one
// always see a key together with the schedule derived from it.
type keyState struct {
	key      uint64
	schedule *Schedule
}

// Cipher encrypts and decrypts single blocks under one master key. The round
// keys are derived on first use and cached until SetKey. A Cipher is safe for
// concurrent use.
type Cipher struct {
	mu       sync.Mutex
	state    atomic.Pointer[keyState]
	observer Observer
}

type Option func(*Cipher)

// WithObserver attaches o to every block operation.
func WithObserver(o Observer) Option {
	return func(c *Cipher) { c.observer = o }
}

// WithTrace writes a binary trace of every block operation to w, with bits
// grouped group at a time.
func WithTrace(w io.Writer, group int) Option {
	return WithObserver(&TextObserver{W: w, Group: group})
}

func New(key uint64, opts ...Option) *Cipher {
	c := &Cipher{}
	c.state.Store(&keyState{key: key})
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCipher creates a Cipher from an 8-byte big-endian key.
func NewCipher(key []byte, opts ...Option) (*Cipher, error) {
	if len(key) != BlockSize {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", ErrInvalidKey, len(key), BlockSize)
	}
	return New(binary.BigEndian.Uint64(key), opts...), nil
}

func (c *Cipher) Key() uint64 { return c.state.Load().key }

// SetKey replaces the master key and drops the cached schedule; the next
// block operation derives a new one.
func (c *Cipher) SetKey(key uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Store(&keyState{key: key})
}

func (c *Cipher) State() State {
	if c.state.Load().schedule == nil {
		return Uninitialized
	}
	return KeyScheduled
}

// Schedule returns a copy of the round keys, deriving them if needed.
func (c *Cipher) Schedule() Schedule {
	return *c.scheduled().schedule
}

// scheduled returns the current key together with its round keys, deriving
// them if needed.
func (c *Cipher) scheduled() *keyState {
	if st := c.state.Load(); st.schedule != nil {
		return st
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state.Load()
	if st.schedule == nil {
		s := NewSchedule(st.key)
		st = &keyState{key: st.key, schedule: &s}
		c.state.Store(st)
	}
	return st
}

func (c *Cipher) EncryptBlock(block uint64) uint64 {
	return c.crypt(block, Encrypt)
}

func (c *Cipher) DecryptBlock(block uint64) uint64 {
	return c.crypt(block, Decrypt)
}

func (c *Cipher) crypt(block uint64, dir Direction) uint64 {
	st := c.scheduled()
	ks := st.schedule
	permuted := initialPermutation.Apply(block)
	l, r := uint32(permuted>>32), uint32(permuted)

	obs := c.observer
	if obs != nil {
		obs.Start(dir, st.key, block, permuted)
	}
	for i := 0; i < Rounds; i++ {
		k := ks[i]
		if dir == Decrypt {
			k = ks[Rounds-1-i]
		}
		if obs == nil {
			l, r = r, l^feistel(r, k)
			continue
		}
		rt := RoundTrace{Round: i + 1, Key: k}
		f := feistelTrace(r, k, &rt)
		l, r = r, l^f
		rt.L, rt.R = l, r
		obs.Round(rt)
	}

	// the halves are swapped once more before IP-1
	preOutput := uint64(r)<<32 | uint64(l)
	out := finalPermutation.Apply(preOutput)
	if obs != nil {
		obs.Finish(preOutput, out)
	}
	return out
}

// EncryptHex parses a textual block (see ParseBlock) and encrypts it.
func (c *Cipher) EncryptHex(s string) (uint64, error) {
	b, err := ParseBlock(s)
	if err != nil {
		return 0, err
	}
	return c.EncryptBlock(b), nil
}

// DecryptHex parses a textual block (see ParseBlock) and decrypts it.
func (c *Cipher) DecryptHex(s string) (uint64, error) {
	b, err := ParseBlock(s)
	if err != nil {
		return 0, err
	}
	return c.DecryptBlock(b), nil
}

// BlockSize returns the block size in bytes.
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt encrypts the first block of src into dst, big-endian.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("des: input not full block")
	}
	binary.BigEndian.PutUint64(dst, c.EncryptBlock(binary.BigEndian.Uint64(src)))
}

// Decrypt decrypts the first block of src into dst, big-endian.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize || len(dst) < BlockSize {
		panic("des: input not full block")
	}
	binary.BigEndian.PutUint64(dst, c.DecryptBlock(binary.BigEndian.Uint64(src)))
}
