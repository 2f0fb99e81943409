// Package transcript records the full register history of one block
// operation and stores it on disk through a transform pipeline.
package transcript

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"des-go/pkg/des"
	"des-go/pkg/transform"
)

var ErrIncomplete = errors.New("transcript: operation not finished")

// Transcript is the recorded state of one encryption or decryption.
type Transcript struct {
	Direction string           `json:"direction"`
	Key       uint64           `json:"key"`
	Input     uint64           `json:"input"`
	Permuted  uint64           `json:"permuted"`
	Rounds    []des.RoundTrace `json:"rounds"`
	PreOutput uint64           `json:"pre_output"`
	Output    uint64           `json:"output"`
}

// Complete reports whether all rounds and the output were recorded.
func (t *Transcript) Complete() bool {
	return len(t.Rounds) == des.Rounds && t.Direction != ""
}

// Text renders the transcript in the des.TextObserver format.
func (t *Transcript) Text(group int) (string, error) {
	if !t.Complete() {
		return "", ErrIncomplete
	}
	dir := des.Encrypt
	if t.Direction == des.Decrypt.String() {
		dir = des.Decrypt
	}
	var buf bytes.Buffer
	obs := &des.TextObserver{W: &buf, Group: group}
	obs.Start(dir, t.Key, t.Input, t.Permuted)
	for _, rt := range t.Rounds {
		obs.Round(rt)
	}
	obs.Finish(t.PreOutput, t.Output)
	return buf.String(), obs.Err
}

// Recorder is a des.Observer keeping the last block operation it saw, under
// whatever key the observed cipher held at the time.
type Recorder struct {
	mu      sync.Mutex
	current Transcript
	last    *Transcript
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Start(dir des.Direction, key, input, permuted uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = Transcript{
		Direction: dir.String(),
		Key:       key,
		Input:     input,
		Permuted:  permuted,
		Rounds:    make([]des.RoundTrace, 0, des.Rounds),
	}
}

func (r *Recorder) Round(rt des.RoundTrace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.Rounds = append(r.current.Rounds, rt)
}

func (r *Recorder) Finish(preOutput, output uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current.PreOutput = preOutput
	r.current.Output = output
	t := r.current
	r.last = &t
}

// Last returns the most recent finished transcript.
func (r *Recorder) Last() (*Transcript, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil, ErrIncomplete
	}
	t := *r.last
	return &t, nil
}

// Record runs one block operation under key and returns its transcript.
func Record(key, block uint64, dir des.Direction) (*Transcript, error) {
	rec := NewRecorder()
	c := des.New(key, des.WithObserver(rec))
	if dir == des.Decrypt {
		c.DecryptBlock(block)
	} else {
		c.EncryptBlock(block)
	}
	return rec.Last()
}

// Save writes t as JSON through proc.
func Save(path string, t *Transcript, proc *transform.PayloadProcessor) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("transcript: failed to encode: %w", err)
	}
	data, err = proc.PrepareOutput(data)
	if err != nil {
		return fmt.Errorf("transcript: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("transcript: failed to write %s: %w", path, err)
	}
	return nil
}

// Load reads a transcript written by Save with the same pipeline.
func Load(path string, proc *transform.PayloadProcessor) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("transcript: failed to read %s: %w", path, err)
	}
	data, err = proc.ParseInput(data)
	if err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	var t Transcript
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("transcript: failed to decode %s: %w", path, err)
	}
	if !t.Complete() {
		return nil, ErrIncomplete
	}
	return &t, nil
}
