// Package transform provides reversible byte transforms used when storing
// trace transcripts.
package transform

import (
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
)

type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

type noOpTransform struct{}

func NewNoOpTransform() Transform                            { return &noOpTransform{} }
func (n *noOpTransform) Apply(data []byte) ([]byte, error)   { return data, nil }
func (n *noOpTransform) Reverse(data []byte) ([]byte, error) { return data, nil }

// ByName builds the transform for a compression setting: "none", "gzip" or
// "zstd".
func ByName(name string) (Transform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return NewNoOpTransform(), nil
	case "gzip":
		return NewGzipTransform(), nil
	case "zstd":
		return NewZstdTransform(zstd.SpeedDefault)
	default:
		return nil, fmt.Errorf("transform: unknown compression %q", name)
	}
}
