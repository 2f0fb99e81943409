package transform

import (
	"errors"
	"fmt"
)

// PayloadProcessor runs a pipeline of transforms: 0..N when writing, N..0
// when reading back.
type PayloadProcessor struct {
	transforms []Transform
}

// NewPayloadProcessor requires at least one transform. Use NewNoOpTransform()
// for an explicitly empty pipeline.
func NewPayloadProcessor(pipelineTransforms []Transform) (*PayloadProcessor, error) {
	if len(pipelineTransforms) == 0 {
		return nil, errors.New("payload processor requires at least one transform; use NewNoOpTransform() for an empty pipeline")
	}
	s := make([]Transform, len(pipelineTransforms))
	copy(s, pipelineTransforms)
	return &PayloadProcessor{transforms: s}, nil
}

// NewProcessorByName is a single-transform pipeline chosen with ByName.
func NewProcessorByName(name string) (*PayloadProcessor, error) {
	t, err := ByName(name)
	if err != nil {
		return nil, err
	}
	return NewPayloadProcessor([]Transform{t})
}

// PrepareOutput applies the pipeline in forward order.
func (p *PayloadProcessor) PrepareOutput(payload []byte) ([]byte, error) {
	var err error
	current := payload
	for i, transform := range p.transforms {
		current, err = transform.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("prepare output: transform %d (%T) Apply failed: %w", i, transform, err)
		}
	}
	return current, nil
}

// ParseInput applies the pipeline in reverse order.
func (p *PayloadProcessor) ParseInput(payload []byte) ([]byte, error) {
	var err error
	current := payload
	for i := len(p.transforms) - 1; i >= 0; i-- {
		transform := p.transforms[i]
		current, err = transform.Reverse(current)
		if err != nil {
			return nil, fmt.Errorf("parse input: transform %d (%T) Reverse failed: %w", i, transform, err)
		}
	}
	return current, nil
}
