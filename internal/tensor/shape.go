package tensor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidShape  = errors.New("invalid tensor shape")
	ErrShapeMismatch = errors.New("tensor shape mismatch")
)

// Shape is an NHWC image batch shape.
type Shape struct {
	Batch    int
	Height   int
	Width    int
	Channels int
}

// NewShape builds a shape from ONNX-style dimensions. Dynamic dimensions
// (-1) in the batch position are read as 1.
func NewShape(dims []int64) (Shape, error) {
	if len(dims) != 4 {
		return Shape{}, fmt.Errorf("%w: expected 4 dimensions, got %d", ErrInvalidShape, len(dims))
	}

	batch := dims[0]
	if batch < 0 {
		batch = 1
	}

	s := Shape{
		Batch:    int(batch),
		Height:   int(dims[1]),
		Width:    int(dims[2]),
		Channels: int(dims[3]),
	}
	if err := s.Validate(); err != nil {
		return Shape{}, err
	}

	return s, nil
}

func (s Shape) Validate() error {
	if s.Batch <= 0 || s.Height <= 0 || s.Width <= 0 || s.Channels <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidShape, s)
	}
	return nil
}

// Size is the number of elements a tensor of this shape holds.
func (s Shape) Size() int {
	return s.Batch * s.Height * s.Width * s.Channels
}

func (s Shape) Dims() []int64 {
	return []int64{int64(s.Batch), int64(s.Height), int64(s.Width), int64(s.Channels)}
}

func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", s.Batch, s.Height, s.Width, s.Channels)
}

// Batch is a dense float32 NHWC tensor.
type Batch struct {
	Shape Shape
	Data  []float32
}

// NewBatch wraps data, failing unless its length matches the shape.
func NewBatch(shape Shape, data []float32) (*Batch, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.Size() {
		return nil, fmt.Errorf("%w: shape %s needs %d values, got %d", ErrInvalidShape, shape, shape.Size(), len(data))
	}
	return &Batch{Shape: shape, Data: data}, nil
}

// Expect checks that b can be fed to a model declaring the given input shape.
func (b *Batch) Expect(want Shape) error {
	if b == nil {
		return fmt.Errorf("%w: nil batch", ErrInvalidShape)
	}
	if b.Shape != want {
		return fmt.Errorf("%w: got %s, model expects %s", ErrShapeMismatch, b.Shape, want)
	}
	if len(b.Data) != want.Size() {
		return fmt.Errorf("%w: %d values for shape %s", ErrShapeMismatch, len(b.Data), want)
	}
	return nil
}
