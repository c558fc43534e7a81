package imageproc

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/Brownie44l1/curecorn-api/internal/tensor"
	"github.com/nfnt/resize"
)

const (
	DefaultSize     = 150
	DefaultChannels = 3
)

var ErrEmptyImage = errors.New("image has no pixels")

// Preprocessor resizes decoded images to the classifier input size and lays
// them out as a single-image NHWC batch.
type Preprocessor struct {
	width    int
	height   int
	channels int
	scale    float32
}

func NewPreprocessor(width, height, channels int, scale float32) (*Preprocessor, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", tensor.ErrInvalidShape, width, height)
	}
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("%w: unsupported channel count %d", tensor.ErrInvalidShape, channels)
	}
	if scale == 0 {
		scale = 1
	}

	return &Preprocessor{
		width:    width,
		height:   height,
		channels: channels,
		scale:    scale,
	}, nil
}

// Shape is the batch shape Preprocess produces.
func (p *Preprocessor) Shape() tensor.Shape {
	return tensor.Shape{Batch: 1, Height: p.height, Width: p.width, Channels: p.channels}
}

// Resize scales img to the target size with bilinear interpolation. Images
// already at the target size are returned untouched.
func (p *Preprocessor) Resize(img image.Image) (image.Image, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, ErrEmptyImage
	}

	if bounds.Dx() == p.width && bounds.Dy() == p.height {
		return img, nil
	}

	return resize.Resize(uint(p.width), uint(p.height), img, resize.Bilinear), nil
}

// Preprocess resizes img and converts it to a (1, height, width, channels)
// batch of 8-bit intensities multiplied by the configured scale.
func (p *Preprocessor) Preprocess(img image.Image) (*tensor.Batch, error) {
	resized, err := p.Resize(img)
	if err != nil {
		return nil, err
	}

	shape := p.Shape()
	data := make([]float32, shape.Size())
	bounds := resized.Bounds()

	i := 0
	for y := bounds.Min.Y; y < bounds.Min.Y+p.height; y++ {
		for x := bounds.Min.X; x < bounds.Min.X+p.width; x++ {
			c := color.NRGBAModel.Convert(resized.At(x, y)).(color.NRGBA)

			data[i] = float32(c.R) * p.scale
			data[i+1] = float32(c.G) * p.scale
			data[i+2] = float32(c.B) * p.scale
			if p.channels == 4 {
				data[i+3] = float32(c.A) * p.scale
			}
			i += p.channels
		}
	}

	return tensor.NewBatch(shape, data)
}
