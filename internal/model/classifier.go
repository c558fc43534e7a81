package model

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Brownie44l1/curecorn-api/internal/tensor"
	ort "github.com/yalue/onnxruntime_go"
)

var (
	ErrModelNotFound = errors.New("model file not found")
	ErrBadModel      = errors.New("unsupported model signature")
)

// Classifier runs the frozen leaf model. It is created once at startup and
// is safe for concurrent Predict calls.
type Classifier struct {
	session    *ort.DynamicAdvancedSession
	inputShape tensor.Shape
	classes    int
	softmax    bool
	Metadata   Metadata
}

func NewClassifier(opts Options) (*Classifier, error) {
	if _, err := os.Stat(opts.ModelPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, opts.ModelPath)
		}
		return nil, fmt.Errorf("failed to stat model: %w", err)
	}

	if !ort.IsInitialized() {
		if opts.LibraryPath != "" {
			ort.SetSharedLibraryPath(opts.LibraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfo(opts.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model signature: %w", err)
	}

	in, err := pickInfo(inputs, opts.InputName, "input")
	if err != nil {
		return nil, err
	}
	out, err := pickInfo(outputs, opts.OutputName, "output")
	if err != nil {
		return nil, err
	}

	inputShape, err := tensor.NewShape(in.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("%w: input %q: %v", ErrBadModel, in.Name, err)
	}
	if inputShape.Batch != 1 {
		return nil, fmt.Errorf("%w: input batch dimension %d, want 1", ErrBadModel, inputShape.Batch)
	}

	classes, err := classCount(out.Dimensions)
	if err != nil {
		return nil, fmt.Errorf("%w: output %q: %v", ErrBadModel, out.Name, err)
	}

	session, err := ort.NewDynamicAdvancedSession(opts.ModelPath,
		[]string{in.Name}, []string{out.Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &Classifier{
		session:    session,
		inputShape: inputShape,
		classes:    classes,
		softmax:    opts.ApplySoftmax,
		Metadata: Metadata{
			Path:        opts.ModelPath,
			InputName:   in.Name,
			OutputName:  out.Name,
			InputShape:  inputShape.Dims(),
			OutputShape: []int64{1, int64(classes)},
			Classes:     classes,
		},
	}, nil
}

func (c *Classifier) InputShape() tensor.Shape {
	return c.inputShape
}

func (c *Classifier) Classes() int {
	return c.classes
}

// Predict returns the class probabilities for a single-image batch.
func (c *Classifier) Predict(ctx context.Context, batch *tensor.Batch) ([]float32, error) {
	if err := batch.Expect(c.inputShape); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(batch.Shape.Dims()...), batch.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(c.classes)))
	if err != nil {
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	if err := c.session.Run([]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor}); err != nil {
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	probs := make([]float32, c.classes)
	copy(probs, outputTensor.GetData())

	if c.softmax {
		Softmax(probs)
	}
	return probs, nil
}

func (c *Classifier) Close() {
	if c.session != nil {
		c.session.Destroy()
	}
	ort.DestroyEnvironment()
}

func pickInfo(infos []ort.InputOutputInfo, name, kind string) (ort.InputOutputInfo, error) {
	if name == "" {
		if len(infos) != 1 {
			return ort.InputOutputInfo{}, fmt.Errorf("%w: model has %d %ss, set the %s name explicitly", ErrBadModel, len(infos), kind, kind)
		}
		return infos[0], nil
	}

	for _, info := range infos {
		if info.Name == name {
			return info, nil
		}
	}
	return ort.InputOutputInfo{}, fmt.Errorf("%w: no %s named %q", ErrBadModel, kind, name)
}

func classCount(dims []int64) (int, error) {
	if len(dims) != 2 {
		return 0, fmt.Errorf("expected 2 dimensions, got %d", len(dims))
	}
	if dims[1] <= 0 {
		return 0, fmt.Errorf("dynamic class dimension")
	}
	return int(dims[1]), nil
}

// Softmax normalises logits in place.
func Softmax(values []float32) {
	if len(values) == 0 {
		return
	}

	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	var sum float64
	for i, v := range values {
		e := math.Exp(float64(v - maxVal))
		values[i] = float32(e)
		sum += e
	}
	for i := range values {
		values[i] = float32(float64(values[i]) / sum)
	}
}
