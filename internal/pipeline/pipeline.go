package pipeline

import (
	"context"
	"fmt"

	"github.com/Brownie44l1/curecorn-api/internal/diagnosis"
	"github.com/Brownie44l1/curecorn-api/internal/imageproc"
	"github.com/Brownie44l1/curecorn-api/internal/tensor"
	"go.uber.org/zap"
)

// Classifier is the inference side of the pipeline. *model.Classifier
// implements it.
type Classifier interface {
	Predict(ctx context.Context, batch *tensor.Batch) ([]float32, error)
	InputShape() tensor.Shape
	Classes() int
}

// Pipeline wires decode, preprocess, classify and map for one image.
type Pipeline struct {
	preprocessor *imageproc.Preprocessor
	classifier   Classifier
	mapper       *diagnosis.Mapper
	logger       *zap.Logger
}

// New checks that the stages agree on tensor shape and class count.
func New(pre *imageproc.Preprocessor, classifier Classifier, mapper *diagnosis.Mapper, logger *zap.Logger) (*Pipeline, error) {
	if pre.Shape() != classifier.InputShape() {
		return nil, fmt.Errorf("%w: preprocessor produces %s, model expects %s",
			tensor.ErrShapeMismatch, pre.Shape(), classifier.InputShape())
	}
	if mapper.Classes() != classifier.Classes() {
		return nil, fmt.Errorf("%w: %d labels for %d model classes",
			diagnosis.ErrVectorLength, mapper.Classes(), classifier.Classes())
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		preprocessor: pre,
		classifier:   classifier,
		mapper:       mapper,
		logger:       logger,
	}, nil
}

// InputShape is the batch shape accepted by RunBatch.
func (p *Pipeline) InputShape() tensor.Shape {
	return p.classifier.InputShape()
}

// Run diagnoses an uploaded image.
func (p *Pipeline) Run(ctx context.Context, data []byte) (diagnosis.Result, error) {
	img, format, err := imageproc.Decode(data)
	if err != nil {
		return diagnosis.Result{}, err
	}

	bounds := img.Bounds()
	p.logger.Debug("decoded image",
		zap.String("format", format),
		zap.Int("width", bounds.Dx()),
		zap.Int("height", bounds.Dy()),
	)

	batch, err := p.preprocessor.Preprocess(img)
	if err != nil {
		return diagnosis.Result{}, fmt.Errorf("failed to preprocess image: %w", err)
	}

	return p.RunBatch(ctx, batch)
}

// RunBatch classifies an already preprocessed batch.
func (p *Pipeline) RunBatch(ctx context.Context, batch *tensor.Batch) (diagnosis.Result, error) {
	if err := batch.Expect(p.classifier.InputShape()); err != nil {
		return diagnosis.Result{}, err
	}

	probs, err := p.classifier.Predict(ctx, batch)
	if err != nil {
		return diagnosis.Result{}, err
	}

	result, err := p.mapper.Map(probs)
	if err != nil {
		return diagnosis.Result{}, err
	}

	p.logger.Debug("prediction",
		zap.Float32s("probabilities", probs),
		zap.String("message", result.Message),
		zap.Float64("confidence", result.Confidence),
	)
	return result, nil
}
