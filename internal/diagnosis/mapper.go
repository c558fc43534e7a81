package diagnosis

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	HealthyIndex = 0

	HealthyCondition  = "Daun jagung anda tidak terdeteksi penyakit"
	DiseasedCondition = "Daun jagung anda terdeteksi "
)

var (
	ErrVectorLength = errors.New("prediction vector length does not match label table")
	ErrNonFinite    = errors.New("prediction vector holds a non-finite value")
)

// Result is the JSON body returned by /predict.
type Result struct {
	Condition  string  `json:"Condition"`
	Message    string  `json:"Message"`
	Confidence float64 `json:"Confidence"`
}

// Argmax returns the index of the largest value. Ties resolve to the lowest
// index; an empty vector yields -1.
func Argmax(values []float32) int {
	if len(values) == 0 {
		return -1
	}

	maxIdx := 0
	maxVal := values[0]
	for i, val := range values {
		if val > maxVal {
			maxVal = val
			maxIdx = i
		}
	}
	return maxIdx
}

type Mapper struct {
	labels Labels
}

func NewMapper(labels Labels) (*Mapper, error) {
	if labels.Len() == 0 {
		return nil, fmt.Errorf("%w: no labels", ErrInvalidLabels)
	}
	return &Mapper{labels: labels}, nil
}

func (m *Mapper) Classes() int {
	return m.labels.Len()
}

// Map converts a probability vector into a diagnosis. Message always carries
// the short code of the winning class, including for the healthy class.
// Clients of the previous CureCorn API that read the descriptive label from
// Message for diseased leaves find it, lowercased, in Condition instead.
func (m *Mapper) Map(probs []float32) (Result, error) {
	if len(probs) != m.labels.Len() {
		return Result{}, fmt.Errorf("%w: got %d values, want %d", ErrVectorLength, len(probs), m.labels.Len())
	}
	for i, p := range probs {
		if math.IsNaN(float64(p)) || math.IsInf(float64(p), 0) {
			return Result{}, fmt.Errorf("%w: index %d is %v", ErrNonFinite, i, p)
		}
	}

	idx := Argmax(probs)

	condition := HealthyCondition
	if idx != HealthyIndex {
		condition = DiseasedCondition + strings.ToLower(m.labels.Description(idx))
	}

	return Result{
		Condition:  condition,
		Message:    m.labels.Code(idx),
		Confidence: float64(probs[idx]),
	}, nil
}
