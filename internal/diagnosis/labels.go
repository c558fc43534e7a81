package diagnosis

import (
	"errors"
	"fmt"
)

var ErrInvalidLabels = errors.New("invalid label table")

// Label pairs the short Indonesian condition code with the longer
// descriptive class name.
type Label struct {
	Code        string `mapstructure:"code" json:"code"`
	Description string `mapstructure:"description" json:"description"`
}

// DefaultLabels is the class order the leaf model was trained with.
var DefaultLabels = []Label{
	{Code: "Bercak", Description: "Leaf Spot"},
	{Code: "Hawar", Description: "Leaf Blight"},
	{Code: "Karat", Description: "Common Rust"},
	{Code: "Sehat", Description: "Sehat"},
}

// Labels is the fixed-order pair of lookup tables indexed by class index.
// Build it with NewLabels; it is never mutated afterwards.
type Labels struct {
	codes        []string
	descriptions []string
}

func NewLabels(entries []Label) (Labels, error) {
	if len(entries) == 0 {
		return Labels{}, fmt.Errorf("%w: no labels", ErrInvalidLabels)
	}

	l := Labels{
		codes:        make([]string, len(entries)),
		descriptions: make([]string, len(entries)),
	}
	for i, e := range entries {
		if e.Code == "" || e.Description == "" {
			return Labels{}, fmt.Errorf("%w: entry %d needs both code and description", ErrInvalidLabels, i)
		}
		l.codes[i] = e.Code
		l.descriptions[i] = e.Description
	}

	return l, nil
}

func (l Labels) Len() int {
	return len(l.codes)
}

func (l Labels) Code(i int) string {
	return l.codes[i]
}

func (l Labels) Description(i int) string {
	return l.descriptions[i]
}
