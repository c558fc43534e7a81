package diagnosis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func defaultMapper(t *testing.T) *Mapper {
	t.Helper()
	labels, err := NewLabels(DefaultLabels)
	require.NoError(t, err)
	m, err := NewMapper(labels)
	require.NoError(t, err)
	return m
}

func TestArgmax(t *testing.T) {
	require.Equal(t, 0, Argmax([]float32{0.5, 0.5, 0, 0}))
	require.Equal(t, 2, Argmax([]float32{0.1, 0.2, 0.6, 0.1}))
	require.Equal(t, 1, Argmax([]float32{0, 0.4, 0.2, 0.4}))
	require.Equal(t, -1, Argmax(nil))
}

func TestMapHealthy(t *testing.T) {
	res, err := defaultMapper(t).Map([]float32{0.7, 0.1, 0.1, 0.1})
	require.NoError(t, err)
	require.Equal(t, HealthyCondition, res.Condition)
	require.Equal(t, "Bercak", res.Message)
	require.InDelta(t, 0.7, res.Confidence, 1e-6)
}

func TestMapDiseased(t *testing.T) {
	m := defaultMapper(t)

	tests := []struct {
		probs     []float32
		condition string
		message   string
	}{
		{[]float32{0.1, 0.8, 0.05, 0.05}, "Daun jagung anda terdeteksi leaf blight", "Hawar"},
		{[]float32{0.1, 0.1, 0.75, 0.05}, "Daun jagung anda terdeteksi common rust", "Karat"},
		{[]float32{0.0, 0.0, 0.1, 0.9}, "Daun jagung anda terdeteksi sehat", "Sehat"},
	}

	for _, tc := range tests {
		res, err := m.Map(tc.probs)
		require.NoError(t, err)
		require.Equal(t, tc.condition, res.Condition)
		require.Equal(t, tc.message, res.Message)
		require.GreaterOrEqual(t, res.Confidence, 0.0)
		require.LessOrEqual(t, res.Confidence, 1.0)
	}
}

func TestMapTieGoesToHealthy(t *testing.T) {
	res, err := defaultMapper(t).Map([]float32{0.5, 0.5, 0, 0})
	require.NoError(t, err)
	require.Equal(t, HealthyCondition, res.Condition)
	require.InDelta(t, 0.5, res.Confidence, 1e-6)
}

func TestMapWrongLength(t *testing.T) {
	_, err := defaultMapper(t).Map([]float32{1, 0})
	require.ErrorIs(t, err, ErrVectorLength)
}

func TestNewLabelsValidation(t *testing.T) {
	_, err := NewLabels(nil)
	require.ErrorIs(t, err, ErrInvalidLabels)

	_, err = NewLabels([]Label{{Code: "Sehat"}})
	require.ErrorIs(t, err, ErrInvalidLabels)

	_, err = NewMapper(Labels{})
	require.ErrorIs(t, err, ErrInvalidLabels)
}

func TestLabelsAreCopied(t *testing.T) {
	entries := []Label{{Code: "A", Description: "Alpha"}, {Code: "B", Description: "Beta"}}
	labels, err := NewLabels(entries)
	require.NoError(t, err)

	entries[1].Code = "changed"
	require.Equal(t, "B", labels.Code(1))
	require.Equal(t, "Beta", labels.Description(1))
}

func TestMapRejectsNonFinite(t *testing.T) {
	m := defaultMapper(t)
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	_, err := m.Map([]float32{nan, 0.2, 0.3, 0.1})
	require.ErrorIs(t, err, ErrNonFinite)

	_, err = m.Map([]float32{0.1, inf, 0.3, 0.1})
	require.ErrorIs(t, err, ErrNonFinite)
}
