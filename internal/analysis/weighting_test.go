package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeights_Defaults(t *testing.T) {
	w := DefaultWeights()

	points, mult := w.Theme("Christ-centered")
	assert.Equal(t, 10.0, points)
	assert.Equal(t, 1.5, mult)

	points, mult = w.Theme("Endurance")
	assert.Equal(t, 5.0, points)
	assert.Equal(t, 1.2, mult)

	points, mult = w.Theme("Worship")
	assert.Equal(t, 3.0, points)
	assert.Equal(t, 1.0, mult)
}

func TestWeights_UnknownTheme(t *testing.T) {
	points, mult := DefaultWeights().Theme("Nonexistent Theme")
	assert.Zero(t, points)
	assert.Equal(t, 1.0, mult)
}

func TestWeights_Penalties(t *testing.T) {
	w := DefaultWeights()
	assert.Equal(t, 30.0, w.Penalty(SeverityCritical))
	assert.Equal(t, 25.0, w.Penalty(SeverityHigh))
	assert.Equal(t, 15.0, w.Penalty(SeverityMedium))
	assert.Equal(t, 10.0, w.Penalty(SeverityLow))
	assert.Zero(t, w.Penalty(Severity("bogus")))
}

func TestNewWeights_Overrides(t *testing.T) {
	w, err := NewWeights(
		map[string]float64{"Worship": 8},
		map[ThemeCategory]float64{CategoryCoreGospel: 2.0},
		map[Severity]float64{SeverityCritical: 40},
	)
	require.NoError(t, err)

	points, _ := w.Theme("Worship")
	assert.Equal(t, 8.0, points)

	_, mult := w.Theme("Redemption")
	assert.Equal(t, 2.0, mult)

	assert.Equal(t, 40.0, w.Penalty(SeverityCritical))
	// Untouched entries keep their defaults.
	assert.Equal(t, 25.0, w.Penalty(SeverityHigh))
	points, _ = w.Theme("Faith")
	assert.Equal(t, 3.0, points)
}

func TestNewWeights_RejectsInvalidOverrides(t *testing.T) {
	t.Run("penalty ordering inverted", func(t *testing.T) {
		_, err := NewWeights(nil, nil, map[Severity]float64{SeverityCritical: 5})
		assert.Error(t, err)
	})

	t.Run("penalty tiers collapsed", func(t *testing.T) {
		_, err := NewWeights(nil, nil, map[Severity]float64{SeverityHigh: 15})
		assert.Error(t, err)
	})

	t.Run("multiplier ordering inverted", func(t *testing.T) {
		_, err := NewWeights(nil, map[ThemeCategory]float64{CategoryNeutral: 3.0}, nil)
		assert.Error(t, err)
	})

	t.Run("negative penalty magnitude", func(t *testing.T) {
		_, err := NewWeights(nil, nil, map[Severity]float64{
			SeverityLow: -5, SeverityMedium: -4, SeverityHigh: -3, SeverityCritical: -2,
		})
		assert.Error(t, err)
	})

	t.Run("nil overrides are the defaults", func(t *testing.T) {
		w, err := NewWeights(nil, nil, nil)
		require.NoError(t, err)
		points, mult := w.Theme("Christ-centered")
		assert.Equal(t, 10.0, points)
		assert.Equal(t, 1.5, mult)
	})
}
