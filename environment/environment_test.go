package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromInterfaceConventionMapsNonPositiveToInfinite(t *testing.T) {
	d, err := FromInterfaceConvention(0)
	require.NoError(t, err)
	assert.True(t, d.IsInfinite())

	d, err = FromInterfaceConvention(-5)
	require.NoError(t, err)
	assert.True(t, d.IsInfinite())
}

func TestFromInterfaceConventionMapsPositiveToFinite(t *testing.T) {
	d, err := FromInterfaceConvention(50)
	require.NoError(t, err)
	assert.False(t, d.IsInfinite())
	assert.InDelta(t, 50, d.Value(), 1e-12)
}

func TestValuePanicsOnInfiniteDepth(t *testing.T) {
	d := Infinite()
	assert.Panics(t, func() { d.Value() })
}

func TestNewRejectsNonPositiveDensityOrGravity(t *testing.T) {
	_, err := New(0, 9.8, Infinite())
	assert.Error(t, err)
	_, err = New(1025, 0, Infinite())
	assert.Error(t, err)
}

func TestStandardSeawater(t *testing.T) {
	env := StandardSeawater(Infinite())
	assert.InDelta(t, 1025.0, env.Density, 1e-9)
	assert.InDelta(t, 9.80665, env.Gravity, 1e-9)
}
