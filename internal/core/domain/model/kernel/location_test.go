package kernel_test

import (
	"testing"

	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation(t *testing.T) {
	t.Run("valid location", func(t *testing.T) {
		loc, err := kernel.NewLocation("Braga", 41.5454, -8.4265)

		require.NoError(t, err)
		require.NoError(t, loc.Validate())
		assert.Equal(t, "Braga", loc.Name())
		assert.InDelta(t, 41.5454, loc.Latitude(), 1e-9)
		assert.InDelta(t, -8.4265, loc.Longitude(), 1e-9)
		assert.Equal(t, "Braga(41.5454,-8.4265)", loc.String())
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		_, err := kernel.NewLocation("pole", 90, -180)
		require.NoError(t, err)
		_, err = kernel.NewLocation("other pole", -90, 180)
		require.NoError(t, err)
	})

	testCases := []struct {
		name     string
		locName  string
		lat, lon float64
		expected error
	}{
		{name: "empty name", locName: " ", lat: 0, lon: 0, expected: errs.ErrValueIsRequired},
		{name: "latitude above range", locName: "x", lat: 90.5, lon: 0, expected: errs.ErrValueIsOutOfRange},
		{name: "latitude below range", locName: "x", lat: -90.5, lon: 0, expected: errs.ErrValueIsOutOfRange},
		{name: "longitude above range", locName: "x", lat: 0, lon: 180.1, expected: errs.ErrValueIsOutOfRange},
		{name: "longitude below range", locName: "x", lat: 0, lon: -200, expected: errs.ErrValueIsOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loc, err := kernel.NewLocation(tc.locName, tc.lat, tc.lon)

			require.ErrorIs(t, err, tc.expected)
			assert.Equal(t, kernel.Location{}, loc)
		})
	}
}

func TestLocation_ZeroValueIsInvalid(t *testing.T) {
	var loc kernel.Location
	require.ErrorIs(t, loc.Validate(), errs.ErrValueIsRequired)

	_, err := loc.IsEqual(loc)
	require.Error(t, err)
}

func TestLocation_IsEqual(t *testing.T) {
	a, _ := kernel.NewLocation("Porto", 41.15, -8.61)
	b, _ := kernel.NewLocation("Porto", 41.15, -8.61)
	c, _ := kernel.NewLocation("Faro", 37.01, -7.93)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestNewGasLevels(t *testing.T) {
	levels, err := kernel.NewGasLevels(10, 90, 50)
	require.NoError(t, err)
	require.NoError(t, levels.Validate())
	assert.Equal(t, 10, levels.Min())
	assert.Equal(t, 90, levels.Max())
	assert.Equal(t, 50, levels.Critical())
	assert.True(t, levels.IsCritical(50))
	assert.False(t, levels.IsCritical(51))

	_, err = kernel.NewGasLevels(10, 90, 95)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.NewGasLevels(-1, 90, 50)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero kernel.GasLevels
	require.Error(t, zero.Validate())
}

func TestNewCUI(t *testing.T) {
	cui, err := kernel.NewCUI("PT1234567890123456AB")
	require.NoError(t, err)
	require.NoError(t, cui.Validate())
	assert.Equal(t, "PT1234567890123456AB", cui.String())

	_, err = kernel.NewCUI("PT123")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero kernel.CUI
	require.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)

	assert.Panics(t, func() { kernel.MustCUI("bad") })
}
