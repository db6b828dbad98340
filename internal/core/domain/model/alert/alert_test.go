package alert_test

import (
	"strings"
	"testing"
	"time"

	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cui = kernel.MustCUI("PT1601000000123456AB")

func TestNewAlert(t *testing.T) {
	// Arrange
	now := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

	// Act
	a, err := alert.NewAlert(kernel.NewUUID(), cui, now, "  Critical level ", "tank 1 under 15%")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Critical level", a.Title())
	assert.Equal(t, "tank 1 under 15%", a.Message())
	assert.Equal(t, now, a.Timestamp())
	assert.False(t, a.IsResolved())
}

func TestNewAlert_InvalidTitle(t *testing.T) {
	for _, title := range []string{"", "   ", strings.Repeat("a", alert.MaxTitleLength+1)} {
		_, err := alert.NewAlert(kernel.NewUUID(), cui, time.Now(), title, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	}
}

func TestAlert_ResolveIsMonotonic(t *testing.T) {
	a, err := alert.NewAlert(kernel.NewUUID(), cui, time.Now(), "Low", "")
	require.NoError(t, err)

	assert.True(t, a.Resolve())
	assert.True(t, a.IsResolved())
	assert.False(t, a.Resolve())
	assert.True(t, a.IsResolved())
}

func TestRestoreAlert(t *testing.T) {
	a, err := alert.RestoreAlert(kernel.NewUUID(), cui, time.Now(), "Low", "", true)
	require.NoError(t, err)
	assert.True(t, a.IsResolved())

	_, err = alert.RestoreAlert(kernel.NewUUID(), kernel.CUI{}, time.Time{}, "Low", "", false)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
