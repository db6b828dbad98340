package queries_test

import (
	"testing"
	"time"

	"agu/internal/core/application/queries"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPendingLoadsQuery(t *testing.T) {
	t.Run("truncates to the day", func(t *testing.T) {
		// Arrange
		from := time.Date(2025, 3, 12, 17, 45, 0, 0, time.UTC)

		// Act
		query, err := queries.NewGetPendingLoadsQuery(from)

		// Assert
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), query.From())
	})

	t.Run("zero day is rejected", func(t *testing.T) {
		_, err := queries.NewGetPendingLoadsQuery(time.Time{})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value query is not constructed", func(t *testing.T) {
		assert.ErrorIs(t, queries.GetPendingLoadsQuery{}.Validate(), queries.ErrGetPendingLoadsQueryIsNotConstructed)
	})
}
