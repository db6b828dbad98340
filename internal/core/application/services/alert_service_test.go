package services_test

import (
	"testing"

	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/alert"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateAlert_StampedWithClock(t *testing.T) {
	// Arrange
	cui := kernel.MustCUI(testCUI)
	uow := newMockUoW()
	uow.expectCommitted()
	uow.agus.On("Exists", mock.Anything, cui).Return(true, nil).Once()
	uow.alerts.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	svc := services.NewAlertService(newManager(t, uow), fixedClock, discardLogger())

	// Act
	res, err := svc.CreateAlert(t.Context(), testCUI, "  Low level ", "Tank 1 at 12%")

	// Assert
	require.NoError(t, err)
	a, isRight := res.Right()
	require.True(t, isRight)
	assert.Equal(t, fixedNow, a.Timestamp())
	assert.Equal(t, "Low level", a.Title())
	assert.False(t, a.IsResolved())
}

func TestCreateAlert_EmptyTitle(t *testing.T) {
	// Arrange
	uow := newMockUoW()
	uow.expectRolledBack()
	uow.agus.On("Exists", mock.Anything, kernel.MustCUI(testCUI)).Return(true, nil).Once()
	svc := services.NewAlertService(newManager(t, uow), fixedClock, discardLogger())

	// Act
	res, err := svc.CreateAlert(t.Context(), testCUI, " ", "message")

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.AlertCreationInvalidTitle, failure)
}

func TestUpdateAlertStatus(t *testing.T) {
	t.Run("resolving twice updates once", func(t *testing.T) {
		// Arrange
		a, err := alert.NewAlert(kernel.NewUUID(), kernel.MustCUI(testCUI), fixedNow, "Low level", "")
		require.NoError(t, err)

		uow := newMockUoW()
		uow.On("Begin", mock.Anything).Return(nil).Twice()
		uow.On("Commit", mock.Anything).Return(nil).Twice()
		uow.On("Rollback", mock.Anything).Return(nil).Twice()
		uow.alerts.On("Get", mock.Anything, a.ID()).Return(a, nil).Twice()
		uow.alerts.On("Update", mock.Anything, a).Return(nil).Once()
		uow.alerts.On("GetUnresolved", mock.Anything).Return([]*alert.Alert{}, nil).Twice()
		svc := services.NewAlertService(newManager(t, uow), fixedClock, discardLogger())

		// Act
		first, err := svc.UpdateAlertStatus(t.Context(), a.ID())
		require.NoError(t, err)
		second, err := svc.UpdateAlertStatus(t.Context(), a.ID())
		require.NoError(t, err)

		// Assert
		assert.True(t, first.IsRight())
		assert.True(t, second.IsRight())
		assert.True(t, a.IsResolved())
		uow.alerts.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("unknown alert", func(t *testing.T) {
		// Arrange
		id := kernel.NewUUID()
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.alerts.On("Get", mock.Anything, id).Return(nil, errs.NewObjectNotFoundError("alert", id)).Once()
		svc := services.NewAlertService(newManager(t, uow), fixedClock, discardLogger())

		// Act
		res, err := svc.UpdateAlertStatus(t.Context(), id)

		// Assert
		require.NoError(t, err)
		failure, _ := res.Left()
		assert.Equal(t, services.AlertLookupNotFound, failure)
	})
}
