package services_test

import (
	"testing"

	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validTankCreation(number int) services.TankCreation {
	return services.TankCreation{
		Number:           number,
		MinLevel:         10,
		MaxLevel:         90,
		CriticalLevel:    20,
		LoadVolume:       80,
		Capacity:         5000,
		CorrectionFactor: 1,
	}
}

func TestAddTank(t *testing.T) {
	cui := kernel.MustCUI(testCUI)

	t.Run("unknown AGU", func(t *testing.T) {
		// Arrange
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.agus.On("Get", mock.Anything, cui).Return(nil, errs.NewObjectNotFoundError("cui", testCUI)).Once()
		svc := services.NewTankService(newManager(t, uow), discardLogger())

		// Act
		res, err := svc.AddTank(t.Context(), testCUI, validTankCreation(1))

		// Assert
		require.NoError(t, err)
		failure, isLeft := res.Left()
		require.True(t, isLeft)
		assert.Equal(t, services.TankCreationAGUNotFound, failure)
	})

	t.Run("invalid levels are reported before the AGU is looked up", func(t *testing.T) {
		// Arrange
		uow := newMockUoW()
		svc := services.NewTankService(newManager(t, uow), discardLogger())
		creation := validTankCreation(1)
		creation.MinLevel = 95

		// Act
		res, err := svc.AddTank(t.Context(), "PT1601000000999999ZZ", creation)

		// Assert
		require.NoError(t, err)
		failure, _ := res.Left()
		assert.Equal(t, services.TankCreationInvalidLevels, failure)
		uow.agus.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("invalid capacity", func(t *testing.T) {
		// Arrange
		uow := newMockUoW()
		svc := services.NewTankService(newManager(t, uow), discardLogger())
		creation := validTankCreation(1)
		creation.Capacity = 0

		// Act
		res, err := svc.AddTank(t.Context(), testCUI, creation)

		// Assert
		require.NoError(t, err)
		failure, _ := res.Left()
		assert.Equal(t, services.TankCreationInvalidCapacity, failure)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("duplicate number", func(t *testing.T) {
		// Arrange
		existing, err := agu.NewTank(1, mustLevels(t, 10, 90, 20), 80, 5000, 1)
		require.NoError(t, err)
		a := newTestAGU(t)
		require.NoError(t, a.AddTank(existing))

		uow := newMockUoW()
		uow.expectRolledBack()
		uow.agus.On("Get", mock.Anything, cui).Return(a, nil).Once()
		svc := services.NewTankService(newManager(t, uow), discardLogger())

		// Act
		res, err := svc.AddTank(t.Context(), testCUI, validTankCreation(1))

		// Assert
		require.NoError(t, err)
		failure, _ := res.Left()
		assert.Equal(t, services.TankCreationAlreadyExists, failure)
		assert.Equal(t, services.CategoryConflict, failure.Category())
	})

	t.Run("success", func(t *testing.T) {
		// Arrange
		uow := newMockUoW()
		uow.expectCommitted()
		uow.agus.On("Get", mock.Anything, cui).Return(newTestAGU(t), nil).Once()
		uow.tanks.On("Add", mock.Anything, cui, mock.Anything).Return(nil).Once()
		svc := services.NewTankService(newManager(t, uow), discardLogger())

		// Act
		res, err := svc.AddTank(t.Context(), testCUI, validTankCreation(2))

		// Assert
		require.NoError(t, err)
		tank, isRight := res.Right()
		require.True(t, isRight)
		assert.Equal(t, 2, tank.Number())
		uow.AssertExpectations(t)
		uow.tanks.AssertExpectations(t)
	})
}

func TestUpdateTank_UnknownNumber(t *testing.T) {
	// Arrange
	uow := newMockUoW()
	uow.expectRolledBack()
	uow.agus.On("Get", mock.Anything, kernel.MustCUI(testCUI)).Return(newTestAGU(t), nil).Once()
	svc := services.NewTankService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.UpdateTank(t.Context(), testCUI, 7, services.TankUpdate{
		MinLevel: 10, MaxLevel: 90, CriticalLevel: 20, LoadVolume: 80, Capacity: 5000, CorrectionFactor: 1,
	})

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.TankUpdateNotFound, failure)
	uow.tanks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTank_InvalidLoadVolume(t *testing.T) {
	// Arrange
	uow := newMockUoW()
	svc := services.NewTankService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.UpdateTank(t.Context(), testCUI, 1, services.TankUpdate{
		MinLevel: 10, MaxLevel: 90, CriticalLevel: 20, LoadVolume: 120, Capacity: 5000, CorrectionFactor: 1,
	})

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.TankUpdateInvalidLoadVolume, failure)
	uow.agus.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestDeleteTank(t *testing.T) {
	cui := kernel.MustCUI(testCUI)

	t.Run("malformed CUI is an unknown AGU", func(t *testing.T) {
		uow := newMockUoW()
		svc := services.NewTankService(newManager(t, uow), discardLogger())

		res, err := svc.DeleteTank(t.Context(), "not-a-cui", 1)

		require.NoError(t, err)
		failure, _ := res.Left()
		assert.Equal(t, services.TankDeletionAGUNotFound, failure)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("unknown tank", func(t *testing.T) {
		// Arrange
		uow := newMockUoW()
		uow.expectRolledBack()
		uow.agus.On("Exists", mock.Anything, cui).Return(true, nil).Once()
		uow.tanks.On("Delete", mock.Anything, cui, 3).Return(false, nil).Once()
		svc := services.NewTankService(newManager(t, uow), discardLogger())

		// Act
		res, err := svc.DeleteTank(t.Context(), testCUI, 3)

		// Assert
		require.NoError(t, err)
		failure, _ := res.Left()
		assert.Equal(t, services.TankDeletionNotFound, failure)
	})

	t.Run("deleted", func(t *testing.T) {
		// Arrange
		uow := newMockUoW()
		uow.expectCommitted()
		uow.agus.On("Exists", mock.Anything, cui).Return(true, nil).Once()
		uow.tanks.On("Delete", mock.Anything, cui, 1).Return(true, nil).Once()
		svc := services.NewTankService(newManager(t, uow), discardLogger())

		// Act
		res, err := svc.DeleteTank(t.Context(), testCUI, 1)

		// Assert
		require.NoError(t, err)
		assert.True(t, res.IsRight())
		uow.AssertExpectations(t)
	})
}
