package services_test

import (
	"testing"

	"agu/internal/core/application/services"
	"agu/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDNO_InvalidName(t *testing.T) {
	// Arrange
	uow := newMockUoW()
	svc := services.NewDNOService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.CreateDNO(t.Context(), "   ", "Norte")

	// Assert
	require.NoError(t, err)
	failure, isLeft := res.Left()
	require.True(t, isLeft)
	assert.Equal(t, services.DNOCreationInvalidName, failure)
	assert.Equal(t, services.CategoryInvalid, failure.Category())
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateDNO_AlreadyExists(t *testing.T) {
	// Arrange
	uow := newMockUoW()
	uow.expectRolledBack()
	uow.dnos.On("ExistsByName", mock.Anything, "Sonorgás").Return(true, nil).Once()
	svc := services.NewDNOService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.CreateDNO(t.Context(), "  Sonorgás ", "Norte")

	// Assert
	require.NoError(t, err)
	failure, isLeft := res.Left()
	require.True(t, isLeft)
	assert.Equal(t, services.DNOCreationAlreadyExists, failure)
	uow.AssertExpectations(t)
	uow.dnos.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateDNO_Success(t *testing.T) {
	// Arrange
	uow := newMockUoW()
	uow.expectCommitted()
	uow.dnos.On("ExistsByName", mock.Anything, "Sonorgás").Return(false, nil).Once()
	uow.dnos.On("Add", mock.Anything, mock.Anything).Return(nil).Once()
	svc := services.NewDNOService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.CreateDNO(t.Context(), "Sonorgás", "Norte")

	// Assert
	require.NoError(t, err)
	dno, isRight := res.Right()
	require.True(t, isRight)
	assert.Equal(t, "Sonorgás", dno.Name())
	region, ok := dno.Region()
	assert.True(t, ok)
	assert.Equal(t, "Norte", region)
	uow.AssertExpectations(t)
	uow.dnos.AssertExpectations(t)
}

func TestDeleteDNO_InUse(t *testing.T) {
	// Arrange
	id := kernel.NewUUID()
	uow := newMockUoW()
	uow.expectRolledBack()
	uow.agus.On("ExistsByDNO", mock.Anything, id).Return(true, nil).Once()
	svc := services.NewDNOService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.DeleteDNO(t.Context(), id)

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.DNODeletionInUse, failure)
	uow.dnos.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteDNO_NotFound(t *testing.T) {
	// Arrange
	id := kernel.NewUUID()
	uow := newMockUoW()
	uow.expectRolledBack()
	uow.agus.On("ExistsByDNO", mock.Anything, id).Return(false, nil).Once()
	uow.dnos.On("Delete", mock.Anything, id).Return(false, nil).Once()
	svc := services.NewDNOService(newManager(t, uow), discardLogger())

	// Act
	res, err := svc.DeleteDNO(t.Context(), id)

	// Assert
	require.NoError(t, err)
	failure, _ := res.Left()
	assert.Equal(t, services.DNODeletionNotFound, failure)
	assert.Equal(t, "DNONotFound", failure.String())
}
