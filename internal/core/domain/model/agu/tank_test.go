package agu_test

import (
	"testing"

	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTank(t *testing.T) {
	tests := []struct {
		name       string
		number     int
		loadVolume int
		capacity   int
		correction float64
		wantErr    error
	}{
		{"valid", 1, 30, 5000, 1.0, nil},
		{"zero number", 0, 30, 5000, 1.0, errs.ErrValueIsOutOfRange},
		{"load volume above 100", 1, 101, 5000, 1.0, errs.ErrValueIsOutOfRange},
		{"zero capacity", 1, 30, 0, 1.0, errs.ErrValueIsOutOfRange},
		{"negative correction", 1, 30, 5000, -0.5, errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank, err := agu.NewTank(tt.number, newLevels(t, 10, 90, 50), tt.loadVolume, tt.capacity, tt.correction)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, tank)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.number, tank.Number())
			assert.Equal(t, tt.capacity, tank.Capacity())
		})
	}
}

func TestNewTank_RequiresConstructedLevels(t *testing.T) {
	_, err := agu.NewTank(1, kernel.GasLevels{}, 30, 5000, 1.0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestTank_UpdateIsAtomic(t *testing.T) {
	tank := newTank(t, 1)

	err := tank.Update(newLevels(t, 5, 95, 15), 50, -1, 1.1)

	require.Error(t, err)
	assert.Equal(t, 50, tank.Levels().Critical())
	assert.Equal(t, 5000, tank.Capacity())

	require.NoError(t, tank.Update(newLevels(t, 5, 95, 15), 50, 8000, 1.1))
	assert.Equal(t, 15, tank.Levels().Critical())
	assert.Equal(t, 8000, tank.Capacity())
	assert.InDelta(t, 1.1, tank.CorrectionFactor(), 1e-9)
}

func TestContactType(t *testing.T) {
	ct, err := agu.ParseContactType("logistic")
	require.NoError(t, err)
	assert.Equal(t, agu.ContactTypeLogistic, ct)
	assert.Equal(t, "LOGISTIC", ct.String())

	_, err = agu.ParseContactType("SALES")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, agu.ContactTypeUnknown.Validate())
}

func TestNewContact_RejectsBadPhone(t *testing.T) {
	for _, phone := range []string{"", "12345678", "1234567890", "91234567a"} {
		_, err := agu.NewContact(kernel.NewUUID(), "Ana", phone, agu.ContactTypeEmergency)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid, phone)
	}
}
