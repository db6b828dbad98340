package company_test

import (
	"strings"
	"testing"

	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDNO(t *testing.T) {
	t.Run("with region", func(t *testing.T) {
		dno, err := company.NewDNO(kernel.NewUUID(), "  E-Redes ", " Norte ")

		require.NoError(t, err)
		assert.Equal(t, "E-Redes", dno.Name())
		region, ok := dno.Region()
		assert.True(t, ok)
		assert.Equal(t, "Norte", region)
	})

	t.Run("without region", func(t *testing.T) {
		dno, err := company.NewDNO(kernel.NewUUID(), "E-Redes", "")

		require.NoError(t, err)
		_, ok := dno.Region()
		assert.False(t, ok)
	})

	t.Run("invalid name and id", func(t *testing.T) {
		dno, err := company.NewDNO(kernel.UUID{}, "   ", "")

		assert.Nil(t, dno)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := company.NewDNO(kernel.NewUUID(), strings.Repeat("x", 256), "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDNO_ZeroValue(t *testing.T) {
	var dno company.DNO
	require.ErrorIs(t, dno.Validate(), company.ErrDNOIsNotConstructed)
}

func TestNewTransportCompany(t *testing.T) {
	id := kernel.NewUUID()

	tc, err := company.NewTransportCompany(id, "Galp Logística")
	require.NoError(t, err)
	assert.Equal(t, "Galp Logística", tc.Name())
	require.NoError(t, tc.Validate())

	same, err := company.NewTransportCompany(id, "Other")
	require.NoError(t, err)
	assert.True(t, tc.IsEqual(same))
	assert.False(t, tc.IsEqual(nil))

	_, err = company.NewTransportCompany(kernel.NewUUID(), "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero company.TransportCompany
	require.ErrorIs(t, zero.Validate(), company.ErrTransportCompanyIsNotConstructed)
}
