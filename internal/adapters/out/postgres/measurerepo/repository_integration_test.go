package measurerepo_test

import (
	"context"
	"testing"
	"time"

	"agu/internal/adapters/out/postgres/measurerepo"
	"agu/internal/adapters/out/postgres/pgtest"
	"agu/internal/adapters/out/postgres/providerrepo"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/measure"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var (
	cui = kernel.MustCUI("PT1601000000123456AB")
	at  = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
)

type MeasureRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *MeasureRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *MeasureRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
}

func (suite *MeasureRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MeasureRepositoryIntegrationTestSuite) addProvider(t measure.ProviderType) kernel.UUID {
	provider, err := measure.NewProvider(kernel.NewUUID(), t, cui, "https://telemetry.example.com/agu", time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(providerrepo.NewGormProviderRepository(suite.db).Add(context.Background(), provider))
	return provider.ID()
}

func (suite *MeasureRepositoryIntegrationTestSuite) TestGas_GetLatestKeepsNewestPerTank() {
	ctx := context.Background()
	repo := measurerepo.NewGormGasRepository(suite.db)
	providerID := suite.addProvider(measure.Gas)
	suite.Require().NoError(repo.Add(ctx, providerID, []measure.GasMeasure{
		measure.NewGasMeasure(at, at, 1, 70),
		measure.NewGasMeasure(at.Add(2*time.Hour), at.Add(2*time.Hour), 1, 64),
		measure.NewGasMeasure(at.Add(time.Hour), at.Add(time.Hour), 2, 40),
	}))

	latest, err := repo.GetLatest(ctx, cui)

	suite.Require().NoError(err)
	suite.Require().Len(latest, 2)
	suite.Equal(1, latest[0].TankNumber())
	suite.Equal(64, latest[0].Level())
	suite.Equal(2, latest[1].TankNumber())
	suite.Equal(40, latest[1].Level())
}

func (suite *MeasureRepositoryIntegrationTestSuite) TestGas_GetByAGUFiltersByTimestamp() {
	ctx := context.Background()
	repo := measurerepo.NewGormGasRepository(suite.db)
	providerID := suite.addProvider(measure.Gas)
	suite.Require().NoError(repo.Add(ctx, providerID, []measure.GasMeasure{
		measure.NewGasMeasure(at.AddDate(0, 0, -3), at.AddDate(0, 0, -3), 1, 80),
		measure.NewGasMeasure(at, at, 1, 70),
	}))

	measures, err := repo.GetByAGU(ctx, cui, at.AddDate(0, 0, -1))

	suite.Require().NoError(err)
	suite.Require().Len(measures, 1)
	suite.Equal(70, measures[0].Level())
	suite.True(at.Equal(measures[0].Timestamp()))
}

func (suite *MeasureRepositoryIntegrationTestSuite) TestTemperature_GetByAGUFiltersByForecastDay() {
	ctx := context.Background()
	repo := measurerepo.NewGormTemperatureRepository(suite.db)
	providerID := suite.addProvider(measure.Temperature)
	suite.Require().NoError(repo.Add(ctx, providerID, []measure.TemperatureMeasure{
		measure.NewTemperatureMeasure(at, at.AddDate(0, 0, -2), 3, 12),
		measure.NewTemperatureMeasure(at, at.AddDate(0, 0, 1), 5, 15),
		measure.NewTemperatureMeasure(at, at.AddDate(0, 0, 2), 6, 17),
	}))

	measures, err := repo.GetByAGU(ctx, cui, at)

	suite.Require().NoError(err)
	suite.Require().Len(measures, 2)
	suite.Equal(5, measures[0].Min())
	suite.Equal(17, measures[1].Max())
}

func (suite *MeasureRepositoryIntegrationTestSuite) TestAdd_UnknownProvider() {
	err := measurerepo.NewGormGasRepository(suite.db).Add(context.Background(), kernel.NewUUID(),
		[]measure.GasMeasure{measure.NewGasMeasure(at, at, 1, 50)})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestMeasureRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(MeasureRepositoryIntegrationTestSuite))
}
