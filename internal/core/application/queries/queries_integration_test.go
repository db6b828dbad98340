package queries_test

import (
	"context"
	"testing"
	"time"

	"agu/internal/adapters/out/postgres/agurepo"
	"agu/internal/adapters/out/postgres/dnorepo"
	"agu/internal/adapters/out/postgres/loadrepo"
	"agu/internal/adapters/out/postgres/measurerepo"
	"agu/internal/adapters/out/postgres/pgtest"
	"agu/internal/adapters/out/postgres/providerrepo"
	"agu/internal/core/application/queries"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"
	"agu/internal/core/domain/model/measure"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type discardTracker struct{}

func (discardTracker) TrackAggregate(string, any) {}

type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	dno       *company.DNO
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))

	dno, err := company.NewDNO(kernel.NewUUID(), "Galp Gás Natural", "Norte")
	suite.Require().NoError(err)
	suite.Require().NoError(dnorepo.NewGormDNORepository(suite.db).Add(context.Background(), dno))
	suite.dno = dno
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) addAGU(cui, name string, favourite bool) *agu.AGU {
	levels, err := kernel.NewGasLevels(10, 90, 25)
	suite.Require().NoError(err)
	location, err := kernel.NewLocation(name, 41.15, -8.61)
	suite.Require().NoError(err)
	a, err := agu.NewAGU(kernel.MustCUI(cui), "PT01-AGU-0000012", name, levels, 80, 1, location, suite.dno.ID())
	suite.Require().NoError(err)
	a.SetFavourite(favourite)
	suite.Require().NoError(agurepo.NewGormAGURepository(suite.db, discardTracker{}).Add(context.Background(), a))
	return a
}

func (suite *QueriesIntegrationTestSuite) addGas(cui kernel.CUI, measures ...measure.GasMeasure) {
	ctx := context.Background()
	provider, err := measure.NewProvider(kernel.NewUUID(), measure.Gas, cui, "https://telemetry.example.com/agu", time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(providerrepo.NewGormProviderRepository(suite.db).Add(ctx, provider))
	suite.Require().NoError(measurerepo.NewGormGasRepository(suite.db).Add(ctx, provider.ID(), measures))
}

func (suite *QueriesIntegrationTestSuite) TestBasicInfo_EmptyDatabase_ReturnsEmptySlice() {
	handler := queries.NewGetAGUsBasicInfoQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.NewGetAGUsBasicInfoQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueriesIntegrationTestSuite) TestBasicInfo_FavouritesFirstWithLatestLevel() {
	porto := suite.addAGU("PT1601000000000001AA", "Porto", false)
	suite.addAGU("PT1601000000000002AA", "Viseu", true)
	suite.addAGU("PT1601000000000003AA", "Aveiro", false)
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	suite.addGas(porto.CUI(),
		measure.NewGasMeasure(at, at, 1, 60),
		measure.NewGasMeasure(at.Add(time.Hour), at.Add(time.Hour), 1, 30),
		measure.NewGasMeasure(at, at, 2, 10),
	)
	handler := queries.NewGetAGUsBasicInfoQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.NewGetAGUsBasicInfoQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Viseu", result[0].Name)
	suite.True(result[0].IsFavourite)
	suite.False(result[0].HasLevel)
	suite.Equal("Aveiro", result[1].Name)
	suite.Equal("Porto", result[2].Name)
	suite.Equal("Galp Gás Natural", result[2].DNOName)
	suite.True(result[2].HasLevel)
	suite.InDelta(20.0, result[2].Level, 0.001)
	suite.True(result[2].IsCritical())
	suite.Equal(porto.CUI(), result[2].CUI)
	suite.InDelta(41.15, result[2].Location.Latitude(), 0.0001)
}

func (suite *QueriesIntegrationTestSuite) TestBasicInfo_InvalidQuery_ReturnsError() {
	handler := queries.NewGetAGUsBasicInfoQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.GetAGUsBasicInfoQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetAGUsBasicInfoQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *QueriesIntegrationTestSuite) TestPendingLoads_SkipsDeliveredAndPastLoads() {
	ctx := context.Background()
	a := suite.addAGU("PT1601000000000001AA", "Porto", false)
	repo := loadrepo.NewGormLoadRepository(suite.db)
	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	schedule := func(d time.Time, tod load.TimeOfDay) *load.ScheduledLoad {
		l, err := load.NewScheduledLoad(kernel.NewUUID(), a.CUI(), d, tod, 18000, false)
		suite.Require().NoError(err)
		suite.Require().NoError(repo.Add(ctx, l))
		return l
	}
	schedule(day.AddDate(0, 0, -1), load.Morning)
	night := schedule(day, load.Night)
	morning := schedule(day, load.Morning)
	delivered := schedule(day, load.Afternoon)
	suite.Require().NoError(delivered.Deliver(kernel.NewUUID(), day.Add(15*time.Hour)))
	_, err := repo.Update(ctx, delivered)
	suite.Require().NoError(err)
	query, err := queries.NewGetPendingLoadsQuery(day.Add(9 * time.Hour))
	suite.Require().NoError(err)

	result, err := queries.NewGetPendingLoadsQueryHandler(suite.db).Handle(ctx, query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(morning.ID().IsEqual(result[0].ID))
	suite.Equal(load.Morning, result[0].TimeOfDay)
	suite.Equal("Porto", result[0].AGUName)
	suite.True(day.Equal(result[0].Date))
	suite.True(night.ID().IsEqual(result[1].ID))
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
