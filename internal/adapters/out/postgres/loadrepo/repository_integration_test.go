package loadrepo_test

import (
	"context"
	"testing"
	"time"

	"agu/internal/adapters/out/postgres/loadrepo"
	"agu/internal/adapters/out/postgres/pgtest"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/core/domain/model/load"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var (
	cui  = kernel.MustCUI("PT1601000000123456AB")
	date = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
)

type LoadRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *loadrepo.GormLoadRepository
}

func (suite *LoadRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *LoadRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repo = loadrepo.NewGormLoadRepository(suite.db)
}

func (suite *LoadRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *LoadRepositoryIntegrationTestSuite) add(day time.Time, tod load.TimeOfDay) *load.ScheduledLoad {
	l, err := load.NewScheduledLoad(kernel.NewUUID(), cui, day, tod, 18000, false)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), l))
	return l
}

func (suite *LoadRepositoryIntegrationTestSuite) TestSlotIsUnique() {
	ctx := context.Background()
	suite.add(date, load.Morning)

	taken, err := suite.repo.ExistsForSlot(ctx, load.Slot{AGUCui: cui, Date: date.Add(15 * time.Hour), TimeOfDay: load.Morning})
	suite.Require().NoError(err)
	suite.True(taken)

	free, err := suite.repo.ExistsForSlot(ctx, load.Slot{AGUCui: cui, Date: date, TimeOfDay: load.Night})
	suite.Require().NoError(err)
	suite.False(free)

	duplicate, err := load.NewScheduledLoad(kernel.NewUUID(), cui, date, load.Morning, 9000, true)
	suite.Require().NoError(err)
	suite.Require().Error(suite.repo.Add(ctx, duplicate))
}

func (suite *LoadRepositoryIntegrationTestSuite) TestGetBetweenOrdersByDateAndTimeOfDay() {
	night := suite.add(date, load.Night)
	morning := suite.add(date, load.Morning)
	next := suite.add(date.AddDate(0, 0, 1), load.Afternoon)
	suite.add(date.AddDate(0, 0, 5), load.Morning)

	loads, err := suite.repo.GetBetween(context.Background(), date, date.AddDate(0, 0, 1))

	suite.Require().NoError(err)
	suite.Require().Len(loads, 3)
	suite.True(morning.ID().IsEqual(loads[0].ID()))
	suite.True(night.ID().IsEqual(loads[1].ID()))
	suite.True(next.ID().IsEqual(loads[2].ID()))
}

func (suite *LoadRepositoryIntegrationTestSuite) TestUpdateStoresDelivery() {
	ctx := context.Background()
	l := suite.add(date, load.Afternoon)
	companyID := kernel.NewUUID()
	unload := time.Date(2025, 3, 12, 16, 20, 0, 0, time.UTC)
	l.Confirm()
	suite.Require().NoError(l.Deliver(companyID, unload))

	updated, err := suite.repo.Update(ctx, l)
	suite.Require().NoError(err)
	suite.True(updated)

	stored, err := suite.repo.Get(ctx, l.ID())
	suite.Require().NoError(err)
	suite.True(stored.IsConfirmed())
	delivery, ok := stored.Delivered()
	suite.Require().True(ok)
	suite.True(companyID.IsEqual(delivery.TransportCompanyID))
	suite.True(unload.Equal(delivery.UnloadTimestamp))
}

func (suite *LoadRepositoryIntegrationTestSuite) TestDeleteUnknown() {
	deleted, err := suite.repo.Delete(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.False(deleted)
}

func TestLoadRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(LoadRepositoryIntegrationTestSuite))
}
