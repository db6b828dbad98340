package dnorepo_test

import (
	"context"
	"testing"

	"agu/internal/adapters/out/postgres/dnorepo"
	"agu/internal/adapters/out/postgres/pgtest"
	"agu/internal/core/domain/model/company"
	"agu/internal/core/domain/model/kernel"
	"agu/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

type DNORepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *dnorepo.GormDNORepository
}

func (suite *DNORepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *DNORepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.repo = dnorepo.NewGormDNORepository(suite.db)
}

func (suite *DNORepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DNORepositoryIntegrationTestSuite) add(name, region string) *company.DNO {
	dno, err := company.NewDNO(kernel.NewUUID(), name, region)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), dno))
	return dno
}

func (suite *DNORepositoryIntegrationTestSuite) TestRetrievableByIDAndName() {
	ctx := context.Background()
	dno := suite.add("Portgás", "Norte")

	byID, err := suite.repo.Get(ctx, dno.ID())
	suite.Require().NoError(err)
	suite.Equal("Portgás", byID.Name())
	region, ok := byID.Region()
	suite.True(ok)
	suite.Equal("Norte", region)

	byName, err := suite.repo.GetByName(ctx, "PORTGÁS")
	suite.Require().NoError(err)
	suite.True(dno.ID().IsEqual(byName.ID()))
}

func (suite *DNORepositoryIntegrationTestSuite) TestExistsByNameIgnoresCaseAndSpaces() {
	ctx := context.Background()
	suite.add("Lisboagás", "")

	exists, err := suite.repo.ExistsByName(ctx, "  lisboagás ")
	suite.Require().NoError(err)
	suite.True(exists)

	missing, err := suite.repo.ExistsByName(ctx, "Setgás")
	suite.Require().NoError(err)
	suite.False(missing)
}

func (suite *DNORepositoryIntegrationTestSuite) TestGetAllOrdersByName() {
	suite.add("Tagusgás", "")
	suite.add("Beiragás", "Centro")

	dnos, err := suite.repo.GetAll(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(dnos, 2)
	suite.Equal("Beiragás", dnos[0].Name())
	suite.Equal("Tagusgás", dnos[1].Name())
}

func (suite *DNORepositoryIntegrationTestSuite) TestDelete() {
	ctx := context.Background()
	dno := suite.add("Duriensegás", "")

	deleted, err := suite.repo.Delete(ctx, dno.ID())
	suite.Require().NoError(err)
	suite.True(deleted)

	_, err = suite.repo.Get(ctx, dno.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	again, err := suite.repo.Delete(ctx, dno.ID())
	suite.Require().NoError(err)
	suite.False(again)
}

func (suite *DNORepositoryIntegrationTestSuite) TestGetByNameUnknown() {
	_, err := suite.repo.GetByName(context.Background(), "Sonorgás")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestDNORepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(DNORepositoryIntegrationTestSuite))
}
