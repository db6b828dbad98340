package contactrepo_test

import (
	"context"
	"testing"

	"agu/internal/adapters/out/postgres/contactrepo"
	"agu/internal/adapters/out/postgres/pgtest"
	"agu/internal/core/domain/model/agu"
	"agu/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

var cui = kernel.MustCUI("PT1601000000123456AB")

type ContactRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *contactrepo.GormContactRepository
}

func (suite *ContactRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *ContactRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(suite.db))
	suite.Require().NoError(pgtest.SeedAGU(context.Background(), suite.db, cui))
	suite.repo = contactrepo.NewGormContactRepository(suite.db)
}

func (suite *ContactRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ContactRepositoryIntegrationTestSuite) add(name, phone string, t agu.ContactType) *agu.Contact {
	c, err := agu.NewContact(kernel.NewUUID(), name, phone, t)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), cui, c))
	return c
}

func (suite *ContactRepositoryIntegrationTestSuite) TestExistsMatchesPhoneAndType() {
	ctx := context.Background()
	suite.add("Ana", "912345678", agu.ContactTypeEmergency)

	same, err := suite.repo.Exists(ctx, cui, "912345678", agu.ContactTypeEmergency)
	suite.Require().NoError(err)
	suite.True(same)

	otherType, err := suite.repo.Exists(ctx, cui, "912345678", agu.ContactTypeLogistic)
	suite.Require().NoError(err)
	suite.False(otherType)

	otherAGU, err := suite.repo.Exists(ctx, kernel.MustCUI("PT1601000000000002AA"), "912345678", agu.ContactTypeEmergency)
	suite.Require().NoError(err)
	suite.False(otherAGU)
}

func (suite *ContactRepositoryIntegrationTestSuite) TestGetByAGUOrdersByName() {
	suite.add("Rui", "934567890", agu.ContactTypeLogistic)
	suite.add("Ana", "912345678", agu.ContactTypeEmergency)

	contacts, err := suite.repo.GetByAGU(context.Background(), cui)

	suite.Require().NoError(err)
	suite.Require().Len(contacts, 2)
	suite.Equal("Ana", contacts[0].Name())
	suite.Equal(agu.ContactTypeLogistic, contacts[1].Type())
}

func (suite *ContactRepositoryIntegrationTestSuite) TestDeleteIsScopedToAGU() {
	ctx := context.Background()
	c := suite.add("Ana", "912345678", agu.ContactTypeEmergency)

	wrongAGU, err := suite.repo.Delete(ctx, kernel.MustCUI("PT1601000000000002AA"), c.ID())
	suite.Require().NoError(err)
	suite.False(wrongAGU)

	deleted, err := suite.repo.Delete(ctx, cui, c.ID())
	suite.Require().NoError(err)
	suite.True(deleted)
}

func TestContactRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(ContactRepositoryIntegrationTestSuite))
}
