package clientrepo_test

import (
	"context"
	"testing"

	"dispatch/internal/adapters/out/postgres/clientrepo"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
)

type ClientRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *clientrepo.GormClientRepository
}

func (suite *ClientRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = clientrepo.NewGormClientRepository(pg.DB)
}

func (suite *ClientRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *ClientRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *ClientRepositoryIntegrationTestSuite) TestFixedPrice() {
	price := 8.5
	zero := 0.0
	withPrice := clientrepo.ClientDTO{ID: kernel.NewUUID().Bytes(), Name: "Farmácia", FixedDeliveryPrice: &price}
	withZero := clientrepo.ClientDTO{ID: kernel.NewUUID().Bytes(), Name: "Padaria", FixedDeliveryPrice: &zero}
	without := clientrepo.ClientDTO{ID: kernel.NewUUID().Bytes(), Name: "Loja"}
	suite.Require().NoError(suite.pg.DB.Create([]*clientrepo.ClientDTO{&withPrice, &withZero, &without}).Error)

	cases := []struct {
		name     string
		clientID kernel.UUID
		expected *float64
	}{
		{name: "standing price", clientID: mustUUID(suite, withPrice), expected: &price},
		{name: "zero price is ignored", clientID: mustUUID(suite, withZero)},
		{name: "no price", clientID: mustUUID(suite, without)},
		{name: "unknown client", clientID: kernel.NewUUID()},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			got, err := suite.repository.FixedPrice(context.Background(), tc.clientID)
			suite.Require().NoError(err)
			if tc.expected == nil {
				suite.Nil(got)
				return
			}
			suite.Require().NotNil(got)
			suite.InDelta(*tc.expected, *got, 1e-9)
		})
	}
}

func mustUUID(suite *ClientRepositoryIntegrationTestSuite, dto clientrepo.ClientDTO) kernel.UUID {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	suite.Require().NoError(err)
	return id
}

func TestClientRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(ClientRepositoryIntegrationTestSuite))
}
