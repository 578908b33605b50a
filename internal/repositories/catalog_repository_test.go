package repositories

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/suite"

	"plantillas-system/seeders"
)

type CatalogRepositorySuite struct {
	suite.Suite
	repo CatalogRepositoryInterface
}

func (s *CatalogRepositorySuite) SetupSuite() {
	if testPool == nil {
		s.T().Skip("TEST_DATABASE_URL no configurada")
	}
	s.repo = NewCatalogRepository(testPool)
}

func (s *CatalogRepositorySuite) SetupTest() {
	ctx := context.Background()
	_, err := testPool.Exec(ctx, `TRUNCATE TABLE operarios, proveedores RESTART IDENTITY`)
	s.Require().NoError(err)
	s.Require().NoError(seeders.SeedCatalogs(ctx, testPool))
}

func (s *CatalogRepositorySuite) TestOperariosAreActiveAndSorted() {
	ctx := context.Background()
	_, err := testPool.Exec(ctx, `UPDATE operarios SET activo = FALSE WHERE nombre = 'Paola Quintero'`)
	s.Require().NoError(err)

	rows, err := s.repo.ListOperarios(ctx)
	s.Require().NoError(err)

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Nombre)
	}
	s.NotContains(names, "Paola Quintero")
	s.True(sort.StringsAreSorted(names))
	s.NotEmpty(names)
}

func (s *CatalogRepositorySuite) TestSeedingTwiceKeepsOneRowPerName() {
	ctx := context.Background()
	s.Require().NoError(seeders.SeedCatalogs(ctx, testPool))

	rows, err := s.repo.ListProveedores(ctx)
	s.Require().NoError(err)
	s.Len(rows, 3)
}

func TestCatalogRepositorySuite(t *testing.T) {
	suite.Run(t, new(CatalogRepositorySuite))
}
