package catalog_test

import (
	"context"
	"os"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Maffezzoli/ProjetoVidracaria/internal/catalog"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/db"
	"github.com/Maffezzoli/ProjetoVidracaria/internal/db/dbtest"
)

var testDB *db.Postgres

func TestMain(m *testing.M) {
	os.Exit(dbtest.Run(m, &testDB))
}

func newRepository(t *testing.T) catalog.Repository {
	t.Helper()
	dbtest.Require(t, testDB)
	t.Cleanup(func() {
		dbtest.Truncate(t, testDB, "products")
	})
	return catalog.NewRepository(testDB.SQLX)
}

func TestProductRepository_CRUD(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	p := &catalog.Product{
		Name:          "Vidro temperado 8mm",
		PurchasePrice: decimal.RequireFromString("120.50"),
		SalePrice:     decimal.RequireFromString("210.00"),
		Unit:          "m2",
		Category:      "vidros",
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEqual(t, uuid.Nil, p.ID)

	found, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, p.Name, found.Name)
	require.True(t, p.SalePrice.Equal(found.SalePrice))
	require.Equal(t, "74.27", found.MarginPercent().StringFixed(2))

	found.SalePrice = decimal.RequireFromString("230")
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, decimal.RequireFromString("230").Equal(updated.SalePrice))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
	require.ErrorIs(t, repo.Delete(ctx, p.ID), catalog.ErrProductNotFound)
}

func TestProductRepository_UniqueNameAndOrdering(t *testing.T) {
	repo := newRepository(t)
	ctx := context.Background()

	for _, name := range []string{"Puxador", "Espelho", "Box"} {
		require.NoError(t, repo.Create(ctx, &catalog.Product{Name: name, Unit: catalog.DefaultUnit}))
	}

	err := repo.Create(ctx, &catalog.Product{Name: "Box", Unit: catalog.DefaultUnit})
	require.ErrorIs(t, err, catalog.ErrProductNameTaken)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	require.Equal(t, []string{"Box", "Espelho", "Puxador"}, []string{products[0].Name, products[1].Name, products[2].Name})

	err = repo.Update(ctx, &catalog.Product{ID: uuid.Must(uuid.NewV4()), Name: "Inexistente"})
	require.ErrorIs(t, err, catalog.ErrProductNotFound)
}
