//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogtypes "github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/application/types"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/domain"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/domains/catalog/ports"
	"github.com/civicGenAi/tanzania-fish-hub-sub001/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("fishhub_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.Run(db))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newProduct(sellerID, name string) *domain.Product {
	return &domain.Product{
		ID:       uuid.New().String(),
		SellerID: sellerID,
		Name:     name,
		Price:    decimal.RequireFromString("12.50"),
		Unit:     "kg",
		Stock:    40,
		Images:   []string{"https://img.example/tilapia.png"},
		Status:   domain.StatusActive,
	}
}

func TestPostgresRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newProduct("seller-1", "Fresh Tilapia"))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Len(t, created.Images, 1)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("12.50")))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_ListFilters(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, newProduct("seller-1", "Fresh Tilapia"))
	require.NoError(t, err)
	inactive := newProduct("seller-1", "Dried Dagaa")
	inactive.Status = domain.StatusInactive
	_, err = repo.Create(ctx, inactive)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newProduct("seller-2", "Nile Perch Fillet"))
	require.NoError(t, err)

	bySeller, err := repo.List(ctx, catalogtypes.ProductFilters{SellerID: "seller-1"})
	require.NoError(t, err)
	assert.Len(t, bySeller, 2)

	active := domain.StatusActive
	activeOnly, err := repo.List(ctx, catalogtypes.ProductFilters{SellerID: "seller-1", Status: &active})
	require.NoError(t, err)
	require.Len(t, activeOnly, 1)
	assert.Equal(t, "Fresh Tilapia", activeOnly[0].Name)
}

func TestPostgresRepository_UpdateAndDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := repo.Create(ctx, newProduct("seller-1", "Fresh Tilapia"))
	require.NoError(t, err)

	product.Stock = 12
	require.NoError(t, product.ApplyRating(4.5, 9))
	updated, err := repo.Update(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Stock)
	assert.Equal(t, 4.5, updated.RatingAverage)
	assert.Equal(t, 9, updated.RatingCount)

	missing := newProduct("seller-1", "Ghost")
	_, err = repo.Update(ctx, missing)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, product.ID))
	assert.ErrorIs(t, repo.Delete(ctx, product.ID), ports.ErrNotFound)
}

func TestPostgresRepository_Categories(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.CreateCategory(ctx, &domain.Category{ID: uuid.New().String(), Name: "Freshwater"})
	require.NoError(t, err)
	_, err = repo.CreateCategory(ctx, &domain.Category{ID: uuid.New().String(), Name: "Dried"})
	require.NoError(t, err)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Dried", categories[0].Name)
	assert.Equal(t, "Freshwater", categories[1].Name)
}
