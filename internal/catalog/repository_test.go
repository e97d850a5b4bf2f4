package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/buildmat/buildmat-backend/pkg/db/models"
	"github.com/buildmat/buildmat-backend/pkg/enums"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  unit TEXT NOT NULL,
  photo_url TEXT,
  tags TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, active bool) models.Product {
	t.Helper()

	product := models.Product{
		ID:       uuid.New(),
		Name:     name,
		Type:     "aggregate",
		Unit:     enums.ProductUnitTon,
		IsActive: active,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestRepositoryListActiveFiltersAndSorts(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seedProduct(t, db, "Sand 0-4mm", true)
	seedProduct(t, db, "Gravel 8-16mm", true)
	seedProduct(t, db, "Discontinued filler", false)

	products, err := repo.ListActive(context.Background())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Gravel 8-16mm", products[0].Name)
	assert.Equal(t, "Sand 0-4mm", products[1].Name)
}

func TestRepositoryGetByID(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	seeded := seedProduct(t, db, "Cement CEM I", true)

	product, err := repo.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, product.ID)
	assert.Equal(t, enums.ProductUnitTon, product.Unit)

	_, err = repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
