package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS dealers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  name_normalized TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL,
  sku_normalized TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS warehouses (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS companies (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := setupCatalogTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc, db
}

func TestGetOrCreateDealerIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateDealer(ctx, db, "Acme Traders")
	require.NoError(t, err)

	second, err := svc.GetOrCreateDealer(ctx, db, "Acme Traders")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Table("dealers").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateDealerCaseAndWhitespaceInsensitive(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateDealer(ctx, db, "Acme Traders")
	require.NoError(t, err)

	second, err := svc.GetOrCreateDealer(ctx, db, "  ACME   traders ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// original casing of the first writer is preserved
	assert.Equal(t, "Acme Traders", second.Name)
}

func TestGetOrCreateDealerRejectsEmptyName(t *testing.T) {
	svc, db := newTestService(t)
	_, err := svc.GetOrCreateDealer(context.Background(), db, "   ")
	require.Error(t, err)
}

func TestGetOrCreateProductIsIdempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	first, err := svc.GetOrCreateProduct(ctx, db, ProductInput{
		SKU:   "SKU-100",
		Name:  "Widget",
		Price: decimal.RequireFromString("19.99"),
	})
	require.NoError(t, err)

	second, err := svc.GetOrCreateProduct(ctx, db, ProductInput{SKU: "sku-100"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "SKU-100", second.SKU)
	assert.Equal(t, "Widget", second.Name)
}

func TestGetOrCreateProductRejectsEmptySKU(t *testing.T) {
	svc, db := newTestService(t)
	_, err := svc.GetOrCreateProduct(context.Background(), db, ProductInput{SKU: ""})
	require.Error(t, err)
}

func TestGetWarehouseNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetWarehouse(context.Background(), uuid.New())
	require.Error(t, err)
}

func TestListWarehousesOrdered(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, db.Exec(
		`INSERT INTO warehouses (id, name, location) VALUES (?, ?, ?), (?, ?, ?)`,
		uuid.NewString(), "South Depot", "Pune",
		uuid.NewString(), "North Depot", "Delhi",
	).Error)

	warehouses, err := svc.ListWarehouses(ctx)
	require.NoError(t, err)
	require.Len(t, warehouses, 2)
	assert.Equal(t, "North Depot", warehouses[0].Name)
	assert.Equal(t, "South Depot", warehouses[1].Name)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "acme traders", Normalize("  ACME   Traders "))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "sku-100", Normalize("SKU-100"))
}
