package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
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
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  original_order_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  company_id TEXT NOT NULL,
  dealer_id TEXT,
  status TEXT NOT NULL DEFAULT 'open',
  order_date DATETIME,
  upload_batch_id TEXT NOT NULL DEFAULT '',
  requested_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  quantity_packed INTEGER NOT NULL DEFAULT 0,
  quantity_remaining INTEGER NOT NULL DEFAULT 0,
  mrp NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_state_history (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  from_status TEXT NOT NULL DEFAULT '',
  to_status TEXT NOT NULL,
  changed_by TEXT,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS boxes (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  box_number INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS box_line_items (
  id TEXT PRIMARY KEY,
  box_id TEXT NOT NULL,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS final_orders (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  order_number TEXT NOT NULL,
  original_order_id TEXT NOT NULL,
  warehouse_id TEXT NOT NULL,
  company_id TEXT NOT NULL,
  dealer_id TEXT,
  status TEXT NOT NULL DEFAULT 'dispatch_ready',
  dispatched_date DATETIME,
  delivery_date DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS final_order_line_items (
  id TEXT PRIMARY KEY,
  final_order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  mrp NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS final_order_boxes (
  id TEXT PRIMARY KEY,
  final_order_id TEXT NOT NULL,
  box_number INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newTestOrdersService(t *testing.T) (Service, Repository, *gorm.DB) {
	t.Helper()
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo, &testTxRunner{db: db})
	require.NoError(t, err)
	return svc, repo, db
}

func mustCreateTestWarehouse(t *testing.T, db *gorm.DB) *models.Warehouse {
	t.Helper()
	warehouse := &models.Warehouse{
		ID:       uuid.New(),
		Name:     "Central Depot",
		Location: "Mumbai",
	}
	require.NoError(t, db.Create(warehouse).Error)
	return warehouse
}

func mustCreateTestCompany(t *testing.T, db *gorm.DB) *models.Company {
	t.Helper()
	company := &models.Company{
		ID:   uuid.New(),
		Name: "Wareline Distribution",
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

func mustCreateTestProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	sku := fmt.Sprintf("SKU-%s", uuid.NewString())
	product := &models.Product{
		ID:            uuid.New(),
		SKU:           sku,
		SKUNormalized: sku,
		Name:          "Test Part",
		Price:         decimal.RequireFromString("10.00"),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

type testLine struct {
	product  *models.Product
	quantity int
}

func mustCreateTestOrder(t *testing.T, db *gorm.DB, status enums.OrderStatus, lines ...testLine) *models.Order {
	t.Helper()

	warehouse := mustCreateTestWarehouse(t, db)
	company := mustCreateTestCompany(t, db)

	order := &models.Order{
		ID:              uuid.New(),
		OriginalOrderID: fmt.Sprintf("SO-%s", uuid.NewString()[:8]),
		WarehouseID:     warehouse.ID,
		CompanyID:       company.ID,
		Status:          status,
		RequestedBy:     uuid.New(),
	}
	require.NoError(t, db.Create(order).Error)

	for _, line := range lines {
		item := &models.OrderLineItem{
			ID:                uuid.New(),
			OrderID:           order.ID,
			ProductID:         line.product.ID,
			Quantity:          line.quantity,
			QuantityRemaining: line.quantity,
			MRP:               line.product.Price,
			TotalPrice:        line.product.Price.Mul(decimal.NewFromInt(int64(line.quantity))),
		}
		require.NoError(t, db.Create(item).Error)
	}
	return order
}
