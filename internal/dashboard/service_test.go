package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	ddl := []string{
		`CREATE TABLE IF NOT EXISTS dealers (
  id TEXT PRIMARY KEY, name TEXT NOT NULL, name_normalized TEXT NOT NULL UNIQUE,
  created_at DATETIME, updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY, original_order_id TEXT NOT NULL, warehouse_id TEXT NOT NULL,
  company_id TEXT NOT NULL, dealer_id TEXT, status TEXT NOT NULL DEFAULT 'open',
  order_date DATETIME, upload_batch_id TEXT NOT NULL DEFAULT '', requested_by TEXT,
  created_at DATETIME, updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY, order_id TEXT NOT NULL, product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0, quantity_packed INTEGER NOT NULL DEFAULT 0,
  quantity_remaining INTEGER NOT NULL DEFAULT 0, mrp NUMERIC NOT NULL DEFAULT 0,
  total_price NUMERIC NOT NULL DEFAULT 0, created_at DATETIME, updated_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS order_state_history (
  id TEXT PRIMARY KEY, order_id TEXT NOT NULL, from_status TEXT NOT NULL DEFAULT '',
  to_status TEXT NOT NULL, changed_by TEXT, created_at DATETIME);`,
		`CREATE TABLE IF NOT EXISTS order_states (
  id TEXT PRIMARY KEY, name TEXT NOT NULL UNIQUE, label TEXT NOT NULL,
  position INTEGER NOT NULL, created_at DATETIME);`,
		`INSERT INTO order_states (id, name, label, position) VALUES
  ('00000000-0000-0000-0000-000000000001', 'open', 'Open Orders', 1),
  ('00000000-0000-0000-0000-000000000002', 'picking', 'Picking', 2),
  ('00000000-0000-0000-0000-000000000003', 'packing', 'Packing', 3),
  ('00000000-0000-0000-0000-000000000004', 'dispatch_ready', 'Dispatch Ready', 4),
  ('00000000-0000-0000-0000-000000000005', 'partially_completed', 'Partially Completed', 5),
  ('00000000-0000-0000-0000-000000000006', 'completed', 'Completed', 6);`,
	}
	for _, stmt := range ddl {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func mustCreateOrder(t *testing.T, db *gorm.DB, warehouseID uuid.UUID, status enums.OrderStatus, lineCount int) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:              uuid.New(),
		OriginalOrderID: fmt.Sprintf("SO-%s", uuid.NewString()[:8]),
		WarehouseID:     warehouseID,
		CompanyID:       uuid.New(),
		Status:          status,
	}
	require.NoError(t, db.Create(order).Error)

	for i := 0; i < lineCount; i++ {
		item := &models.OrderLineItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: uuid.New(),
			Quantity:  1,
		}
		require.NoError(t, db.Create(item).Error)
	}
	return order
}

func TestStatusCountsIncludesEmptyBuckets(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	warehouseID := uuid.New()
	mustCreateOrder(t, db, warehouseID, enums.OrderStatusOpen, 1)
	mustCreateOrder(t, db, warehouseID, enums.OrderStatusOpen, 1)
	mustCreateOrder(t, db, warehouseID, enums.OrderStatusPicking, 1)

	counts, err := svc.StatusCounts(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, counts, 6)

	byStatus := map[enums.OrderStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
		assert.NotEmpty(t, c.Label)
	}
	assert.EqualValues(t, 2, byStatus[enums.OrderStatusOpen])
	assert.EqualValues(t, 1, byStatus[enums.OrderStatusPicking])
	assert.EqualValues(t, 0, byStatus[enums.OrderStatusCompleted])
	assert.EqualValues(t, 0, byStatus[enums.OrderStatusPartiallyCompleted])

	// bucket order and labels come from the seeded order_states rows
	assert.Equal(t, enums.OrderStatusOpen, counts[0].Status)
	assert.Equal(t, "Open Orders", counts[0].Label)
	assert.Equal(t, enums.OrderStatusCompleted, counts[5].Status)
}

func TestStatusCountsFiltersByWarehouse(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	mine := uuid.New()
	other := uuid.New()
	mustCreateOrder(t, db, mine, enums.OrderStatusOpen, 1)
	mustCreateOrder(t, db, other, enums.OrderStatusOpen, 1)

	counts, err := svc.StatusCounts(context.Background(), Filter{WarehouseID: &mine})
	require.NoError(t, err)

	byStatus := map[enums.OrderStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.EqualValues(t, 1, byStatus[enums.OrderStatusOpen])
}

func TestStatusCountsFiltersByCompany(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	warehouseID := uuid.New()
	first := mustCreateOrder(t, db, warehouseID, enums.OrderStatusOpen, 1)
	mustCreateOrder(t, db, warehouseID, enums.OrderStatusOpen, 1)

	counts, err := svc.StatusCounts(context.Background(), Filter{CompanyID: &first.CompanyID})
	require.NoError(t, err)

	byStatus := map[enums.OrderStatus]int64{}
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.EqualValues(t, 1, byStatus[enums.OrderStatusOpen])
}

func TestRecentOrdersCarriesLineCounts(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	warehouseID := uuid.New()
	mustCreateOrder(t, db, warehouseID, enums.OrderStatusOpen, 3)
	mustCreateOrder(t, db, warehouseID, enums.OrderStatusPicking, 1)

	recent, err := svc.RecentOrders(context.Background(), Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	total := int64(0)
	for _, r := range recent {
		total += r.LineCount
	}
	assert.EqualValues(t, 4, total)
}

func TestRecentOrdersEmbedsStateTimelines(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	warehouseID := uuid.New()
	order := mustCreateOrder(t, db, warehouseID, enums.OrderStatusPicking, 1)
	require.NoError(t, db.Create(&models.OrderStateHistory{
		ID:       uuid.New(),
		OrderID:  order.ID,
		ToStatus: enums.OrderStatusOpen,
	}).Error)
	require.NoError(t, db.Create(&models.OrderStateHistory{
		ID:         uuid.New(),
		OrderID:    order.ID,
		FromStatus: enums.OrderStatusOpen,
		ToStatus:   enums.OrderStatusPicking,
	}).Error)

	recent, err := svc.RecentOrders(context.Background(), Filter{}, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	require.Len(t, recent[0].History, 2)
	assert.Equal(t, enums.OrderStatusOpen, recent[0].History[0].ToStatus)
	assert.Equal(t, enums.OrderStatusPicking, recent[0].History[1].ToStatus)
}

func TestRecentOrdersHonorsLimit(t *testing.T) {
	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)

	warehouseID := uuid.New()
	for i := 0; i < 5; i++ {
		mustCreateOrder(t, db, warehouseID, enums.OrderStatusOpen, 1)
	}

	recent, err := svc.RecentOrders(context.Background(), Filter{}, 3)
	require.NoError(t, err)
	assert.Len(t, recent, 3)
}
