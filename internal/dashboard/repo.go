package dashboard

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
)

// Filter scopes dashboard aggregates to a warehouse and/or company.
type Filter struct {
	WarehouseID *uuid.UUID
	CompanyID   *uuid.UUID
}

// Repository exposes the aggregate queries behind the dashboard.
type Repository interface {
	FindOrderStates(ctx context.Context) ([]models.OrderState, error)
	CountOrdersByStatus(ctx context.Context, filter Filter) (map[enums.OrderStatus]int64, error)
	FindRecentOrders(ctx context.Context, filter Filter, limit int) ([]models.Order, error)
	CountLineItemsByOrder(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	FindStateHistoryByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderStateHistory, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a dashboard repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindOrderStates returns the seeded pipeline states in display order.
func (r *repository) FindOrderStates(ctx context.Context) ([]models.OrderState, error) {
	var states []models.OrderState
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&states).Error
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (r *repository) CountOrdersByStatus(ctx context.Context, filter Filter) (map[enums.OrderStatus]int64, error) {
	type statusCount struct {
		Status enums.OrderStatus
		Total  int64
	}

	q := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status")
	q = applyFilter(q, filter)

	var rows []statusCount
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := map[enums.OrderStatus]int64{}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *repository) FindRecentOrders(ctx context.Context, filter Filter, limit int) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Dealer").
		Order("created_at DESC, id DESC").
		Limit(limit)
	q = applyFilter(q, filter)

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func applyFilter(q *gorm.DB, filter Filter) *gorm.DB {
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	return q
}

func (r *repository) CountLineItemsByOrder(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(orderIDs) == 0 {
		return map[uuid.UUID]int64{}, nil
	}

	type lineCount struct {
		OrderID uuid.UUID
		Total   int64
	}
	var rows []lineCount
	err := r.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Select("order_id, COUNT(*) AS total").
		Where("order_id IN ?", orderIDs).
		Group("order_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[uuid.UUID]int64{}
	for _, row := range rows {
		counts[row.OrderID] = row.Total
	}
	return counts, nil
}

func (r *repository) FindStateHistoryByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]models.OrderStateHistory, error) {
	if len(orderIDs) == 0 {
		return map[uuid.UUID][]models.OrderStateHistory{}, nil
	}

	var entries []models.OrderStateHistory
	err := r.db.WithContext(ctx).
		Where("order_id IN ?", orderIDs).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	timelines := map[uuid.UUID][]models.OrderStateHistory{}
	for _, entry := range entries {
		timelines[entry.OrderID] = append(timelines[entry.OrderID], entry)
	}
	return timelines, nil
}
