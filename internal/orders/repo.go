package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
	"github.com/warelinehq/wareline-backend/pkg/pagination"
)

// ListFilter narrows order listings.
type ListFilter struct {
	Status      *enums.OrderStatus
	WarehouseID *uuid.UUID
	CompanyID   *uuid.UUID
	DealerID    *uuid.UUID
	Cursor      *pagination.Cursor
	Limit       int
}

// Repository exposes order persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	CreateLineItems(ctx context.Context, items []models.OrderLineItem) error
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindOrders(ctx context.Context, filter ListFilter) ([]models.Order, error)
	FindDispatchReadyByOriginalID(ctx context.Context, originalOrderID string, warehouseID, companyID uuid.UUID) ([]models.Order, error)

	FindLineItemByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderLineItem, error)
	FindLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLineItem, error)
	SaveLineItem(ctx context.Context, item *models.OrderLineItem) error
	DeleteLineItem(ctx context.Context, id uuid.UUID) error

	// UpdateStatusGuarded is a compare-and-swap on the status column; it
	// reports whether the row was actually moved.
	UpdateStatusGuarded(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error)
	AppendStateHistory(ctx context.Context, entry *models.OrderStateHistory) error
	FindStateHistory(ctx context.Context, orderID uuid.UUID) ([]models.OrderStateHistory, error)

	ReplaceBoxes(ctx context.Context, orderID uuid.UUID, boxes []models.Box, items []models.BoxLineItem) error
	FindBoxesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Box, error)

	CreateFinalOrder(ctx context.Context, final *models.FinalOrder) (*models.FinalOrder, error)
	CreateFinalOrderLineItems(ctx context.Context, items []models.FinalOrderLineItem) error
	CreateFinalOrderBoxes(ctx context.Context, boxes []models.FinalOrderBox) error
	FindFinalOrderByOrderID(ctx context.Context, orderID uuid.UUID) (*models.FinalOrder, error)
	UpdateFinalOrder(ctx context.Context, final *models.FinalOrder) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) CreateLineItems(ctx context.Context, items []models.OrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Dealer").
		Preload("LineItems").
		Preload("LineItems.Product").
		Preload("Boxes").
		Preload("Boxes.LineItems").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrders(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).
		Preload("Dealer").
		Preload("LineItems").
		Order("created_at DESC, id DESC")

	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.CompanyID != nil {
		q = q.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.DealerID != nil {
		q = q.Where("dealer_id = ?", *filter.DealerID)
	}
	if filter.Cursor != nil {
		q = q.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var orders []models.Order
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindDispatchReadyByOriginalID(ctx context.Context, originalOrderID string, warehouseID, companyID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where(
			"original_order_id = ? AND warehouse_id = ? AND company_id = ? AND status = ?",
			originalOrderID, warehouseID, companyID, enums.OrderStatusDispatchReady,
		).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindLineItemByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*models.OrderLineItem, error) {
	var item models.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) FindLineItemsByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderLineItem, error) {
	var items []models.OrderLineItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) SaveLineItem(ctx context.Context, item *models.OrderLineItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.OrderLineItem{}).Error
}

func (r *repository) UpdateStatusGuarded(ctx context.Context, orderID uuid.UUID, from, to enums.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) AppendStateHistory(ctx context.Context, entry *models.OrderStateHistory) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindStateHistory(ctx context.Context, orderID uuid.UUID) ([]models.OrderStateHistory, error) {
	var entries []models.OrderStateHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ReplaceBoxes(ctx context.Context, orderID uuid.UUID, boxes []models.Box, items []models.BoxLineItem) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("order_id = ?", orderID).Delete(&models.BoxLineItem{}).Error; err != nil {
		return err
	}
	if err := tx.Where("order_id = ?", orderID).Delete(&models.Box{}).Error; err != nil {
		return err
	}
	if len(boxes) > 0 {
		if err := tx.Create(&boxes).Error; err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindBoxesByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Box, error) {
	var boxes []models.Box
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Where("order_id = ?", orderID).
		Order("box_number ASC").
		Find(&boxes).Error
	if err != nil {
		return nil, err
	}
	return boxes, nil
}

func (r *repository) CreateFinalOrder(ctx context.Context, final *models.FinalOrder) (*models.FinalOrder, error) {
	if err := r.db.WithContext(ctx).Create(final).Error; err != nil {
		return nil, err
	}
	return final, nil
}

func (r *repository) CreateFinalOrderLineItems(ctx context.Context, items []models.FinalOrderLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) CreateFinalOrderBoxes(ctx context.Context, boxes []models.FinalOrderBox) error {
	if len(boxes) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&boxes).Error
}

func (r *repository) FindFinalOrderByOrderID(ctx context.Context, orderID uuid.UUID) (*models.FinalOrder, error) {
	var final models.FinalOrder
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		Preload("Boxes").
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		First(&final).Error
	if err != nil {
		return nil, err
	}
	return &final, nil
}

func (r *repository) UpdateFinalOrder(ctx context.Context, final *models.FinalOrder) error {
	return r.db.WithContext(ctx).Save(final).Error
}
