package orders

import (
	"github.com/google/uuid"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
	"github.com/warelinehq/wareline-backend/pkg/pagination"
)

// ListInput carries order listing filters from the API layer.
type ListInput struct {
	Status      *enums.OrderStatus
	WarehouseID *uuid.UUID
	CompanyID   *uuid.UUID
	DealerID    *uuid.UUID
	Pagination  pagination.Params
}

// ListResult is one page of orders plus the cursor for the next one.
type ListResult struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// UpdateStatusInput requests a manual pipeline move.
type UpdateStatusInput struct {
	OrderID     uuid.UUID
	ToStatus    enums.OrderStatus
	ActorUserID uuid.UUID
}

// BoxItemInput is one packed product quantity within a box.
type BoxItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// BoxInput is one packed box submitted from the packing screen.
type BoxInput struct {
	BoxNumber int            `json:"box_number" validate:"required,gt=0"`
	Items     []BoxItemInput `json:"items" validate:"required,min=1,dive"`
}

// ProductPackInput declares the packed quantity for one product.
type ProductPackInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity_packed" validate:"required,gt=0"`
}

// RecordPackingInput replaces the packed boxes for an order. Products is
// optional; when present, per-product box sums must match it exactly.
type RecordPackingInput struct {
	OrderID     uuid.UUID
	Products    []ProductPackInput
	Boxes       []BoxInput
	ActorUserID uuid.UUID
}

// DispatchInput moves a packed order to dispatch and cuts the snapshot.
type DispatchInput struct {
	OrderID     uuid.UUID
	ActorUserID uuid.UUID
}

// DispatchResult reports the snapshot and the status the order landed in.
type DispatchResult struct {
	FinalOrder *models.FinalOrder `json:"final_order"`
	Status     enums.OrderStatus  `json:"status"`
}

// CompleteInput settles a dispatch-ready order.
type CompleteInput struct {
	OrderID     uuid.UUID
	ActorUserID uuid.UUID
}

// CompleteResult reports how the order settled.
type CompleteResult struct {
	OrderID     uuid.UUID         `json:"order_id"`
	FinalStatus enums.OrderStatus `json:"final_status"`
}

// OrderDetail is the full order view including its dispatch snapshot when
// one exists.
type OrderDetail struct {
	Order      *models.Order              `json:"order"`
	History    []models.OrderStateHistory `json:"history"`
	FinalOrder *models.FinalOrder         `json:"final_order,omitempty"`
}
