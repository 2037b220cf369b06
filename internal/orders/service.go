package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
	"github.com/warelinehq/wareline-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	List(ctx context.Context, input ListInput) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error)
	RecordPacking(ctx context.Context, input RecordPackingInput) (*models.Order, error)
	MoveToDispatch(ctx context.Context, input DispatchInput) (*DispatchResult, error)
	CompleteDispatch(ctx context.Context, input CompleteInput) (*CompleteResult, error)

	// CompleteDispatchTx settles an order inside an already-open transaction
	// so invoice ingestion can fold completion into its upload commit.
	CompleteDispatchTx(ctx context.Context, tx *gorm.DB, input CompleteInput) (*CompleteResult, error)
	DispatchReadyByOriginalID(ctx context.Context, tx *gorm.DB, originalOrderID string, warehouseID, companyID uuid.UUID) ([]models.Order, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds the orders service.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, errors.New("repo is required")
	}
	if tx == nil {
		return nil, errors.New("tx runner is required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	found, err := s.repo.FindOrders(ctx, ListFilter{
		Status:      input.Status,
		WarehouseID: input.WarehouseID,
		CompanyID:   input.CompanyID,
		DealerID:    input.DealerID,
		Cursor:      cursor,
		Limit:       limit + 1,
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "listing orders")
	}

	result := &ListResult{Orders: found}
	if len(found) > limit {
		result.Orders = found[:limit]
		last := result.Orders[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	order, err := s.repo.FindOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "finding order")
	}

	history, err := s.repo.FindStateHistory(ctx, id)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading state history")
	}

	detail := &OrderDetail{Order: order, History: history}
	final, err := s.repo.FindFinalOrderByOrderID(ctx, id)
	if err == nil {
		detail.FinalOrder = final
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading dispatch snapshot")
	}
	return detail, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error) {
	if !input.ToStatus.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, "unknown status").
			WithDetails(map[string]any{"status": input.ToStatus})
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "order not found")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "finding order")
		}

		if !CanTransition(order.Status, input.ToStatus) {
			return transitionError(order.Status, input.ToStatus)
		}

		moved, err := repo.UpdateStatusGuarded(ctx, order.ID, order.Status, input.ToStatus)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "updating status")
		}
		if !moved {
			// a concurrent writer won the swap
			return apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
		}

		if err := repo.AppendStateHistory(ctx, &models.OrderStateHistory{
			ID:         uuid.New(),
			OrderID:    order.ID,
			FromStatus: order.Status,
			ToStatus:   input.ToStatus,
			ChangedBy:  input.ActorUserID,
		}); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "recording state history")
		}

		order.Status = input.ToStatus
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) RecordPacking(ctx context.Context, input RecordPackingInput) (*models.Order, error) {
	if len(input.Boxes) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "at least one box is required")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "order not found")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "finding order")
		}
		if order.Status != enums.OrderStatusPacking {
			return apperrors.New(apperrors.CodeStateConflict, "order is not in packing").
				WithDetails(map[string]any{"status": order.Status})
		}

		lines := make(map[uuid.UUID]*models.OrderLineItem, len(order.LineItems))
		for i := range order.LineItems {
			lines[order.LineItems[i].ProductID] = &order.LineItems[i]
		}

		packed, verr := reconcileBoxes(input.Products, input.Boxes, lines)
		if verr != nil {
			return verr
		}

		boxes := make([]models.Box, 0, len(input.Boxes))
		var boxItems []models.BoxLineItem
		for _, b := range input.Boxes {
			box := models.Box{
				ID:        uuid.New(),
				OrderID:   order.ID,
				BoxNumber: b.BoxNumber,
			}
			boxes = append(boxes, box)
			for _, item := range b.Items {
				boxItems = append(boxItems, models.BoxLineItem{
					ID:        uuid.New(),
					BoxID:     box.ID,
					OrderID:   order.ID,
					ProductID: item.ProductID,
					Quantity:  item.Quantity,
				})
			}
		}
		if err := repo.ReplaceBoxes(ctx, order.ID, boxes, boxItems); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "replacing boxes")
		}

		for productID, line := range lines {
			line.QuantityPacked = packed[productID]
			line.QuantityRemaining = line.Quantity - line.QuantityPacked
			if err := repo.SaveLineItem(ctx, line); err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "saving line item")
			}
		}

		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// reconcileBoxes totals packed quantities per product and validates them
// against the order lines and, when present, the declared per-product
// quantities. All violations are reported together.
func reconcileBoxes(declared []ProductPackInput, boxes []BoxInput, lines map[uuid.UUID]*models.OrderLineItem) (map[uuid.UUID]int, error) {
	packed := map[uuid.UUID]int{}
	var errs error

	seen := map[int]bool{}
	for _, b := range boxes {
		if seen[b.BoxNumber] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate box number %d", b.BoxNumber))
			continue
		}
		seen[b.BoxNumber] = true
		for _, item := range b.Items {
			if item.Quantity <= 0 {
				errs = multierr.Append(errs, fmt.Errorf("box %d: quantity must be positive for product %s", b.BoxNumber, item.ProductID))
				continue
			}
			if _, ok := lines[item.ProductID]; !ok {
				errs = multierr.Append(errs, fmt.Errorf("box %d: product %s is not on the order", b.BoxNumber, item.ProductID))
				continue
			}
			packed[item.ProductID] += item.Quantity
		}
	}

	for productID, total := range packed {
		line := lines[productID]
		if total > line.Quantity {
			errs = multierr.Append(errs, fmt.Errorf("product %s: packed %d exceeds ordered %d", productID, total, line.Quantity))
		}
	}

	for _, d := range declared {
		if _, ok := lines[d.ProductID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("product %s is not on the order", d.ProductID))
			continue
		}
		if packed[d.ProductID] != d.Quantity {
			errs = multierr.Append(errs, fmt.Errorf("product %s: declared packed %d but boxes hold %d", d.ProductID, d.Quantity, packed[d.ProductID]))
		}
	}

	if errs != nil {
		details := make([]string, 0)
		for _, e := range multierr.Errors(errs) {
			details = append(details, e.Error())
		}
		return nil, apperrors.New(apperrors.CodeValidation, "packing reconciliation failed").
			WithDetails(map[string]any{"violations": details})
	}
	return packed, nil
}

func (s *service) MoveToDispatch(ctx context.Context, input DispatchInput) (*DispatchResult, error) {
	var result *DispatchResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderByID(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "order not found")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "finding order")
		}
		if order.Status != enums.OrderStatusPacking {
			return apperrors.New(apperrors.CodeStateConflict, "order must be in packing to dispatch").
				WithDetails(map[string]any{"status": order.Status})
		}

		totalPacked := 0
		resulting := enums.OrderStatusDispatchReady
		for _, line := range order.LineItems {
			totalPacked += line.QuantityPacked
			if line.QuantityRemaining > 0 {
				resulting = enums.OrderStatusPartiallyCompleted
			}
		}
		if totalPacked == 0 {
			return apperrors.New(apperrors.CodeStateConflict, "nothing packed yet")
		}

		moved, err := repo.UpdateStatusGuarded(ctx, order.ID, order.Status, resulting)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "updating status")
		}
		if !moved {
			return apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
		}

		now := time.Now().UTC()
		final := &models.FinalOrder{
			ID:              uuid.New(),
			OrderID:         order.ID,
			OrderNumber:     newOrderNumber(),
			OriginalOrderID: order.OriginalOrderID,
			WarehouseID:     order.WarehouseID,
			CompanyID:       order.CompanyID,
			DealerID:        order.DealerID,
			Status:          enums.FinalOrderStatusDispatchReady,
			DispatchedDate:  &now,
		}
		if _, err := repo.CreateFinalOrder(ctx, final); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "creating dispatch snapshot")
		}

		var finalLines []models.FinalOrderLineItem
		for _, line := range order.LineItems {
			if line.QuantityPacked == 0 {
				continue
			}
			finalLines = append(finalLines, models.FinalOrderLineItem{
				ID:           uuid.New(),
				FinalOrderID: final.ID,
				ProductID:    line.ProductID,
				Quantity:     line.QuantityPacked,
				MRP:          line.MRP,
				TotalPrice:   line.MRP.Mul(intToDecimal(line.QuantityPacked)),
			})
		}
		if err := repo.CreateFinalOrderLineItems(ctx, finalLines); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "snapshotting line items")
		}

		boxes, err := repo.FindBoxesByOrder(ctx, order.ID)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "loading boxes")
		}
		var finalBoxes []models.FinalOrderBox
		for _, box := range boxes {
			for _, item := range box.LineItems {
				finalBoxes = append(finalBoxes, models.FinalOrderBox{
					ID:           uuid.New(),
					FinalOrderID: final.ID,
					BoxNumber:    box.BoxNumber,
					ProductID:    item.ProductID,
					Quantity:     item.Quantity,
				})
			}
		}
		if err := repo.CreateFinalOrderBoxes(ctx, finalBoxes); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "snapshotting boxes")
		}

		// Roll the live lines forward: whatever shipped leaves the order,
		// fully consumed lines disappear entirely.
		for i := range order.LineItems {
			line := &order.LineItems[i]
			if line.QuantityPacked == 0 {
				continue
			}
			if line.QuantityRemaining == 0 {
				if err := repo.DeleteLineItem(ctx, line.ID); err != nil {
					return apperrors.Wrap(apperrors.CodeInternal, err, "removing consumed line item")
				}
				continue
			}
			line.Quantity = line.QuantityRemaining
			line.QuantityPacked = 0
			line.TotalPrice = line.MRP.Mul(intToDecimal(line.Quantity))
			if err := repo.SaveLineItem(ctx, line); err != nil {
				return apperrors.Wrap(apperrors.CodeInternal, err, "rewriting line item")
			}
		}

		if err := repo.AppendStateHistory(ctx, &models.OrderStateHistory{
			ID:         uuid.New(),
			OrderID:    order.ID,
			FromStatus: enums.OrderStatusPacking,
			ToStatus:   resulting,
			ChangedBy:  input.ActorUserID,
		}); err != nil {
			return apperrors.Wrap(apperrors.CodeInternal, err, "recording state history")
		}

		result = &DispatchResult{FinalOrder: final, Status: resulting}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CompleteDispatch(ctx context.Context, input CompleteInput) (*CompleteResult, error) {
	var result *CompleteResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var innerErr error
		result, innerErr = s.CompleteDispatchTx(ctx, tx, input)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) CompleteDispatchTx(ctx context.Context, tx *gorm.DB, input CompleteInput) (*CompleteResult, error) {
	repo := s.repo.WithTx(tx)

	order, err := repo.FindOrderByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "finding order")
	}
	if order.Status != enums.OrderStatusDispatchReady {
		return nil, apperrors.New(apperrors.CodeStateConflict, "order is not dispatch ready").
			WithDetails(map[string]any{"status": order.Status})
	}

	finalStatus := enums.OrderStatusCompleted

	moved, err := repo.UpdateStatusGuarded(ctx, order.ID, order.Status, finalStatus)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating status")
	}
	if !moved {
		return nil, apperrors.New(apperrors.CodeStateConflict, "order status changed concurrently")
	}

	final, err := repo.FindFinalOrderByOrderID(ctx, order.ID)
	if err == nil {
		now := time.Now().UTC()
		final.Status = enums.FinalOrderStatusCompleted
		final.DeliveryDate = &now
		if err := repo.UpdateFinalOrder(ctx, final); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating dispatch snapshot")
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading dispatch snapshot")
	}

	if err := repo.AppendStateHistory(ctx, &models.OrderStateHistory{
		ID:         uuid.New(),
		OrderID:    order.ID,
		FromStatus: enums.OrderStatusDispatchReady,
		ToStatus:   finalStatus,
		ChangedBy:  input.ActorUserID,
	}); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "recording state history")
	}

	return &CompleteResult{OrderID: order.ID, FinalStatus: finalStatus}, nil
}

func (s *service) DispatchReadyByOriginalID(ctx context.Context, tx *gorm.DB, originalOrderID string, warehouseID, companyID uuid.UUID) ([]models.Order, error) {
	trimmed := strings.TrimSpace(originalOrderID)
	if trimmed == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "original order id is required")
	}
	found, err := s.repo.WithTx(tx).FindDispatchReadyByOriginalID(ctx, trimmed, warehouseID, companyID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "finding dispatch-ready orders")
	}
	return found, nil
}

func transitionError(from, to enums.OrderStatus) error {
	allowed := make([]string, 0)
	for _, next := range AllowedTransitions(from) {
		allowed = append(allowed, next.String())
	}
	return apperrors.New(apperrors.CodeStateConflict, "status transition not allowed").
		WithDetails(map[string]any{
			"from":    from,
			"to":      to,
			"allowed": allowed,
		})
}

func intToDecimal(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}

func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("FO-%s-%s", time.Now().UTC().Format("20060102"), suffix)
}
