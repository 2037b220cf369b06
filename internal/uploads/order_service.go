package uploads

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/internal/catalog"
	"github.com/warelinehq/wareline-backend/internal/ingest"
	"github.com/warelinehq/wareline-backend/internal/orders"
	"github.com/warelinehq/wareline-backend/pkg/db/models"
	"github.com/warelinehq/wareline-backend/pkg/enums"
	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
	"github.com/warelinehq/wareline-backend/pkg/logger"
	"github.com/warelinehq/wareline-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OrderUploadInput carries one order spreadsheet upload.
type OrderUploadInput struct {
	Payload     io.Reader
	WarehouseID uuid.UUID
	CompanyID   uuid.UUID
	ActorUserID uuid.UUID
}

// InvoiceUploadInput carries one invoice spreadsheet upload.
type InvoiceUploadInput struct {
	Payload     io.Reader
	WarehouseID uuid.UUID
	CompanyID   uuid.UUID
	ActorUserID uuid.UUID
}

// Service ingests order and invoice spreadsheets. Each upload is a single
// transaction: it commits when at least one row lands and rolls back
// entirely otherwise.
type Service interface {
	ProcessOrderUpload(ctx context.Context, input OrderUploadInput) (*Report, error)
	ProcessInvoiceUpload(ctx context.Context, input InvoiceUploadInput) (*Report, error)
}

type service struct {
	ordersRepo  orders.Repository
	ordersSvc   orders.Service
	catalogSvc  catalog.Service
	invoiceRepo InvoiceRepository
	tx          txRunner
	logg        *logger.Logger
	ingestStats *metrics.IngestMetrics
}

// NewService builds the uploads service.
func NewService(
	ordersRepo orders.Repository,
	ordersSvc orders.Service,
	catalogSvc catalog.Service,
	invoiceRepo InvoiceRepository,
	tx txRunner,
	logg *logger.Logger,
	ingestStats *metrics.IngestMetrics,
) (Service, error) {
	if ordersRepo == nil {
		return nil, errors.New("orders repo is required")
	}
	if ordersSvc == nil {
		return nil, errors.New("orders service is required")
	}
	if catalogSvc == nil {
		return nil, errors.New("catalog service is required")
	}
	if invoiceRepo == nil {
		return nil, errors.New("invoice repo is required")
	}
	if tx == nil {
		return nil, errors.New("tx runner is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &service{
		ordersRepo:  ordersRepo,
		ordersSvc:   ordersSvc,
		catalogSvc:  catalogSvc,
		invoiceRepo: invoiceRepo,
		tx:          tx,
		logg:        logg,
		ingestStats: ingestStats,
	}, nil
}

func (s *service) ProcessOrderUpload(ctx context.Context, input OrderUploadInput) (*Report, error) {
	table, err := ingest.ReadTable(input.Payload)
	if err != nil {
		s.ingestStats.IncUpload("orders", "rejected")
		return nil, err
	}

	parsed, err := ingest.ParseOrderTable(table)
	if err != nil {
		s.ingestStats.IncUpload("orders", "rejected")
		return nil, err
	}

	report := &Report{
		BatchID:  NewBatchID(),
		Errors:   parsed.Errors,
		Warnings: parsed.Warnings,
	}
	ctx = s.logg.WithUploadBatchID(ctx, report.BatchID)

	// one working order per distinct original order id within this upload
	type orderGroup struct {
		order *models.Order
	}
	groups := map[string]*orderGroup{}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.ordersRepo.WithTx(tx)

		for _, row := range parsed.Rows {
			group, ok := groups[row.OriginalOrderID]
			if !ok {
				var dealerID *uuid.UUID
				if row.DealerName == "" {
					report.Warnings = append(report.Warnings, ingest.RowError{
						RowNumber: row.RowNumber,
						Reason:    "missing dealer name, order created without dealer",
					})
				} else {
					dealer, derr := s.catalogSvc.GetOrCreateDealer(ctx, tx, row.DealerName)
					if derr != nil {
						return derr
					}
					dealerID = &dealer.ID
				}

				order, cerr := repo.CreateOrder(ctx, &models.Order{
					ID:              uuid.New(),
					OriginalOrderID: row.OriginalOrderID,
					WarehouseID:     input.WarehouseID,
					CompanyID:       input.CompanyID,
					DealerID:        dealerID,
					Status:          enums.OrderStatusOpen,
					OrderDate:       row.OrderDate,
					UploadBatchID:   report.BatchID,
					RequestedBy:     input.ActorUserID,
				})
				if cerr != nil {
					return apperrors.Wrap(apperrors.CodeInternal, cerr, "creating order")
				}

				// every order starts its timeline with an entry into open
				if herr := repo.AppendStateHistory(ctx, &models.OrderStateHistory{
					ID:        uuid.New(),
					OrderID:   order.ID,
					ToStatus:  enums.OrderStatusOpen,
					ChangedBy: input.ActorUserID,
				}); herr != nil {
					return apperrors.Wrap(apperrors.CodeInternal, herr, "recording initial state")
				}

				group = &orderGroup{order: order}
				groups[row.OriginalOrderID] = group
				report.OrdersCreated++
			}

			product, perr := s.catalogSvc.GetOrCreateProduct(ctx, tx, catalog.ProductInput{
				SKU:         row.PartNumber,
				Name:        row.PartDescription,
				Price:       ingest.ParseDecimal(row.MRP),
				Description: row.PartDescription,
			})
			if perr != nil {
				return perr
			}

			if lerr := upsertLineItem(ctx, repo, group.order.ID, product.ID, row); lerr != nil {
				return lerr
			}
			report.RowsProcessed++
		}

		if report.RowsProcessed == 0 {
			return apperrors.New(apperrors.CodeValidation, "no valid rows in upload").
				WithDetails(map[string]any{"errors": report.Errors})
		}
		return nil
	})
	report.RowsRejected = len(report.Errors)
	report.ErrorReportCSV = renderErrorCSV(report.Errors, report.Warnings)

	if err != nil {
		s.ingestStats.IncUpload("orders", "rejected")
		s.ingestStats.AddRows("orders", 0, report.RowsRejected)
		return nil, err
	}

	s.ingestStats.IncUpload("orders", "accepted")
	s.ingestStats.AddRows("orders", report.RowsProcessed, report.RowsRejected)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"orders_created": report.OrdersCreated,
		"rows_processed": report.RowsProcessed,
		"rows_rejected":  report.RowsRejected,
	}), "order upload processed")
	return report, nil
}

// upsertLineItem increments an existing line for the product or creates one.
// Uploads listing the same part twice for an order accumulate quantity.
func upsertLineItem(ctx context.Context, repo orders.Repository, orderID, productID uuid.UUID, row ingest.OrderRow) error {
	existing, err := repo.FindLineItemByOrderAndProduct(ctx, orderID, productID)
	switch {
	case err == nil:
		existing.Quantity += row.Quantity
		existing.QuantityRemaining = existing.Quantity - existing.QuantityPacked
		existing.TotalPrice = existing.MRP.Mul(intToDecimal(existing.Quantity))
		if serr := repo.SaveLineItem(ctx, existing); serr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, serr, "incrementing line item")
		}
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		mrp := ingest.ParseDecimal(row.MRP)
		item := models.OrderLineItem{
			ID:                uuid.New(),
			OrderID:           orderID,
			ProductID:         productID,
			Quantity:          row.Quantity,
			QuantityRemaining: row.Quantity,
			MRP:               mrp,
			TotalPrice:        mrp.Mul(intToDecimal(row.Quantity)),
		}
		if cerr := repo.CreateLineItems(ctx, []models.OrderLineItem{item}); cerr != nil {
			return apperrors.Wrap(apperrors.CodeInternal, cerr, "creating line item")
		}
		return nil

	default:
		return apperrors.Wrap(apperrors.CodeInternal, err, "looking up line item")
	}
}

func intToDecimal(v int) decimal.Decimal {
	return decimal.NewFromInt(int64(v))
}
