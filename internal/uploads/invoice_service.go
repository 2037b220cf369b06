package uploads

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/warelinehq/wareline-backend/internal/ingest"
	"github.com/warelinehq/wareline-backend/internal/orders"
	"github.com/warelinehq/wareline-backend/pkg/db/models"
	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
)

func (s *service) ProcessInvoiceUpload(ctx context.Context, input InvoiceUploadInput) (*Report, error) {
	table, err := ingest.ReadTable(input.Payload)
	if err != nil {
		s.ingestStats.IncUpload("invoices", "rejected")
		return nil, err
	}

	parsed, err := ingest.ParseInvoiceTable(table)
	if err != nil {
		s.ingestStats.IncUpload("invoices", "rejected")
		return nil, err
	}

	report := &Report{
		BatchID: NewBatchID(),
		Errors:  parsed.Errors,
	}
	ctx = s.logg.WithUploadBatchID(ctx, report.BatchID)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		invoiceRepo := s.invoiceRepo.WithTx(tx)

		// the narration column carries the original order id; the first
		// matching row settles the order, later rows for the same id attach
		// to the already-settled order
		settled := map[string]uuid.UUID{}

		for _, row := range parsed.Rows {
			originalOrderID := strings.TrimSpace(row.Narration)

			orderID, ok := settled[originalOrderID]
			if !ok {
				candidates, ferr := s.ordersSvc.DispatchReadyByOriginalID(ctx, tx, originalOrderID, input.WarehouseID, input.CompanyID)
				if ferr != nil {
					return ferr
				}
				if len(candidates) == 0 {
					report.Errors = append(report.Errors, ingest.RowError{
						RowNumber: row.RowNumber,
						Reason:    fmt.Sprintf("no dispatch-ready order for %q", originalOrderID),
					})
					continue
				}

				target := candidates[0]
				if _, cerr := s.ordersSvc.CompleteDispatchTx(ctx, tx, orders.CompleteInput{
					OrderID:     target.ID,
					ActorUserID: input.ActorUserID,
				}); cerr != nil {
					return cerr
				}
				orderID = target.ID
				settled[originalOrderID] = orderID
				report.OrdersComplete++
			}

			invoice := buildInvoice(row, orderID, originalOrderID, report.BatchID, input.ActorUserID)
			if cerr := invoiceRepo.CreateInvoice(ctx, invoice); cerr != nil {
				return apperrors.Wrap(apperrors.CodeInternal, cerr, "creating invoice")
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
	report.ErrorReportCSV = renderErrorCSV(report.Errors, nil)

	if err != nil {
		s.ingestStats.IncUpload("invoices", "rejected")
		s.ingestStats.AddRows("invoices", 0, report.RowsRejected)
		return nil, err
	}

	s.ingestStats.IncUpload("invoices", "accepted")
	s.ingestStats.AddRows("invoices", report.RowsProcessed, report.RowsRejected)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"orders_completed": report.OrdersComplete,
		"rows_processed":   report.RowsProcessed,
		"rows_rejected":    report.RowsRejected,
	}), "invoice upload processed")
	return report, nil
}

func buildInvoice(row ingest.InvoiceRow, orderID uuid.UUID, originalOrderID, batchID string, actorID uuid.UUID) *models.Invoice {
	cell := func(name string) string { return row.Cells[name] }
	qty, _ := ingest.ParseQuantity(cell(ingest.ColQuantity))
	billedQty, _ := ingest.ParseQuantity(cell(ingest.ColBilledQuantity))

	return &models.Invoice{
		ID:              uuid.New(),
		InvoiceNumber:   row.InvoiceNumber,
		Narration:       row.Narration,
		OrderID:         &orderID,
		OriginalOrderID: originalOrderID,
		InvoiceDate:     row.InvoiceDate,
		DueDate:         row.DueDate,
		AccountName:     cell(ingest.ColInvAccountName),
		VoucherType:     cell(ingest.ColVoucherType),
		Reference:       cell(ingest.ColReference),
		ItemName:        cell(ingest.ColItemName),
		ItemCode:        cell(ingest.ColItemCode),
		HSNCode:         cell(ingest.ColHSNCode),
		BatchNumber:     cell(ingest.ColBatchNumber),
		Godown:          cell(ingest.ColGodown),
		Unit:            cell(ingest.ColUnit),
		Quantity:        qty,
		BilledQuantity:  billedQty,
		Rate:            ingest.ParseDecimal(cell(ingest.ColRate)),
		DiscountPercent: ingest.ParseDecimal(cell(ingest.ColDiscountPct)),
		DiscountAmount:  ingest.ParseDecimal(cell(ingest.ColDiscountAmount)),
		TaxableValue:    ingest.ParseDecimal(cell(ingest.ColTaxableValue)),
		CGSTRate:        ingest.ParseDecimal(cell(ingest.ColCGSTRate)),
		CGSTAmount:      ingest.ParseDecimal(cell(ingest.ColCGSTAmount)),
		SGSTRate:        ingest.ParseDecimal(cell(ingest.ColSGSTRate)),
		SGSTAmount:      ingest.ParseDecimal(cell(ingest.ColSGSTAmount)),
		IGSTRate:        ingest.ParseDecimal(cell(ingest.ColIGSTRate)),
		IGSTAmount:      ingest.ParseDecimal(cell(ingest.ColIGSTAmount)),
		RoundOff:        ingest.ParseDecimal(cell(ingest.ColRoundOff)),
		TotalAmount:     ingest.ParseDecimal(cell(ingest.ColTotalAmount)),
		UploadBatchID:   batchID,
		UploadedBy:      actorID,
	}
}
