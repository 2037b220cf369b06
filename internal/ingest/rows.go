package ingest

import (
	"fmt"
	"time"
)

// Column names recognized in order exports.
const (
	ColOrderNumber      = "Order #"
	ColPartNumber       = "Part #"
	ColOrderQuantity    = "Order Quantity"
	ColAccountName      = "Account Name"
	ColCashCustomerName = "Cash Customer Name"
	ColOrderDate        = "Order Date"
	ColPartDescription  = "Part Description"
	ColMRP              = "MRP"

	// colDateFallback covers exports that label the order date column "Date".
	colDateFallback = "Date"
)

// Column names recognized in invoice exports.
const (
	ColInvoiceNumber   = "Invoice Number"
	ColNarration       = "Narration"
	ColInvoiceDate     = "Invoice Date"
	ColDueDate         = "Due Date"
	ColInvAccountName  = "Account Name"
	ColVoucherType     = "Voucher Type"
	ColReference       = "Reference"
	ColItemName        = "Item Name"
	ColItemCode        = "Item Code"
	ColHSNCode         = "HSN Code"
	ColBatchNumber     = "Batch Number"
	ColGodown          = "Godown"
	ColUnit            = "Unit"
	ColQuantity        = "Quantity"
	ColBilledQuantity  = "Billed Quantity"
	ColRate            = "Rate"
	ColDiscountPct     = "Discount %"
	ColDiscountAmount  = "Discount Amount"
	ColTaxableValue    = "Taxable Value"
	ColCGSTRate        = "CGST Rate"
	ColCGSTAmount      = "CGST Amount"
	ColSGSTRate        = "SGST Rate"
	ColSGSTAmount      = "SGST Amount"
	ColIGSTRate        = "IGST Rate"
	ColIGSTAmount      = "IGST Amount"
	ColRoundOff        = "Round Off"
	ColTotalAmount     = "Total Amount"
)

// RowError is a row-level rejection carried into the upload error report.
type RowError struct {
	RowNumber int    `json:"row_number"`
	Reason    string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.RowNumber, e.Reason)
}

// OrderRow is one parsed line of an order export.
type OrderRow struct {
	RowNumber       int
	OriginalOrderID string
	PartNumber      string
	PartDescription string
	Quantity        int
	MRP             string
	DealerName      string
	OrderDate       *time.Time
}

// OrderTable holds the resolved columns of an order export plus its rows.
// Errors rejected their row; Warnings did not.
type OrderTable struct {
	Rows     []OrderRow
	Errors   []RowError
	Warnings []RowError
}

// ParseOrderTable validates required columns then extracts typed rows.
// Row-level failures are collected, not fatal; the caller decides whether
// enough rows survived to commit.
func ParseOrderTable(t *Table) (*OrderTable, error) {
	cols, err := t.RequireColumns(ColOrderNumber, ColPartNumber, ColOrderQuantity)
	if err != nil {
		return nil, err
	}
	t.OptionalColumn(cols, ColAccountName)
	t.OptionalColumn(cols, ColCashCustomerName)
	t.OptionalColumn(cols, ColOrderDate)
	if _, ok := cols[ColOrderDate]; !ok {
		if idx := t.ResolveColumn(colDateFallback); idx >= 0 {
			cols[ColOrderDate] = idx
		}
	}
	t.OptionalColumn(cols, ColPartDescription)
	t.OptionalColumn(cols, ColMRP)

	out := &OrderTable{}
	for i, row := range t.Rows {
		rowNum := i + 2 // 1-based, after the header row

		orderID := t.Cell(row, cols, ColOrderNumber)
		if orderID == "" {
			out.Errors = append(out.Errors, RowError{RowNumber: rowNum, Reason: "missing order number"})
			continue
		}
		part := t.Cell(row, cols, ColPartNumber)
		if part == "" {
			out.Errors = append(out.Errors, RowError{RowNumber: rowNum, Reason: "missing part number"})
			continue
		}
		qty, ok := ParseQuantity(t.Cell(row, cols, ColOrderQuantity))
		if !ok {
			out.Errors = append(out.Errors, RowError{RowNumber: rowNum, Reason: "invalid order quantity"})
			continue
		}
		if qty <= 0 {
			out.Errors = append(out.Errors, RowError{RowNumber: rowNum, Reason: "order quantity must be positive"})
			continue
		}

		dealer := t.Cell(row, cols, ColAccountName)
		if dealer == "" {
			dealer = t.Cell(row, cols, ColCashCustomerName)
		}

		// an unreadable date does not sink the row, the order just keeps a
		// null date
		orderDate, ok := ParseDate(t.Cell(row, cols, ColOrderDate))
		if !ok {
			out.Warnings = append(out.Warnings, RowError{RowNumber: rowNum, Reason: "unrecognized order date, stored without one"})
			orderDate = nil
		}

		out.Rows = append(out.Rows, OrderRow{
			RowNumber:       rowNum,
			OriginalOrderID: orderID,
			PartNumber:      part,
			PartDescription: t.Cell(row, cols, ColPartDescription),
			Quantity:        qty,
			MRP:             t.Cell(row, cols, ColMRP),
			DealerName:      dealer,
			OrderDate:       orderDate,
		})
	}
	return out, nil
}

// InvoiceRow is one parsed line of an invoice export. Monetary cells stay as
// raw strings here; the upload service coerces them with safe defaults.
type InvoiceRow struct {
	RowNumber     int
	InvoiceNumber string
	Narration     string
	Cells         map[string]string
	InvoiceDate   *time.Time
	DueDate       *time.Time
}

// InvoiceTable holds the parsed rows of an invoice export.
type InvoiceTable struct {
	Rows   []InvoiceRow
	Errors []RowError
}

var invoiceOptionalColumns = []string{
	ColInvoiceDate, ColDueDate, ColInvAccountName, ColVoucherType, ColReference,
	ColItemName, ColItemCode, ColHSNCode, ColBatchNumber, ColGodown, ColUnit,
	ColQuantity, ColBilledQuantity, ColRate, ColDiscountPct, ColDiscountAmount,
	ColTaxableValue, ColCGSTRate, ColCGSTAmount, ColSGSTRate, ColSGSTAmount,
	ColIGSTRate, ColIGSTAmount, ColRoundOff, ColTotalAmount,
}

// ParseInvoiceTable validates required columns then extracts typed rows.
func ParseInvoiceTable(t *Table) (*InvoiceTable, error) {
	cols, err := t.RequireColumns(ColInvoiceNumber, ColNarration)
	if err != nil {
		return nil, err
	}
	for _, name := range invoiceOptionalColumns {
		t.OptionalColumn(cols, name)
	}

	out := &InvoiceTable{}
	for i, row := range t.Rows {
		rowNum := i + 2

		invoiceNumber := t.Cell(row, cols, ColInvoiceNumber)
		if invoiceNumber == "" {
			out.Errors = append(out.Errors, RowError{RowNumber: rowNum, Reason: "missing invoice number"})
			continue
		}
		narration := t.Cell(row, cols, ColNarration)
		if narration == "" {
			out.Errors = append(out.Errors, RowError{RowNumber: rowNum, Reason: "missing narration"})
			continue
		}

		invoiceDate, ok := ParseDate(t.Cell(row, cols, ColInvoiceDate))
		if !ok {
			invoiceDate = nil
		}
		dueDate, ok := ParseDate(t.Cell(row, cols, ColDueDate))
		if !ok {
			dueDate = nil
		}

		cells := map[string]string{}
		for _, name := range invoiceOptionalColumns {
			cells[name] = t.Cell(row, cols, name)
		}

		out.Rows = append(out.Rows, InvoiceRow{
			RowNumber:     rowNum,
			InvoiceNumber: invoiceNumber,
			Narration:     narration,
			Cells:         cells,
			InvoiceDate:   invoiceDate,
			DueDate:       dueDate,
		})
	}
	return out, nil
}
