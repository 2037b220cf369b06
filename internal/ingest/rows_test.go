package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderTable(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order #", "Part #", "Order Quantity", "Account Name", "Order Date"},
		Rows: [][]string{
			{"SO-1001", "SKU-1", "5", "Acme Traders", "2025-03-15"},
			{"SO-1001", "SKU-2", "3", "Acme Traders", "2025-03-15"},
		},
	}
	parsed, err := ParseOrderTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 2)
	assert.Empty(t, parsed.Errors)

	first := parsed.Rows[0]
	assert.Equal(t, "SO-1001", first.OriginalOrderID)
	assert.Equal(t, "SKU-1", first.PartNumber)
	assert.Equal(t, 5, first.Quantity)
	assert.Equal(t, "Acme Traders", first.DealerName)
	require.NotNil(t, first.OrderDate)
}

func TestParseOrderTableMissingRequiredColumn(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order #", "Part #"},
		Rows:    [][]string{{"SO-1", "SKU-1"}},
	}
	_, err := ParseOrderTable(tbl)
	require.Error(t, err)
}

func TestParseOrderTableCashCustomerFallback(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order #", "Part #", "Order Quantity", "Account Name", "Cash Customer Name"},
		Rows: [][]string{
			{"SO-1", "SKU-1", "2", "", "Walk-in Customer"},
		},
	}
	parsed, err := ParseOrderTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, "Walk-in Customer", parsed.Rows[0].DealerName)
}

func TestParseOrderTableRowLevelErrors(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order #", "Part #", "Order Quantity"},
		Rows: [][]string{
			{"", "SKU-1", "5"},
			{"SO-1", "", "5"},
			{"SO-1", "SKU-1", "abc"},
			{"SO-1", "SKU-1", "0"},
			{"SO-2", "SKU-2", "7"},
		},
	}
	parsed, err := ParseOrderTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	assert.Equal(t, "SO-2", parsed.Rows[0].OriginalOrderID)
	require.Len(t, parsed.Errors, 4)
	assert.Equal(t, 2, parsed.Errors[0].RowNumber)
	assert.Equal(t, "missing order number", parsed.Errors[0].Reason)
}

func TestParseOrderTableKeepsRowWithUnreadableDate(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order #", "Part #", "Order Quantity", "Order Date"},
		Rows: [][]string{
			{"SO-1", "SKU-1", "5", "31st of Feb 2024"},
		},
	}
	parsed, err := ParseOrderTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	assert.Nil(t, parsed.Rows[0].OrderDate)
	assert.Empty(t, parsed.Errors)
	require.Len(t, parsed.Warnings, 1)
	assert.Equal(t, 2, parsed.Warnings[0].RowNumber)
}

func TestParseOrderTableAcceptsDateHeaderFallback(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Order #", "Part #", "Order Quantity", "Date"},
		Rows: [][]string{
			{"SO-1", "SKU-1", "5", "2025-03-15"},
		},
	}
	parsed, err := ParseOrderTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	require.NotNil(t, parsed.Rows[0].OrderDate)
}

func TestParseOrderTableFuzzyHeaders(t *testing.T) {
	tbl := &Table{
		Headers: []string{"order#", "PART NUMBER", "Order  Quantity"},
		Rows:    [][]string{{"SO-9", "SKU-9", "1"}},
	}
	parsed, err := ParseOrderTable(tbl)
	require.Error(t, err) // "PART NUMBER" does not normalize to "Part #"
	_ = parsed

	tbl = &Table{
		Headers: []string{"order#", "part#", "orderquantity"},
		Rows:    [][]string{{"SO-9", "SKU-9", "1"}},
	}
	parsed, err = ParseOrderTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
}

func TestParseInvoiceTable(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Invoice Number", "Narration", "Rate", "Quantity", "Total Amount"},
		Rows: [][]string{
			{"INV-77", "SO-1001", "10.50", "5", "52.50"},
		},
	}
	parsed, err := ParseInvoiceTable(tbl)
	require.NoError(t, err)
	require.Len(t, parsed.Rows, 1)
	row := parsed.Rows[0]
	assert.Equal(t, "INV-77", row.InvoiceNumber)
	assert.Equal(t, "SO-1001", row.Narration)
	assert.Equal(t, "10.50", row.Cells[ColRate])
	assert.Equal(t, "5", row.Cells[ColQuantity])
}

func TestParseInvoiceTableMissingColumns(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Invoice Number"},
		Rows:    [][]string{{"INV-1"}},
	}
	_, err := ParseInvoiceTable(tbl)
	require.Error(t, err)
}

func TestParseInvoiceTableRowErrors(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Invoice Number", "Narration"},
		Rows: [][]string{
			{"", "SO-1"},
			{"INV-1", ""},
			{"INV-2", "SO-2"},
		},
	}
	parsed, err := ParseInvoiceTable(tbl)
	require.NoError(t, err)
	assert.Len(t, parsed.Rows, 1)
	assert.Len(t, parsed.Errors, 2)
}
