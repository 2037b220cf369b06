package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
)

func TestResolveColumnExactMatch(t *testing.T) {
	tbl := &Table{Headers: []string{"Order #", "Part #", "Order Quantity"}}
	assert.Equal(t, 0, tbl.ResolveColumn("Order #"))
	assert.Equal(t, 2, tbl.ResolveColumn("Order Quantity"))
}

func TestResolveColumnCaseInsensitive(t *testing.T) {
	tbl := &Table{Headers: []string{"ORDER #", "part #"}}
	assert.Equal(t, 0, tbl.ResolveColumn("Order #"))
	assert.Equal(t, 1, tbl.ResolveColumn("Part #"))
}

func TestResolveColumnNormalized(t *testing.T) {
	tbl := &Table{Headers: []string{"order#", "Part  Number", "order_quantity"}}
	assert.Equal(t, 0, tbl.ResolveColumn("Order #"))
	assert.Equal(t, 1, tbl.ResolveColumn("part number"))
	assert.Equal(t, 2, tbl.ResolveColumn("Order Quantity"))
}

func TestResolveColumnMissing(t *testing.T) {
	tbl := &Table{Headers: []string{"Order #"}}
	assert.Equal(t, -1, tbl.ResolveColumn("Part #"))
}

func TestRequireColumnsReportsAllMissing(t *testing.T) {
	tbl := &Table{Headers: []string{"Order #"}}
	_, err := tbl.RequireColumns("Order #", "Part #", "Order Quantity")
	require.Error(t, err)

	typed := apperrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, apperrors.CodeValidation, typed.Code())

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	missing, ok := details["missing_columns"].([]string)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"Part #", "Order Quantity"}, missing)
}

func TestCellHandlesShortRows(t *testing.T) {
	tbl := &Table{Headers: []string{"A", "B", "C"}}
	cols, err := tbl.RequireColumns("A", "B", "C")
	require.NoError(t, err)

	row := []string{"x"}
	assert.Equal(t, "x", tbl.Cell(row, cols, "A"))
	assert.Equal(t, "", tbl.Cell(row, cols, "B"))
	assert.Equal(t, "", tbl.Cell(row, cols, "C"))
}
