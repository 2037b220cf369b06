package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTableCSV(t *testing.T) {
	payload := "Order #,Part #,Order Quantity\nSO-1001,SKU-1,5\nSO-1001,SKU-2,3\n"
	tbl, err := ReadTable(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Equal(t, []string{"Order #", "Part #", "Order Quantity"}, tbl.Headers)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "SO-1001", tbl.Rows[0][0])
}

func TestReadTableSkipsBlankRows(t *testing.T) {
	payload := "\n\nOrder #,Part #,Order Quantity\nSO-1,SKU-1,2\n,,\nSO-2,SKU-2,4\n"
	tbl, err := ReadTable(strings.NewReader(payload))
	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 2)
}

func TestReadTableEmptyPayload(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	require.Error(t, err)
}

func TestReadTableRejectsBinaryGarbage(t *testing.T) {
	_, err := ReadTable(strings.NewReader("\x00\x01\x02\x03binarystuff"))
	require.Error(t, err)
}
