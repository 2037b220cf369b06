package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
)

// ReadTable sniffs the payload content type and parses it into a Table.
// CSV and XLSX are supported; anything else is rejected. For XLSX only the
// first sheet is read.
func ReadTable(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "reading upload payload")
	}
	if len(data) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "upload payload is empty")
	}

	mtype := mimetype.Detect(data)
	switch {
	case mtype.Is("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"):
		return readXLSX(data)
	case mtype.Is("text/csv") || mtype.Is("text/plain"):
		return readCSV(data)
	default:
		return nil, apperrors.New(apperrors.CodeValidation, "unsupported file type").
			WithDetails(map[string]any{"detected": mtype.String()})
	}
}

func readCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "parsing csv")
	}
	return tableFromRecords(records)
}

func readXLSX(data []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "parsing xlsx")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "xlsx has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, err, "reading xlsx rows")
	}
	return tableFromRecords(rows)
}

func tableFromRecords(records [][]string) (*Table, error) {
	// skip leading fully-blank rows before the header
	start := 0
	for start < len(records) && isBlankRow(records[start]) {
		start++
	}
	if start >= len(records) {
		return nil, apperrors.New(apperrors.CodeValidation, "upload has no header row")
	}

	headers := make([]string, len(records[start]))
	for i, h := range records[start] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows [][]string
	for _, rec := range records[start+1:] {
		if isBlankRow(rec) {
			continue
		}
		rows = append(rows, rec)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
