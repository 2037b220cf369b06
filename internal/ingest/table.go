package ingest

import (
	"strings"
	"unicode"

	apperrors "github.com/warelinehq/wareline-backend/pkg/errors"
)

// Table is an in-memory spreadsheet: one header row plus data rows. Rows may
// be ragged; missing trailing cells read as empty strings.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Columns maps wanted column names to their resolved index in the header row.
type Columns map[string]int

// normalizeHeader lowercases and strips spaces and punctuation so headers
// like "Order #", "order#" and "ORDER  #" all resolve to the same key.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range h {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// ResolveColumn finds the index of the wanted column. Matching is attempted
// in three passes: exact, case-insensitive, then normalized (spaces and
// punctuation stripped). Returns -1 when no header matches.
func (t *Table) ResolveColumn(want string) int {
	for i, h := range t.Headers {
		if h == want {
			return i
		}
	}
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(want)) {
			return i
		}
	}
	wantNorm := normalizeHeader(want)
	if wantNorm == "" {
		return -1
	}
	for i, h := range t.Headers {
		if normalizeHeader(h) == wantNorm {
			return i
		}
	}
	return -1
}

// RequireColumns resolves every wanted column, returning a validation error
// naming all of the missing ones at once.
func (t *Table) RequireColumns(wanted ...string) (Columns, error) {
	cols := Columns{}
	var missing []string
	for _, w := range wanted {
		idx := t.ResolveColumn(w)
		if idx < 0 {
			missing = append(missing, w)
			continue
		}
		cols[w] = idx
	}
	if len(missing) > 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "missing required columns").
			WithDetails(map[string]any{"missing_columns": missing})
	}
	return cols, nil
}

// Cell returns the trimmed cell value for the resolved column, or "" when the
// column was not resolved or the row is short.
func (t *Table) Cell(row []string, cols Columns, name string) string {
	idx, ok := cols[name]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// OptionalColumn resolves a column that may legitimately be absent.
func (t *Table) OptionalColumn(cols Columns, name string) {
	if _, ok := cols[name]; ok {
		return
	}
	if idx := t.ResolveColumn(name); idx >= 0 {
		cols[name] = idx
	}
}
