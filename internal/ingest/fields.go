package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order when coercing spreadsheet date cells.
// Exports come from several ERP versions with inconsistent formats.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006 03:04:05 PM",
	"02/01/2006",
	"01/02/2006",
}

func isBlankCell(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	return v == "" || v == "nan" || v == "n/a" || v == "-"
}

// ParseQuantity coerces a cell into a non-negative integer count. Blank and
// sentinel cells return 0. Decimal notation like "5.0" is accepted.
func ParseQuantity(value string) (int, bool) {
	if isBlankCell(value) {
		return 0, true
	}
	v := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// ParseDecimal coerces a cell into a decimal amount, defaulting to zero for
// blank or unparseable values.
func ParseDecimal(value string) decimal.Decimal {
	if isBlankCell(value) {
		return decimal.Zero
	}
	v := strings.ReplaceAll(strings.TrimSpace(value), ",", "")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate coerces a cell into a time, trying each known export layout.
// Blank cells return nil without error; unparseable cells return nil, false.
func ParseDate(value string) (*time.Time, bool) {
	if isBlankCell(value) {
		return nil, true
	}
	v := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, true
		}
	}
	return nil, false
}
