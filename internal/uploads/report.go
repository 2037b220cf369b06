package uploads

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warelinehq/wareline-backend/internal/ingest"
)

// Report summarizes one upload: what was persisted, what was rejected, and a
// CSV rendering of the rejects that clients can offer as a download. Warnings
// cover rows that landed despite a soft problem; they do not count as
// rejections.
type Report struct {
	BatchID        string            `json:"batch_id"`
	RowsProcessed  int               `json:"rows_processed"`
	RowsRejected   int               `json:"rows_rejected"`
	OrdersCreated  int               `json:"orders_created,omitempty"`
	OrdersComplete int               `json:"orders_completed,omitempty"`
	Errors         []ingest.RowError `json:"errors,omitempty"`
	Warnings       []ingest.RowError `json:"warnings,omitempty"`
	ErrorReportCSV string            `json:"error_report_csv,omitempty"`
}

// NewBatchID builds the upload batch identifier stamped onto every row the
// upload touches.
func NewBatchID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("BATCH_%s_%s", time.Now().UTC().Format("20060102150405"), suffix)
}

func renderErrorCSV(errs, warnings []ingest.RowError) string {
	if len(errs) == 0 && len(warnings) == 0 {
		return ""
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"row_number", "severity", "reason"})
	for _, e := range errs {
		_ = w.Write([]string{strconv.Itoa(e.RowNumber), "error", e.Reason})
	}
	for _, e := range warnings {
		_ = w.Write([]string{strconv.Itoa(e.RowNumber), "warning", e.Reason})
	}
	w.Flush()
	return buf.String()
}
