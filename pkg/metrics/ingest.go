package metrics

import "github.com/prometheus/client_golang/prometheus"

// IngestMetrics records spreadsheet upload outcomes per upload kind.
type IngestMetrics struct {
	rowsProcessed *prometheus.CounterVec
	rowsRejected  *prometheus.CounterVec
	uploads       *prometheus.CounterVec
}

// NewIngestMetrics registers the ingest metrics on the provided registerer.
func NewIngestMetrics(reg prometheus.Registerer) *IngestMetrics {
	if reg == nil {
		return &IngestMetrics{}
	}
	rowsProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_processed_total",
		Help: "Spreadsheet rows successfully persisted.",
	}, []string{"kind"})
	rowsRejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_rows_rejected_total",
		Help: "Spreadsheet rows rejected with a row-level error.",
	}, []string{"kind"})
	uploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_uploads_total",
		Help: "Upload requests by kind and outcome.",
	}, []string{"kind", "outcome"})
	reg.MustRegister(rowsProcessed, rowsRejected, uploads)
	return &IngestMetrics{
		rowsProcessed: rowsProcessed,
		rowsRejected:  rowsRejected,
		uploads:       uploads,
	}
}

// AddRows records row outcomes for one upload.
func (i *IngestMetrics) AddRows(kind string, processed, rejected int) {
	if i == nil || i.rowsProcessed == nil {
		return
	}
	i.rowsProcessed.WithLabelValues(normalizeLabel(kind)).Add(float64(processed))
	i.rowsRejected.WithLabelValues(normalizeLabel(kind)).Add(float64(rejected))
}

// IncUpload records one upload request outcome.
func (i *IngestMetrics) IncUpload(kind, outcome string) {
	if i == nil || i.uploads == nil {
		return
	}
	i.uploads.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}
