package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Files written to disk by kind: image, base64, scene, icon
	Uploads *prometheus.CounterVec

	// Rows inserted or removed by the system icon reconciliation
	IconSyncChanges *prometheus.CounterVec

	// Create/update/delete/reorder operations on the content tree
	HierarchyMutations *prometheus.CounterVec
}

var globalMetrics = &Metrics{
	Uploads: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panotour_uploads_total",
		Help: "Total number of uploaded files by kind",
	}, []string{"kind"}),

	IconSyncChanges: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panotour_icon_sync_changes_total",
		Help: "Total number of system icon rows changed by reconciliation",
	}, []string{"op"}), // op: "insert" or "delete"

	HierarchyMutations: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panotour_hierarchy_mutations_total",
		Help: "Total number of content hierarchy mutations by level and operation",
	}, []string{"level", "op"}),
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordUpload counts a stored file
func RecordUpload(kind string) {
	globalMetrics.Uploads.WithLabelValues(kind).Inc()
}

func recordMutation(level, op string) {
	globalMetrics.HierarchyMutations.WithLabelValues(level, op).Inc()
}

func recordIconSync(op string, n int) {
	if n > 0 {
		globalMetrics.IconSyncChanges.WithLabelValues(op).Add(float64(n))
	}
}
