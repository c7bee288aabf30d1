// Package metrics defines all custom Prometheus metrics for the eChallan
// enforcement platform. It is the single source of truth for metric names,
// labels, and help strings; metrics auto-register with the default registry
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "echallan"

// DetectionsProcessedTotal counts detections that completed processing.
// Labels:
//   - violation_type: e.g. "Red Light Jump"
//   - camera_id: reporting camera
var DetectionsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "detections_processed_total",
		Help:      "Total number of plate detections successfully processed.",
	},
	[]string{"violation_type", "camera_id"},
)

// DetectionsErrorsTotal counts detections that failed processing.
// Label:
//   - reason: short failure description (e.g. "registry_lookup", "insert_failed")
var DetectionsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "detections_errors_total",
		Help:      "Total number of plate detections that failed processing.",
	},
	[]string{"reason"},
)

// DetectionsDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped), "miss" (new detection), or "error"
var DetectionsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "detections_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result.",
	},
	[]string{"result"},
)

// DetectionsQueueDepth tracks events waiting in each dispatcher worker channel.
var DetectionsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "detections_queue_depth",
		Help:      "Current number of detections pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// DetectionProcessingDuration measures end-to-end processing time per detection.
var DetectionProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "detection_processing_duration_seconds",
		Help:      "Duration of detection processing from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"violation_type"},
)

// ChallansPaidTotal counts settled challans by violation type.
var ChallansPaidTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "challans_paid_total",
		Help:      "Total number of challans settled, by violation type.",
	},
	[]string{"violation_type"},
)

// RevenueCollected accumulates fine revenue in rupees.
var RevenueCollected = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revenue_collected_rupees_total",
		Help:      "Total fine revenue collected, in rupees.",
	},
)
