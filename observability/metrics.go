// Package observability holds the club hub's metrics.
// file: observability/metrics.go
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	activitiesPosted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "english_hub",
		Subsystem: "feed",
		Name:      "activities_posted_total",
		Help:      "Activities inserted through the gateway, by club.",
	}, []string{"club_id"})
	commentsPosted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "english_hub",
		Subsystem: "comments",
		Name:      "comments_posted_total",
		Help:      "Comments inserted through the gateway.",
	})
	uploadsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "english_hub",
		Subsystem: "feed",
		Name:      "uploads_rejected_total",
		Help:      "Uploads rejected by client-side validation, by reason.",
	}, []string{"reason"})
	gatewayFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "english_hub",
		Subsystem: "gateway",
		Name:      "failures_total",
		Help:      "Failed gateway calls, by operation.",
	}, []string{"op"})
	activeWorkspaces = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "english_hub",
		Subsystem: "web",
		Name:      "active_workspaces",
		Help:      "Viewer workspaces currently held in memory.",
	})
)

func init() {
	prometheus.MustRegister(activitiesPosted, commentsPosted, uploadsRejected, gatewayFailures, activeWorkspaces)
}

// RecordActivityPosted counts a successful activity insert.
func RecordActivityPosted(clubID string) {
	activitiesPosted.WithLabelValues(clubID).Inc()
	publish("ActivitiesPosted", 1, "Count", clubID)
}

// RecordCommentPosted counts a successful comment insert.
func RecordCommentPosted() {
	commentsPosted.Inc()
	publish("CommentsPosted", 1, "Count", "")
}

// RecordUploadRejected counts a validation rejection.
func RecordUploadRejected(reason string) {
	uploadsRejected.WithLabelValues(reason).Inc()
}

// RecordGatewayFailure counts a failed gateway call.
func RecordGatewayFailure(op string) {
	gatewayFailures.WithLabelValues(op).Inc()
	publish("GatewayFailures", 1, "Count", "")
}

// SetActiveWorkspaces reports the number of live viewer workspaces.
func SetActiveWorkspaces(n int) {
	activeWorkspaces.Set(float64(n))
}
