// Package services – domain metrics
//
// Prometheus counters for the business events this service exists for.
// HTTP-level metrics (latency, status codes) live in the middleware package;
// these track the domain itself.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// issuesCreated counts successfully created issues.
	issuesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "issues_created_total",
		Help: "Total number of issues created.",
	})

	// issuesResolved counts successful Open -> Resolved transitions.
	issuesResolved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "issues_resolved_total",
		Help: "Total number of issues resolved.",
	})

	// attachmentsUploaded counts committed attachment URLs by category.
	attachmentsUploaded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attachments_uploaded_total",
		Help: "Total number of attachment URLs committed to issues.",
	}, []string{"category"})

	// orphanedBlobs counts blobs written durably whose URLs were never
	// committed because a later step of the same batch failed.
	orphanedBlobs = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attachment_orphaned_blobs_total",
		Help: "Total number of uploaded blobs left unlinked by a failed batch.",
	})
)

func init() {
	prometheus.MustRegister(issuesCreated, issuesResolved, attachmentsUploaded, orphanedBlobs)
}
