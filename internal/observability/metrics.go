// Package observability provides Prometheus metrics for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SubmissionsCreated counts accepted submit operations by kind.
	SubmissionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devvault_submissions_created_total",
		Help: "Total number of submissions created, by kind",
	}, []string{"kind"})

	// ModerationDecisions counts admin decisions by kind and outcome.
	ModerationDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devvault_moderation_decisions_total",
		Help: "Total number of moderation decisions, by kind and outcome",
	}, []string{"kind", "outcome"})

	// ModerationConflicts counts decisions lost to a concurrent decision
	// on the same submission.
	ModerationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "devvault_moderation_conflicts_total",
		Help: "Total number of moderation decisions rejected because the submission was already decided",
	})
)
