// Package obs holds process-wide observability counters.
package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})

	AuthzDenialsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_authz_denials_total",
		Help: "Authorization denials at the decision point.",
	})

	ShootsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_shoots_created_total",
		Help: "Shoots created by category.",
	}, []string{"category"})

	PaymentsRecordedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_payments_recorded_total",
		Help: "Payments recorded by method.",
	}, []string{"method"})

	ShootCodeRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studio_shoot_code_retries_total",
		Help: "Shoot code allocations retried after a uniqueness conflict.",
	})
)
