package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RegistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	AuthenticationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_authentications_total",
			Help: "Total number of password authentications by outcome",
		},
		[]string{"outcome"},
	)

	PasswordHashDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auth_password_hash_duration_seconds",
			Help:    "Duration of bcrypt hash and verify operations in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	TokenValidationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Total number of session token validations",
		},
	)

	TokenValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_token_validations_failed_total",
			Help: "Total number of failed session token validations",
		},
	)
)
