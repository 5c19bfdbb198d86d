package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MessagesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_created_total",
			Help: "Total number of messages created",
		},
	)

	MessagesMarkedRead = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "messages_marked_read_total",
			Help: "Total number of read receipts recorded",
		},
	)
)
