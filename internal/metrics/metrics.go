// Package metrics exposes the client's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connects counts successful wallet connections per connector.
	Connects = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sticp",
		Name:      "wallet_connects_total",
		Help:      "Number of successful wallet connections",
	}, []string{"connector"})

	// ConnectFailures counts failed wallet connections per connector.
	ConnectFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sticp",
		Name:      "wallet_connect_failures_total",
		Help:      "Number of failed wallet connections",
	}, []string{"connector"})

	// Transfers counts transfers submitted through the active connector.
	Transfers = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sticp",
		Name:      "wallet_transfers_total",
		Help:      "Number of submitted transfers",
	}, []string{"connector"})

	// TransferFailures counts transfers that resolved with an error.
	TransferFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sticp",
		Name:      "wallet_transfer_failures_total",
		Help:      "Number of failed transfers",
	}, []string{"connector"})
)
