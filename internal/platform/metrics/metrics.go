package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "cart_mutations_total",
		Help:      "Cart operations by kind (add, change, remove).",
	}, []string{"op"})

	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by payment method and final state.",
	}, []string{"method", "state"})

	SaleAmount = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pos",
		Name:      "sale_amount",
		Help:      "Grand total of emitted sales.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method"})

	SaleTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pos",
		Name:      "sale_transitions_total",
		Help:      "Ledger status transitions (settle, cancel) by outcome.",
	}, []string{"transition", "outcome"})
)
