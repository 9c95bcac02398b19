// Package metrics exposes the service's Prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesCreated counts expenses recorded across all houses.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housemate_expenses_created_total",
		Help: "Number of expenses created.",
	})

	// PaymentsRecorded counts direct payments between members.
	PaymentsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housemate_payments_recorded_total",
		Help: "Number of payments recorded.",
	})

	// BalancesSettled counts balance rows deleted after settling to zero.
	BalancesSettled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housemate_balances_settled_total",
		Help: "Number of pairwise balances settled below the epsilon threshold.",
	})

	// RecurringItemsRegenerated counts shopping items recreated by the sweep.
	RecurringItemsRegenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housemate_recurring_items_regenerated_total",
		Help: "Number of recurring shopping items regenerated by the scheduler.",
	})

	// DuplicateWarnings counts similar-item warnings raised on item creation.
	DuplicateWarnings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "housemate_duplicate_item_warnings_total",
		Help: "Number of duplicate recurring item warnings returned to clients.",
	})
)
