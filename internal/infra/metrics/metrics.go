package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Transactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_transactions_total",
		Help: "Completed count-update transactions by operation.",
	}, []string{"operation"})

	SerialRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_serial_rejects_total",
		Help: "Serial identifiers rejected during collection, by reason.",
	}, []string{"reason"})

	Saves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "stock_workbook_saves_total",
		Help: "Whole-workbook persists.",
	})
)
