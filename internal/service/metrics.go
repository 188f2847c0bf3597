package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SalesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_total",
			Help: "Completed sales",
		},
	)

	SalesRevenue = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_sales_revenue",
			Help: "Revenue of completed sales",
		},
	)

	SalesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sales_rejected_total",
			Help: "Sales refused before any stock changed",
		},
		[]string{"reason"},
	)

	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"result"},
	)

	ProductsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_products_imported_total",
			Help: "Products accepted by bulk imports",
		},
		[]string{"format"},
	)

	StorageErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_storage_errors_total",
			Help: "Snapshot writes that failed",
		},
	)
)

// Collectors returns the domain metrics for registration next to the HTTP ones.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		SalesTotal,
		SalesRevenue,
		SalesRejected,
		LoginAttempts,
		ProductsImported,
		StorageErrors,
	}
}
