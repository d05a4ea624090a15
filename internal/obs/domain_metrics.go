package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// InvoicesIssuedTotal counts invoices created by status outcome.
	InvoicesIssuedTotal *prometheus.CounterVec
	// InvoiceStatusTotal counts invoice status transitions.
	InvoiceStatusTotal *prometheus.CounterVec
	// OrdersSubmittedTotal counts checkout submissions by result.
	OrdersSubmittedTotal *prometheus.CounterVec
	// StockMovementsTotal counts recorded stock movements by type.
	StockMovementsTotal *prometheus.CounterVec
	// StockRejectionsTotal counts stock decrements rejected for insufficient quantity.
	StockRejectionsTotal prometheus.Counter
	// LowStockProducts tracks the current number of low or out-of-stock products.
	LowStockProducts prometheus.Gauge
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		InvoicesIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoices_issued_total",
			Help:      "Count of invoices created by outcome.",
		}, []string{"result"})
		InvoiceStatusTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_status_total",
			Help:      "Count of invoice status transitions.",
		}, []string{"status"})
		OrdersSubmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Count of checkout submissions by result.",
		}, []string{"result"})
		StockMovementsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_movements_total",
			Help:      "Count of recorded stock movements by type.",
		}, []string{"type"})
		StockRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_rejections_total",
			Help:      "Number of stock decrements rejected for insufficient quantity.",
		})
		LowStockProducts = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "low_stock_products",
			Help:      "Current number of active products at or below their minimum stock level.",
		})

		mustRegisterCollector(reg, InvoicesIssuedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoicesIssuedTotal = v
			}
		})
		mustRegisterCollector(reg, InvoiceStatusTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				InvoiceStatusTotal = v
			}
		})
		mustRegisterCollector(reg, OrdersSubmittedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrdersSubmittedTotal = v
			}
		})
		mustRegisterCollector(reg, StockMovementsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				StockMovementsTotal = v
			}
		})
		mustRegisterCollector(reg, StockRejectionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				StockRejectionsTotal = v
			}
		})
		mustRegisterCollector(reg, LowStockProducts, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Gauge); ok {
				LowStockProducts = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
