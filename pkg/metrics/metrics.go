// Package metrics expone los contadores Prometheus del servicio.
// El endpoint /metrics los publica junto a las métricas estándar de Go.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SalesCreated total de ventas registradas con éxito.
	SalesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventapro_sales_created_total",
		Help: "Total de ventas registradas.",
	})

	// SalesCancelled total de ventas canceladas.
	SalesCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ventapro_sales_cancelled_total",
		Help: "Total de ventas canceladas.",
	})

	// StockMovements total de movimientos de stock por tipo.
	StockMovements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ventapro_stock_movements_total",
		Help: "Total de movimientos de stock registrados, por tipo.",
	}, []string{"type"})

	// LowStockProducts productos bajo mínimo en la última revisión del monitor.
	LowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ventapro_low_stock_products",
		Help: "Productos con stock por debajo del mínimo.",
	})
)
