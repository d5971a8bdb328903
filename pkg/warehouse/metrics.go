package warehouse

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Package metrics
// パッケージのメトリクス定義

var (
	movementsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "souko_stock_movements_total",
			Help: "適用された在庫移動の総数（方向別）",
		},
		[]string{"direction"},
	)

	movementRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "souko_stock_movement_rejected_total",
			Help: "拒否された在庫移動の総数（理由別）",
		},
		[]string{"reason"},
	)

	ordersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "souko_purchase_orders_created_total",
			Help: "作成された発注書の総数",
		},
	)

	activeAlerts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "souko_active_alerts",
			Help: "直近のフィード取得時点のアクティブアラート数",
		},
	)
)

func init() {
	prometheus.MustRegister(movementsTotal, movementRejectedTotal, ordersCreatedTotal, activeAlerts)
}
