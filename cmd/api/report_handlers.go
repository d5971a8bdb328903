package main

import (
	"net/http"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// InventorySummaryReport handles GET /reports/inventory-summary
// 在庫サマリーレポートを処理
func (h *Handlers) InventorySummaryReport(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reporter.InventorySummary(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, summary)
}

// LowStockReport handles GET /reports/low-stock
// 低在庫レポートを処理
func (h *Handlers) LowStockReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reporter.LowStock(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, report)
}

// TurnoverReport handles GET /reports/turnover?period=7d|30d|90d
// 回転率レポートを処理
func (h *Handlers) TurnoverReport(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	items, err := h.reporter.Turnover(r.Context(), period)
	if err != nil {
		h.sendError(w, err)
		return
	}
	if items == nil {
		items = []warehouse.TurnoverItem{}
	}

	h.sendSuccess(w, http.StatusOK, map[string]interface{}{
		"period": periodLabel(period),
		"items":  items,
	})
}

// periodLabel normalizes the period token for the response payload
// レスポンス用に期間トークンを正規化
func periodLabel(period string) string {
	switch period {
	case "7d", "90d":
		return period
	default:
		return "30d"
	}
}
