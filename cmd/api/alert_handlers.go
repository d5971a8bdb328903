package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// ListAlerts handles GET /alerts
// アラートフィード取得を処理
func (h *Handlers) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.alerts.Feed(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}
	if alerts == nil {
		alerts = []warehouse.Alert{}
	}

	h.sendSuccess(w, http.StatusOK, alerts)
}

// AcknowledgeAlert handles POST /alerts/{id}/acknowledge
// アラート確認を処理
func (h *Handlers) AcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	alert, err := h.alerts.Acknowledge(r.Context(), vars["id"], UserID(r.Context()))
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, alert)
}
