package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// ListInventory handles GET /inventory
// 在庫一覧取得を処理
func (h *Handlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	filter := warehouse.StockFilter{
		WarehouseID: r.URL.Query().Get("warehouse_id"),
		ProductID:   r.URL.Query().Get("product_id"),
	}

	details, err := h.ledger.List(r.Context(), filter)
	if err != nil {
		h.sendError(w, err)
		return
	}
	if details == nil {
		details = []warehouse.StockDetail{}
	}

	h.sendSuccess(w, http.StatusOK, details)
}

// ApplyMovement handles POST /inventory/movement
// 在庫移動適用を処理
func (h *Handlers) ApplyMovement(w http.ResponseWriter, r *http.Request) {
	var req warehouse.MovementRequest
	if err := decodeBody(r, &req); err != nil {
		h.sendError(w, err)
		return
	}
	req.AppliedBy = UserID(r.Context())

	stock, err := h.ledger.ApplyMovement(r.Context(), req)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, stock)
}

// updateLevelsRequest carries the optional direct replacements.
// nilのフィールドは変更されない
type updateLevelsRequest struct {
	Quantity     *int64 `json:"quantity"`
	ReorderLevel *int64 `json:"reorder_level"`
}

// UpdateLevels handles PUT /inventory/{id}
// 在庫水準の直接更新を処理
func (h *Handlers) UpdateLevels(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req updateLevelsRequest
	if err := decodeBody(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	stock, err := h.ledger.SetLevels(r.Context(), vars["id"], req.Quantity, req.ReorderLevel)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, stock)
}
