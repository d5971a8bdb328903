package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// CreateOrder handles POST /purchase-orders
// 発注書作成を処理
func (h *Handlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req warehouse.CreateOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	po, err := h.orders.Create(r.Context(), req)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusCreated, po)
}

// ListOrders handles GET /purchase-orders
// 発注書一覧取得を処理
func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}
	if orders == nil {
		orders = []warehouse.PurchaseOrder{}
	}

	h.sendSuccess(w, http.StatusOK, orders)
}

// GetOrder handles GET /purchase-orders/{id}
// 発注書取得を処理
func (h *Handlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	po, err := h.orders.Get(r.Context(), vars["id"])
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, po)
}

// updateOrderStatusRequest carries the target workflow status
// 更新先のワークフローステータス
type updateOrderStatusRequest struct {
	Status warehouse.OrderStatus `json:"status"`
}

// UpdateOrderStatus handles PATCH /purchase-orders/{id}/status
// 発注ステータス更新を処理
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req updateOrderStatusRequest
	if err := decodeBody(r, &req); err != nil {
		h.sendError(w, err)
		return
	}

	po, err := h.orders.UpdateStatus(r.Context(), vars["id"], req.Status)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, po)
}
