package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// CreateProduct handles POST /products
// 商品登録を処理
func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p warehouse.Product
	if err := decodeBody(r, &p); err != nil {
		h.sendError(w, err)
		return
	}

	if err := h.registry.CreateProduct(r.Context(), &p); err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusCreated, p)
}

// ListProducts handles GET /products
// 商品一覧取得を処理
func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.registry.ListProducts(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}
	if products == nil {
		products = []warehouse.Product{}
	}

	h.sendSuccess(w, http.StatusOK, products)
}

// UpdateProduct handles PUT /products/{id}
// 商品更新を処理
func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var p warehouse.Product
	if err := decodeBody(r, &p); err != nil {
		h.sendError(w, err)
		return
	}
	p.ID = vars["id"]

	updated, err := h.registry.UpdateProduct(r.Context(), &p)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, updated)
}

// DeleteProduct handles DELETE /products/{id}
// 商品削除を処理
func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.registry.DeleteProduct(r.Context(), vars["id"]); err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, map[string]string{"id": vars["id"]})
}

// CreateWarehouse handles POST /warehouses
// 倉庫登録を処理
func (h *Handlers) CreateWarehouse(w http.ResponseWriter, r *http.Request) {
	var wh warehouse.Warehouse
	if err := decodeBody(r, &wh); err != nil {
		h.sendError(w, err)
		return
	}

	if err := h.registry.CreateWarehouse(r.Context(), &wh); err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusCreated, wh)
}

// ListWarehouses handles GET /warehouses
// 倉庫一覧取得を処理
func (h *Handlers) ListWarehouses(w http.ResponseWriter, r *http.Request) {
	warehouses, err := h.registry.ListWarehouses(r.Context())
	if err != nil {
		h.sendError(w, err)
		return
	}
	if warehouses == nil {
		warehouses = []warehouse.Warehouse{}
	}

	h.sendSuccess(w, http.StatusOK, warehouses)
}

// UpdateWarehouse handles PUT /warehouses/{id}
// 倉庫更新を処理
func (h *Handlers) UpdateWarehouse(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var wh warehouse.Warehouse
	if err := decodeBody(r, &wh); err != nil {
		h.sendError(w, err)
		return
	}
	wh.ID = vars["id"]

	updated, err := h.registry.UpdateWarehouse(r.Context(), &wh)
	if err != nil {
		h.sendError(w, err)
		return
	}

	h.sendSuccess(w, http.StatusOK, updated)
}
