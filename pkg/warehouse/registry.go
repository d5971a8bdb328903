package warehouse

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Registry implements the product and warehouse registries. Plain
// keyed CRUD with uniqueness enforcement; no derived state.
// 商品・倉庫レジストリの実装（単純なCRUD）
type Registry struct {
	storage Storage
	logger  *zap.Logger
}

var (
	_ ProductRegistry   = (*Registry)(nil)
	_ WarehouseRegistry = (*Registry)(nil)
)

// NewRegistry creates a new registry
// 新しいレジストリを作成
func NewRegistry(storage Storage, logger *zap.Logger) *Registry {
	return &Registry{
		storage: storage,
		logger:  logger,
	}
}

// CreateProduct adds a catalog entry. The SKU must be unique.
// 商品を登録（SKUは一意）
func (r *Registry) CreateProduct(ctx context.Context, p *Product) error {
	if err := ValidateProductName(p.Name); err != nil {
		return err
	}
	if err := ValidateSKU(p.SKU); err != nil {
		return err
	}
	if err := ValidatePrice("price", p.Price); err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = NewRecordID()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Specification == nil {
		p.Specification = map[string]string{}
	}

	if err := r.storage.CreateProduct(ctx, p); err != nil {
		if errors.Is(err, ErrDuplicateSKU) {
			return ErrDuplicateSKU
		}
		return NewStorageError("create_product", "商品作成に失敗しました", err)
	}

	r.logger.Info("商品登録完了", zap.String("id", p.ID), zap.String("sku", p.SKU))
	return nil
}

// UpdateProduct replaces the mutable fields of a product
// 商品を更新
func (r *Registry) UpdateProduct(ctx context.Context, p *Product) (*Product, error) {
	if err := ValidateRecordID("id", p.ID); err != nil {
		return nil, err
	}
	if err := ValidateProductName(p.Name); err != nil {
		return nil, err
	}
	if err := ValidateSKU(p.SKU); err != nil {
		return nil, err
	}
	if err := ValidatePrice("price", p.Price); err != nil {
		return nil, err
	}

	p.UpdatedAt = time.Now()
	if err := r.storage.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		if errors.Is(err, ErrDuplicateSKU) {
			return nil, ErrDuplicateSKU
		}
		return nil, NewStorageError("update_product", "商品更新に失敗しました", err)
	}
	return r.storage.GetProduct(ctx, p.ID)
}

// DeleteProduct removes a catalog entry
// 商品を削除
func (r *Registry) DeleteProduct(ctx context.Context, id string) error {
	if err := ValidateRecordID("id", id); err != nil {
		return err
	}
	if err := r.storage.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return NewStorageError("delete_product", "商品削除に失敗しました", err)
	}
	r.logger.Info("商品削除完了", zap.String("id", id))
	return nil
}

// ListProducts returns the whole catalog, newest first
// 商品一覧を新しい順に取得
func (r *Registry) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := r.storage.ListProducts(ctx)
	if err != nil {
		return nil, NewStorageError("list_products", "商品一覧取得に失敗しました", err)
	}
	return products, nil
}

// CreateWarehouse registers a warehouse. Name is required; warehouses
// are soft-disabled via is_active, never hard-deleted.
// 倉庫を登録（削除はis_activeによるソフト無効化のみ）
func (r *Registry) CreateWarehouse(ctx context.Context, w *Warehouse) error {
	if err := ValidateWarehouseName(w.Name); err != nil {
		return err
	}

	if w.ID == "" {
		w.ID = NewRecordID()
	}
	w.CreatedAt = time.Now()

	if err := r.storage.CreateWarehouse(ctx, w); err != nil {
		return NewStorageError("create_warehouse", "倉庫作成に失敗しました", err)
	}

	r.logger.Info("倉庫登録完了", zap.String("id", w.ID), zap.String("name", w.Name))
	return nil
}

// UpdateWarehouse replaces the mutable fields of a warehouse
// 倉庫を更新
func (r *Registry) UpdateWarehouse(ctx context.Context, w *Warehouse) (*Warehouse, error) {
	if err := ValidateRecordID("id", w.ID); err != nil {
		return nil, err
	}
	if err := ValidateWarehouseName(w.Name); err != nil {
		return nil, err
	}

	if err := r.storage.UpdateWarehouse(ctx, w); err != nil {
		if errors.Is(err, ErrWarehouseNotFound) {
			return nil, ErrWarehouseNotFound
		}
		return nil, NewStorageError("update_warehouse", "倉庫更新に失敗しました", err)
	}
	return r.storage.GetWarehouse(ctx, w.ID)
}

// ListWarehouses returns all warehouses
// 倉庫一覧を取得
func (r *Registry) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	warehouses, err := r.storage.ListWarehouses(ctx)
	if err != nil {
		return nil, NewStorageError("list_warehouses", "倉庫一覧取得に失敗しました", err)
	}
	return warehouses, nil
}
