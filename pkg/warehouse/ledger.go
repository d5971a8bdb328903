package warehouse

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Ledger implements the StockLedger interface. Each operation touches a
// single stock record; cross-record consistency is never required
// because each (product, warehouse) pair is independent.
// StockLedgerインターフェースの実装（操作は常に単一在庫記録に限定）
type Ledger struct {
	storage Storage
	logger  *zap.Logger
	config  *Config
}

var _ StockLedger = (*Ledger)(nil)

// Config holds ledger configuration
// 台帳の設定を保持
type Config struct {
	DefaultReorderLevel int64 `yaml:"default_reorder_level"` // 新規在庫記録の発注点
	MaxRetries          int   `yaml:"max_retries"`           // 楽観的ロック競合時の再試行回数
}

// NewLedger creates a new stock ledger
// 新しい在庫台帳を作成
func NewLedger(storage Storage, logger *zap.Logger, config *Config) *Ledger {
	if config == nil {
		config = &Config{
			DefaultReorderLevel: 10,
			MaxRetries:          3,
		}
	}
	if config.MaxRetries < 1 {
		config.MaxRetries = 1
	}

	return &Ledger{
		storage: storage,
		logger:  logger,
		config:  config,
	}
}

// MovementRequest describes one stock movement to apply
// 適用する在庫移動1件を表現
type MovementRequest struct {
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	Direction   Direction `json:"direction"`
	Quantity    int64     `json:"quantity"`
	Reference   string    `json:"reference"`
	Notes       string    `json:"notes"`
	AppliedBy   string    `json:"-"`
}

// ApplyMovement applies an IN or OUT movement to the (product,
// warehouse) stock record. A first IN creates the record with the
// default reorder level; an OUT against a missing record or one that
// would drive the quantity negative is rejected. The update is guarded
// by the record version and retried on conflict, so two racing OUT
// movements can never jointly overdraw stock.
// 在庫移動を適用（バージョンで保護し競合時は再試行、在庫は負にならない）
func (l *Ledger) ApplyMovement(ctx context.Context, req MovementRequest) (*StockRecord, error) {
	if err := ValidateRecordID("product_id", req.ProductID); err != nil {
		return nil, err
	}
	if err := ValidateRecordID("warehouse_id", req.WarehouseID); err != nil {
		return nil, err
	}
	if err := ValidateDirection(req.Direction); err != nil {
		return nil, err
	}
	if err := ValidateMovementQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := ValidateReference(req.Reference); err != nil {
		return nil, err
	}
	if err := ValidateNotes(req.Notes); err != nil {
		return nil, err
	}

	// 商品と倉庫の存在確認
	if err := l.validateProductAndWarehouse(ctx, req.ProductID, req.WarehouseID); err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < l.config.MaxRetries; attempt++ {
		stock, err := l.applyOnce(ctx, req)
		if err == nil {
			l.recordMovement(ctx, req)
			movementsTotal.WithLabelValues(string(req.Direction)).Inc()

			l.logger.Info("在庫移動適用完了",
				zap.String("product_id", req.ProductID),
				zap.String("warehouse_id", req.WarehouseID),
				zap.String("direction", string(req.Direction)),
				zap.Int64("quantity", req.Quantity),
				zap.Int64("new_quantity", stock.Quantity),
			)
			return stock, nil
		}

		// 競合（バージョン不一致または同時作成）のみ再試行
		if errors.Is(err, ErrVersionMismatch) || errors.Is(err, ErrStockExists) {
			lastErr = err
			l.logger.Warn("在庫更新が競合しました。再試行します",
				zap.String("product_id", req.ProductID),
				zap.String("warehouse_id", req.WarehouseID),
				zap.Int("attempt", attempt+1),
			)
			continue
		}

		var ise *InsufficientStockError
		if errors.As(err, &ise) {
			movementRejectedTotal.WithLabelValues("insufficient_stock").Inc()
		}
		return nil, err
	}

	return nil, NewStorageError("apply_movement", "在庫更新の競合が解消しませんでした", lastErr)
}

// applyOnce performs a single read-modify-write attempt
// 読み取り・変更・書き込みを1回試行
func (l *Ledger) applyOnce(ctx context.Context, req MovementRequest) (*StockRecord, error) {
	stock, err := l.storage.GetStock(ctx, req.ProductID, req.WarehouseID)
	if err != nil && !errors.Is(err, ErrStockNotFound) {
		return nil, NewStorageError("get_stock", "在庫取得に失敗しました", err)
	}

	if stock == nil {
		if req.Direction == DirectionOut {
			movementRejectedTotal.WithLabelValues("no_record").Inc()
			return nil, NewValidationError("direction", "存在しない在庫にOUT移動はできません", string(DirectionOut))
		}

		// 最初のIN移動で在庫記録を作成
		stock = &StockRecord{
			ID:               NewRecordID(),
			ProductID:        req.ProductID,
			WarehouseID:      req.WarehouseID,
			Quantity:         req.Quantity,
			ReservedQuantity: 0,
			ReorderLevel:     l.config.DefaultReorderLevel,
			Version:          1,
			LastUpdated:      time.Now(),
		}
		stock.CalculateAvailable()

		if err := l.storage.CreateStock(ctx, stock); err != nil {
			if errors.Is(err, ErrStockExists) {
				return nil, err
			}
			return nil, NewStorageError("create_stock", "在庫記録作成に失敗しました", err)
		}
		return stock, nil
	}

	if req.Direction == DirectionOut && stock.Quantity-req.Quantity < 0 {
		return nil, &InsufficientStockError{Available: stock.Quantity, Requested: req.Quantity}
	}

	if req.Direction == DirectionIn {
		stock.Quantity += req.Quantity
	} else {
		stock.Quantity -= req.Quantity
	}
	stock.Version++
	stock.LastUpdated = time.Now()
	stock.CalculateAvailable()

	if err := l.storage.UpdateStock(ctx, stock); err != nil {
		if errors.Is(err, ErrVersionMismatch) {
			return nil, err
		}
		return nil, NewStorageError("update_stock", "在庫更新に失敗しました", err)
	}
	return stock, nil
}

// recordMovement appends the applied movement to the ledger. Failures
// are logged, not propagated: the stock update already happened.
// 適用済み移動を台帳へ追記（失敗はログのみ）
func (l *Ledger) recordMovement(ctx context.Context, req MovementRequest) {
	m := &Movement{
		ID:          NewRecordID(),
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Direction:   req.Direction,
		Quantity:    req.Quantity,
		Reference:   req.Reference,
		Notes:       req.Notes,
		AppliedBy:   req.AppliedBy,
		AppliedAt:   time.Now(),
	}
	if err := l.storage.CreateMovement(ctx, m); err != nil {
		l.logger.Error("移動記録の保存に失敗しました", zap.Error(err))
	}
}

// SetLevels replaces quantity and/or reorder level of a stock record.
// Each provided value overwrites the stored one directly.
// 在庫数量・発注点を直接置換（加算ではない）
func (l *Ledger) SetLevels(ctx context.Context, recordID string, quantity, reorderLevel *int64) (*StockRecord, error) {
	if err := ValidateRecordID("id", recordID); err != nil {
		return nil, err
	}
	if quantity == nil && reorderLevel == nil {
		return nil, NewValidationError("body", "quantityまたはreorder_levelを指定してください", "")
	}
	if quantity != nil {
		if err := ValidateLevel("quantity", *quantity); err != nil {
			return nil, err
		}
	}
	if reorderLevel != nil {
		if err := ValidateLevel("reorder_level", *reorderLevel); err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 0; attempt < l.config.MaxRetries; attempt++ {
		stock, err := l.storage.GetStockByID(ctx, recordID)
		if err != nil {
			if errors.Is(err, ErrStockNotFound) {
				return nil, ErrStockNotFound
			}
			return nil, NewStorageError("get_stock", "在庫取得に失敗しました", err)
		}

		if quantity != nil {
			stock.Quantity = *quantity
		}
		if reorderLevel != nil {
			stock.ReorderLevel = *reorderLevel
		}
		stock.Version++
		stock.LastUpdated = time.Now()
		stock.CalculateAvailable()

		if err := l.storage.UpdateStock(ctx, stock); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				lastErr = err
				continue
			}
			return nil, NewStorageError("update_stock", "在庫更新に失敗しました", err)
		}

		l.logger.Info("在庫水準更新完了",
			zap.String("id", recordID),
			zap.Int64("quantity", stock.Quantity),
			zap.Int64("reorder_level", stock.ReorderLevel),
		)
		return stock, nil
	}

	return nil, NewStorageError("set_levels", "在庫更新の競合が解消しませんでした", lastErr)
}

// List returns stock records matching the filter, most recently updated
// first, each annotated with the derived available quantity.
// 条件に一致する在庫記録を最終更新の新しい順に取得
func (l *Ledger) List(ctx context.Context, filter StockFilter) ([]StockDetail, error) {
	details, err := l.storage.ListStock(ctx, filter)
	if err != nil {
		return nil, NewStorageError("list_stock", "在庫一覧取得に失敗しました", err)
	}
	for i := range details {
		details[i].CalculateAvailable()
	}
	return details, nil
}

// validateProductAndWarehouse validates that both references exist
// 商品と倉庫の存在を確認
func (l *Ledger) validateProductAndWarehouse(ctx context.Context, productID, warehouseID string) error {
	if _, err := l.storage.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return ErrProductNotFound
		}
		return NewStorageError("get_product", "商品取得に失敗しました", err)
	}
	if _, err := l.storage.GetWarehouse(ctx, warehouseID); err != nil {
		if errors.Is(err, ErrWarehouseNotFound) {
			return ErrWarehouseNotFound
		}
		return NewStorageError("get_warehouse", "倉庫取得に失敗しました", err)
	}
	return nil
}
