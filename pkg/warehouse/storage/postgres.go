// Package storage provides the PostgreSQL persistence layer
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// PostgreSQLStorage implements the Storage interface using PostgreSQL
// PostgreSQLを使用したStorageインターフェースの実装
type PostgreSQLStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ warehouse.Storage = (*PostgreSQLStorage)(nil)

// NewPostgreSQLStorage creates a new PostgreSQL storage instance
// 新しいPostgreSQLストレージインスタンスを作成
func NewPostgreSQLStorage(dsn string, logger *zap.Logger) (*PostgreSQLStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗しました: %w", err)
	}

	// 接続テスト
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("データベースpingに失敗しました: %w", err)
	}

	// 接続プール設定
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &PostgreSQLStorage{
		db:     db,
		logger: logger,
	}, nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}

// CreateProduct creates a new product
// 新しい商品を作成
func (s *PostgreSQLStorage) CreateProduct(ctx context.Context, p *warehouse.Product) error {
	specJSON, err := json.Marshal(p.Specification)
	if err != nil {
		return fmt.Errorf("仕様のJSON変換に失敗しました: %w", err)
	}

	query := `
		INSERT INTO products (id, name, sku, category, price, description, specification, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = s.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.SKU,
		p.Category,
		p.Price,
		p.Description,
		specJSON,
		p.CreatedAt,
		p.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return warehouse.ErrDuplicateSKU
		}
		return fmt.Errorf("商品作成に失敗しました: %w", err)
	}

	return nil
}

// GetProduct retrieves a product by ID
// IDで商品を取得
func (s *PostgreSQLStorage) GetProduct(ctx context.Context, id string) (*warehouse.Product, error) {
	query := `
		SELECT id, name, sku, category, price, description, specification, created_at, updated_at
		FROM products
		WHERE id = $1`

	p := &warehouse.Product{}
	var specJSON []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.SKU,
		&p.Category,
		&p.Price,
		&p.Description,
		&specJSON,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, warehouse.ErrProductNotFound
		}
		return nil, fmt.Errorf("商品取得に失敗しました: %w", err)
	}

	if len(specJSON) > 0 {
		if err := json.Unmarshal(specJSON, &p.Specification); err != nil {
			s.logger.Warn("仕様のパースに失敗しました", zap.Error(err))
		}
	}

	return p, nil
}

// UpdateProduct updates an existing product
// 既存の商品を更新
func (s *PostgreSQLStorage) UpdateProduct(ctx context.Context, p *warehouse.Product) error {
	specJSON, err := json.Marshal(p.Specification)
	if err != nil {
		return fmt.Errorf("仕様のJSON変換に失敗しました: %w", err)
	}

	query := `
		UPDATE products
		SET name = $2, sku = $3, category = $4, price = $5, description = $6, specification = $7, updated_at = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.SKU,
		p.Category,
		p.Price,
		p.Description,
		specJSON,
		p.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return warehouse.ErrDuplicateSKU
		}
		return fmt.Errorf("商品更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return warehouse.ErrProductNotFound
	}

	return nil
}

// DeleteProduct deletes a product by ID
// IDで商品を削除
func (s *PostgreSQLStorage) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("商品削除に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("削除行数の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return warehouse.ErrProductNotFound
	}

	return nil
}

// ListProducts retrieves all products, newest first
// 商品一覧を新しい順に取得
func (s *PostgreSQLStorage) ListProducts(ctx context.Context) ([]warehouse.Product, error) {
	query := `
		SELECT id, name, sku, category, price, description, specification, created_at, updated_at
		FROM products
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("商品一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var products []warehouse.Product
	for rows.Next() {
		var p warehouse.Product
		var specJSON []byte
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.SKU,
			&p.Category,
			&p.Price,
			&p.Description,
			&specJSON,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("商品スキャンに失敗しました: %w", err)
		}
		if len(specJSON) > 0 {
			if err := json.Unmarshal(specJSON, &p.Specification); err != nil {
				s.logger.Warn("仕様のパースに失敗しました", zap.Error(err))
			}
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// CountProducts counts all products
// 商品総数を取得
func (s *PostgreSQLStorage) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("商品数取得に失敗しました: %w", err)
	}
	return count, nil
}

// CreateWarehouse creates a new warehouse
// 新しい倉庫を作成
func (s *PostgreSQLStorage) CreateWarehouse(ctx context.Context, w *warehouse.Warehouse) error {
	query := `
		INSERT INTO warehouses (id, name, location, address, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.Location,
		w.Address,
		w.IsActive,
		w.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("倉庫作成に失敗しました: %w", err)
	}

	return nil
}

// GetWarehouse retrieves a warehouse by ID
// IDで倉庫を取得
func (s *PostgreSQLStorage) GetWarehouse(ctx context.Context, id string) (*warehouse.Warehouse, error) {
	query := `
		SELECT id, name, location, address, is_active, created_at
		FROM warehouses
		WHERE id = $1`

	w := &warehouse.Warehouse{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID,
		&w.Name,
		&w.Location,
		&w.Address,
		&w.IsActive,
		&w.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, warehouse.ErrWarehouseNotFound
		}
		return nil, fmt.Errorf("倉庫取得に失敗しました: %w", err)
	}

	return w, nil
}

// UpdateWarehouse updates an existing warehouse
// 既存の倉庫を更新
func (s *PostgreSQLStorage) UpdateWarehouse(ctx context.Context, w *warehouse.Warehouse) error {
	query := `
		UPDATE warehouses
		SET name = $2, location = $3, address = $4, is_active = $5
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		w.ID,
		w.Name,
		w.Location,
		w.Address,
		w.IsActive,
	)

	if err != nil {
		return fmt.Errorf("倉庫更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return warehouse.ErrWarehouseNotFound
	}

	return nil
}

// ListWarehouses retrieves all warehouses
// 倉庫一覧を取得
func (s *PostgreSQLStorage) ListWarehouses(ctx context.Context) ([]warehouse.Warehouse, error) {
	query := `
		SELECT id, name, location, address, is_active, created_at
		FROM warehouses
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("倉庫一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var warehouses []warehouse.Warehouse
	for rows.Next() {
		var w warehouse.Warehouse
		err := rows.Scan(
			&w.ID,
			&w.Name,
			&w.Location,
			&w.Address,
			&w.IsActive,
			&w.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("倉庫スキャンに失敗しました: %w", err)
		}
		warehouses = append(warehouses, w)
	}

	return warehouses, rows.Err()
}

// CountActiveWarehouses counts active warehouses
// アクティブな倉庫数を取得
func (s *PostgreSQLStorage) CountActiveWarehouses(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM warehouses WHERE is_active = true`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("倉庫数取得に失敗しました: %w", err)
	}
	return count, nil
}

// CreateStock creates a new stock record
// 新しい在庫記録を作成
func (s *PostgreSQLStorage) CreateStock(ctx context.Context, stock *warehouse.StockRecord) error {
	query := `
		INSERT INTO inventory (id, product_id, warehouse_id, quantity, reserved_quantity, reorder_level, version, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := s.db.ExecContext(ctx, query,
		stock.ID,
		stock.ProductID,
		stock.WarehouseID,
		stock.Quantity,
		stock.ReservedQuantity,
		stock.ReorderLevel,
		stock.Version,
		stock.LastUpdated,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return warehouse.ErrStockExists
		}
		return fmt.Errorf("在庫記録作成に失敗しました: %w", err)
	}

	return nil
}

// UpdateStock updates a stock record guarded by its previous version
// 在庫記録を前バージョン条件付きで更新（楽観的ロック）
func (s *PostgreSQLStorage) UpdateStock(ctx context.Context, stock *warehouse.StockRecord) error {
	query := `
		UPDATE inventory
		SET quantity = $2, reserved_quantity = $3, reorder_level = $4, version = $5, last_updated = $6
		WHERE id = $1 AND version = $7`

	result, err := s.db.ExecContext(ctx, query,
		stock.ID,
		stock.Quantity,
		stock.ReservedQuantity,
		stock.ReorderLevel,
		stock.Version,
		stock.LastUpdated,
		stock.Version-1, // 楽観的ロックのための前バージョン
	)

	if err != nil {
		return fmt.Errorf("在庫記録更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return warehouse.ErrVersionMismatch
	}

	return nil
}

const stockColumns = `id, product_id, warehouse_id, quantity, reserved_quantity, reorder_level, version, last_updated`

func scanStock(row *sql.Row) (*warehouse.StockRecord, error) {
	stock := &warehouse.StockRecord{}
	err := row.Scan(
		&stock.ID,
		&stock.ProductID,
		&stock.WarehouseID,
		&stock.Quantity,
		&stock.ReservedQuantity,
		&stock.ReorderLevel,
		&stock.Version,
		&stock.LastUpdated,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, warehouse.ErrStockNotFound
		}
		return nil, fmt.Errorf("在庫取得に失敗しました: %w", err)
	}
	return stock, nil
}

// GetStock retrieves the stock record for a (product, warehouse) pair
// 商品×倉庫ペアの在庫記録を取得
func (s *PostgreSQLStorage) GetStock(ctx context.Context, productID, warehouseID string) (*warehouse.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory WHERE product_id = $1 AND warehouse_id = $2`
	return scanStock(s.db.QueryRowContext(ctx, query, productID, warehouseID))
}

// GetStockByID retrieves a stock record by its ID
// IDで在庫記録を取得
func (s *PostgreSQLStorage) GetStockByID(ctx context.Context, id string) (*warehouse.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM inventory WHERE id = $1`
	return scanStock(s.db.QueryRowContext(ctx, query, id))
}

const stockDetailColumns = `
		i.id, i.product_id, i.warehouse_id, i.quantity, i.reserved_quantity, i.reorder_level, i.version, i.last_updated,
		p.name, p.sku, p.category, p.price,
		w.name, w.location`

func scanStockDetail(scan func(dest ...interface{}) error) (*warehouse.StockDetail, error) {
	d := &warehouse.StockDetail{}
	err := scan(
		&d.ID,
		&d.ProductID,
		&d.WarehouseID,
		&d.Quantity,
		&d.ReservedQuantity,
		&d.ReorderLevel,
		&d.Version,
		&d.LastUpdated,
		&d.ProductName,
		&d.ProductSKU,
		&d.ProductCategory,
		&d.ProductPrice,
		&d.WarehouseName,
		&d.WarehouseLocation,
	)
	if err != nil {
		return nil, err
	}
	d.CalculateAvailable()
	return d, nil
}

// GetStockDetail retrieves one stock record joined with its product and warehouse
// 商品・倉庫情報付きで在庫記録1件を取得
func (s *PostgreSQLStorage) GetStockDetail(ctx context.Context, id string) (*warehouse.StockDetail, error) {
	query := `
		SELECT ` + stockDetailColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	d, err := scanStockDetail(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, warehouse.ErrStockNotFound
		}
		return nil, fmt.Errorf("在庫取得に失敗しました: %w", err)
	}
	return d, nil
}

// ListStock retrieves stock records matching the filter, most recently
// updated first
// 条件に一致する在庫記録を最終更新の新しい順に取得
func (s *PostgreSQLStorage) ListStock(ctx context.Context, filter warehouse.StockFilter) ([]warehouse.StockDetail, error) {
	query := `
		SELECT ` + stockDetailColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id`

	var args []interface{}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		query += fmt.Sprintf(" WHERE i.warehouse_id = $%d", len(args))
	}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		if len(args) == 1 {
			query += fmt.Sprintf(" WHERE i.product_id = $%d", len(args))
		} else {
			query += fmt.Sprintf(" AND i.product_id = $%d", len(args))
		}
	}
	query += " ORDER BY i.last_updated DESC"

	return s.queryStockDetails(ctx, query, args...)
}

// ListLowStock retrieves records at or below their reorder level,
// lowest quantity first
// 発注点以下の在庫記録を数量の昇順で取得
func (s *PostgreSQLStorage) ListLowStock(ctx context.Context) ([]warehouse.StockDetail, error) {
	query := `
		SELECT ` + stockDetailColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		JOIN warehouses w ON w.id = i.warehouse_id
		WHERE i.quantity <= i.reorder_level
		ORDER BY i.quantity ASC`

	return s.queryStockDetails(ctx, query)
}

func (s *PostgreSQLStorage) queryStockDetails(ctx context.Context, query string, args ...interface{}) ([]warehouse.StockDetail, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("在庫一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var details []warehouse.StockDetail
	for rows.Next() {
		d, err := scanStockDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("在庫スキャンに失敗しました: %w", err)
		}
		details = append(details, *d)
	}

	return details, rows.Err()
}

// TotalQuantityByProduct sums a product's quantity across all warehouses
// 商品の全倉庫合計在庫数を取得
func (s *PostgreSQLStorage) TotalQuantityByProduct(ctx context.Context, productID string) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM inventory WHERE product_id = $1`,
		productID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("合計在庫数取得に失敗しました: %w", err)
	}
	return total, nil
}

// CreateMovement appends a movement to the ledger
// 移動台帳に1件追記
func (s *PostgreSQLStorage) CreateMovement(ctx context.Context, m *warehouse.Movement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, warehouse_id, direction, quantity, reference, notes, applied_by, applied_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		m.ID,
		m.ProductID,
		m.WarehouseID,
		m.Direction,
		m.Quantity,
		m.Reference,
		m.Notes,
		m.AppliedBy,
		m.AppliedAt,
	)

	if err != nil {
		return fmt.Errorf("移動記録作成に失敗しました: %w", err)
	}

	return nil
}

// SumMovements sums inbound and outbound quantities for a product
// within a time range
// 期間内の入庫・出庫数量を集計
func (s *PostgreSQLStorage) SumMovements(ctx context.Context, productID string, from, to time.Time) (int64, int64, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0)
		FROM stock_movements
		WHERE product_id = $1 AND applied_at >= $2 AND applied_at <= $3`

	var inbound, outbound int64
	err := s.db.QueryRowContext(ctx, query, productID, from, to).Scan(&inbound, &outbound)
	if err != nil {
		return 0, 0, fmt.Errorf("移動集計に失敗しました: %w", err)
	}
	return inbound, outbound, nil
}

// CreateOrder inserts a purchase order header and its lines in a single
// transaction. Either everything commits or nothing does, so no
// orphaned header can remain after a failed line insert.
// 発注書ヘッダーと明細を単一トランザクションで作成
func (s *PostgreSQLStorage) CreateOrder(ctx context.Context, po *warehouse.PurchaseOrder) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗しました: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO purchase_orders (id, po_number, supplier_name, status, total_amount, order_date, expected_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		po.ID,
		po.PONumber,
		po.SupplierName,
		po.Status,
		po.TotalAmount,
		po.OrderDate,
		po.ExpectedDate,
	)
	if err != nil {
		return fmt.Errorf("発注書作成に失敗しました: %w", err)
	}

	for _, line := range po.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO purchase_order_items (id, purchase_order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID,
			line.PurchaseOrderID,
			line.ProductID,
			line.Quantity,
			line.UnitPrice,
			line.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("発注明細作成に失敗しました: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("トランザクションコミットに失敗しました: %w", err)
	}

	return nil
}

const orderColumns = `id, po_number, supplier_name, status, total_amount, order_date, expected_date`

// GetOrder retrieves a purchase order with its lines
// 発注書を明細付きで取得
func (s *PostgreSQLStorage) GetOrder(ctx context.Context, id string) (*warehouse.PurchaseOrder, error) {
	po := &warehouse.PurchaseOrder{}
	err := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM purchase_orders WHERE id = $1`, id).Scan(
		&po.ID,
		&po.PONumber,
		&po.SupplierName,
		&po.Status,
		&po.TotalAmount,
		&po.OrderDate,
		&po.ExpectedDate,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, warehouse.ErrOrderNotFound
		}
		return nil, fmt.Errorf("発注書取得に失敗しました: %w", err)
	}

	lines, err := s.orderLines(ctx, id)
	if err != nil {
		return nil, err
	}
	po.Items = lines

	return po, nil
}

// ListOrders retrieves all purchase orders, newest first, with lines
// 発注書一覧を新しい順に明細付きで取得
func (s *PostgreSQLStorage) ListOrders(ctx context.Context) ([]warehouse.PurchaseOrder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM purchase_orders ORDER BY order_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("発注書一覧取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var orders []warehouse.PurchaseOrder
	index := make(map[string]int)
	for rows.Next() {
		var po warehouse.PurchaseOrder
		err := rows.Scan(
			&po.ID,
			&po.PONumber,
			&po.SupplierName,
			&po.Status,
			&po.TotalAmount,
			&po.OrderDate,
			&po.ExpectedDate,
		)
		if err != nil {
			return nil, fmt.Errorf("発注書スキャンに失敗しました: %w", err)
		}
		index[po.ID] = len(orders)
		orders = append(orders, po)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lineRows, err := s.db.QueryContext(ctx, `
		SELECT id, purchase_order_id, product_id, quantity, unit_price, total_price
		FROM purchase_order_items
		ORDER BY purchase_order_id, id`)
	if err != nil {
		return nil, fmt.Errorf("発注明細取得に失敗しました: %w", err)
	}
	defer lineRows.Close()

	for lineRows.Next() {
		var line warehouse.PurchaseOrderLine
		err := lineRows.Scan(
			&line.ID,
			&line.PurchaseOrderID,
			&line.ProductID,
			&line.Quantity,
			&line.UnitPrice,
			&line.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("発注明細スキャンに失敗しました: %w", err)
		}
		if i, ok := index[line.PurchaseOrderID]; ok {
			orders[i].Items = append(orders[i].Items, line)
		}
	}

	return orders, lineRows.Err()
}

func (s *PostgreSQLStorage) orderLines(ctx context.Context, orderID string) ([]warehouse.PurchaseOrderLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, purchase_order_id, product_id, quantity, unit_price, total_price
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("発注明細取得に失敗しました: %w", err)
	}
	defer rows.Close()

	var lines []warehouse.PurchaseOrderLine
	for rows.Next() {
		var line warehouse.PurchaseOrderLine
		err := rows.Scan(
			&line.ID,
			&line.PurchaseOrderID,
			&line.ProductID,
			&line.Quantity,
			&line.UnitPrice,
			&line.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("発注明細スキャンに失敗しました: %w", err)
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

// UpdateOrderStatus overwrites a purchase order's status
// 発注書のステータスを更新
func (s *PostgreSQLStorage) UpdateOrderStatus(ctx context.Context, id string, status warehouse.OrderStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE purchase_orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("ステータス更新に失敗しました: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("更新行数の取得に失敗しました: %w", err)
	}
	if rowsAffected == 0 {
		return warehouse.ErrOrderNotFound
	}

	return nil
}

// SaveAcknowledgement upserts an alert acknowledgement
// アラート確認記録を保存（既存なら上書き）
func (s *PostgreSQLStorage) SaveAcknowledgement(ctx context.Context, ack *warehouse.AlertAcknowledgement) error {
	query := `
		INSERT INTO alert_acknowledgements (alert_id, inventory_id, acknowledged_by, acknowledged_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (alert_id)
		DO UPDATE SET acknowledged_by = $3, acknowledged_at = $4`

	_, err := s.db.ExecContext(ctx, query,
		ack.AlertID,
		ack.InventoryID,
		ack.AcknowledgedBy,
		ack.AcknowledgedAt,
	)
	if err != nil {
		return fmt.Errorf("確認記録保存に失敗しました: %w", err)
	}

	return nil
}

// GetAcknowledgement retrieves an acknowledgement; nil when none exists
// アラート確認記録を取得（存在しない場合はnil）
func (s *PostgreSQLStorage) GetAcknowledgement(ctx context.Context, alertID string) (*warehouse.AlertAcknowledgement, error) {
	ack := &warehouse.AlertAcknowledgement{}
	err := s.db.QueryRowContext(ctx, `
		SELECT alert_id, inventory_id, acknowledged_by, acknowledged_at
		FROM alert_acknowledgements
		WHERE alert_id = $1`, alertID).Scan(
		&ack.AlertID,
		&ack.InventoryID,
		&ack.AcknowledgedBy,
		&ack.AcknowledgedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("確認記録取得に失敗しました: %w", err)
	}
	return ack, nil
}

// Ping checks database connectivity
// データベース接続をチェック
func (s *PostgreSQLStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
// データベース接続を閉じる
func (s *PostgreSQLStorage) Close() error {
	return s.db.Close()
}
