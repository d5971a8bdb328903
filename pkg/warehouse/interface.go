package warehouse

import (
	"context"
	"time"
)

// StockLedger defines the core stock ledger operations
// 在庫台帳のコア操作を定義
type StockLedger interface {
	ApplyMovement(ctx context.Context, req MovementRequest) (*StockRecord, error)
	SetLevels(ctx context.Context, recordID string, quantity, reorderLevel *int64) (*StockRecord, error)
	List(ctx context.Context, filter StockFilter) ([]StockDetail, error)
}

// AlertFeed defines the derived alert operations
// 導出アラートの操作を定義
type AlertFeed interface {
	Feed(ctx context.Context) ([]Alert, error)
	Acknowledge(ctx context.Context, alertID, userID string) (*Alert, error)
}

// OrderWorkflow defines the purchase order workflow
// 発注書ワークフローを定義
type OrderWorkflow interface {
	Create(ctx context.Context, req CreateOrderRequest) (*PurchaseOrder, error)
	Get(ctx context.Context, id string) (*PurchaseOrder, error)
	List(ctx context.Context) ([]PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (*PurchaseOrder, error)
}

// ProductRegistry defines catalog management
// 商品カタログ管理を定義
type ProductRegistry interface {
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]Product, error)
}

// WarehouseRegistry defines warehouse management
// 倉庫管理を定義
type WarehouseRegistry interface {
	CreateWarehouse(ctx context.Context, w *Warehouse) error
	UpdateWarehouse(ctx context.Context, w *Warehouse) (*Warehouse, error)
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
}

// Storage defines the interface for the data persistence layer
// データ永続化層のインターフェースを定義
type Storage interface {
	// Product catalog
	CreateProduct(ctx context.Context, p *Product) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]Product, error)
	CountProducts(ctx context.Context) (int64, error)

	// Warehouses
	CreateWarehouse(ctx context.Context, w *Warehouse) error
	GetWarehouse(ctx context.Context, id string) (*Warehouse, error)
	UpdateWarehouse(ctx context.Context, w *Warehouse) error
	ListWarehouses(ctx context.Context) ([]Warehouse, error)
	CountActiveWarehouses(ctx context.Context) (int64, error)

	// Stock records
	CreateStock(ctx context.Context, s *StockRecord) error
	UpdateStock(ctx context.Context, s *StockRecord) error
	GetStock(ctx context.Context, productID, warehouseID string) (*StockRecord, error)
	GetStockByID(ctx context.Context, id string) (*StockRecord, error)
	GetStockDetail(ctx context.Context, id string) (*StockDetail, error)
	ListStock(ctx context.Context, filter StockFilter) ([]StockDetail, error)
	ListLowStock(ctx context.Context) ([]StockDetail, error)
	TotalQuantityByProduct(ctx context.Context, productID string) (int64, error)

	// Movement ledger
	CreateMovement(ctx context.Context, m *Movement) error
	SumMovements(ctx context.Context, productID string, from, to time.Time) (inbound, outbound int64, err error)

	// Purchase orders
	CreateOrder(ctx context.Context, po *PurchaseOrder) error
	GetOrder(ctx context.Context, id string) (*PurchaseOrder, error)
	ListOrders(ctx context.Context) ([]PurchaseOrder, error)
	UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error

	// Alert acknowledgements
	SaveAcknowledgement(ctx context.Context, ack *AlertAcknowledgement) error
	GetAcknowledgement(ctx context.Context, alertID string) (*AlertAcknowledgement, error)

	// Health check
	Ping(ctx context.Context) error
	Close() error
}
