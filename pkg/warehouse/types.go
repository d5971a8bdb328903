// Package warehouse provides the inventory rules core of soukoGo:
// stock ledger, alert classification, purchase orders and reports.
package warehouse

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog entry identified by a unique SKU
// カタログ上の商品を表現（SKUは一意）
type Product struct {
	ID            string            `json:"id" db:"id"`                       // 商品ID
	Name          string            `json:"name" db:"name"`                   // 商品名
	SKU           string            `json:"sku" db:"sku"`                     // SKU（在庫管理単位）
	Category      string            `json:"category" db:"category"`           // カテゴリ
	Price         decimal.Decimal   `json:"price" db:"price"`                 // 単価
	Description   string            `json:"description" db:"description"`     // 商品説明
	Specification map[string]string `json:"specification" db:"specification"` // 自由形式の仕様
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`       // 作成日時
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`       // 更新日時
}

// Warehouse represents a storage site
// 倉庫を表現
type Warehouse struct {
	ID        string    `json:"id" db:"id"`                 // 倉庫ID
	Name      string    `json:"name" db:"name"`             // 倉庫名
	Location  string    `json:"location" db:"location"`     // 所在地
	Address   string    `json:"address" db:"address"`       // 住所
	IsActive  bool      `json:"is_active" db:"is_active"`   // アクティブ状態
	CreatedAt time.Time `json:"created_at" db:"created_at"` // 作成日時
}

// StockRecord represents the quantity state of one product at one
// warehouse. There is exactly one record per (product, warehouse) pair.
// 1つの商品×1つの倉庫の在庫状態を表現（ペアごとに1レコード）
type StockRecord struct {
	ID                string    `json:"id" db:"id"`                               // 在庫記録ID
	ProductID         string    `json:"product_id" db:"product_id"`               // 商品ID
	WarehouseID       string    `json:"warehouse_id" db:"warehouse_id"`           // 倉庫ID
	Quantity          int64     `json:"quantity" db:"quantity"`                   // 在庫数量
	ReservedQuantity  int64     `json:"reserved_quantity" db:"reserved_quantity"` // 予約済み数量
	ReorderLevel      int64     `json:"reorder_level" db:"reorder_level"`         // 発注点
	Version           int64     `json:"version" db:"version"`                     // 楽観的ロック用バージョン
	LastUpdated       time.Time `json:"last_updated" db:"last_updated"`           // 最終更新日時
	AvailableQuantity int64     `json:"available_quantity" db:"-"`                // 利用可能数量（導出値）
}

// CalculateAvailable derives available quantity (quantity - reserved)
// 利用可能数量を導出（在庫数量 - 予約済み数量）
func (s *StockRecord) CalculateAvailable() {
	s.AvailableQuantity = s.Quantity - s.ReservedQuantity
}

// StockDetail is a stock record joined with its product and warehouse
// 商品・倉庫情報を結合した在庫記録
type StockDetail struct {
	StockRecord
	ProductName       string          `json:"product_name" db:"product_name"`
	ProductSKU        string          `json:"product_sku" db:"product_sku"`
	ProductCategory   string          `json:"product_category" db:"product_category"`
	ProductPrice      decimal.Decimal `json:"product_price" db:"product_price"`
	WarehouseName     string          `json:"warehouse_name" db:"warehouse_name"`
	WarehouseLocation string          `json:"warehouse_location" db:"warehouse_location"`
}

// StockFilter narrows stock listings
// 在庫一覧の絞り込み条件
type StockFilter struct {
	WarehouseID string
	ProductID   string
}

// Direction defines the direction of a stock movement
// 在庫移動の方向を定義
type Direction string

const (
	DirectionIn  Direction = "IN"  // 入庫
	DirectionOut Direction = "OUT" // 出庫
)

// Movement is one applied quantity delta, persisted append-only
// 適用済みの在庫移動1件（追記専用で永続化）
type Movement struct {
	ID          string    `json:"id" db:"id"`
	ProductID   string    `json:"product_id" db:"product_id"`
	WarehouseID string    `json:"warehouse_id" db:"warehouse_id"`
	Direction   Direction `json:"direction" db:"direction"`
	Quantity    int64     `json:"quantity" db:"quantity"`
	Reference   string    `json:"reference" db:"reference"` // 参照番号（発注書番号など）
	Notes       string    `json:"notes" db:"notes"`
	AppliedBy   string    `json:"applied_by" db:"applied_by"`
	AppliedAt   time.Time `json:"applied_at" db:"applied_at"`
}

// OrderStatus defines purchase order workflow states
// 発注書のワークフロー状態を定義
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // 作成済み
	OrderStatusOrdered   OrderStatus = "ORDERED"   // 発注済み
	OrderStatusReceived  OrderStatus = "RECEIVED"  // 入荷済み
	OrderStatusCancelled OrderStatus = "CANCELLED" // キャンセル
)

// Valid reports whether s is one of the enumerated statuses
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusOrdered, OrderStatusReceived, OrderStatusCancelled:
		return true
	}
	return false
}

// PurchaseOrder represents a supplier order with its line items
// 仕入先への発注書（明細付き）を表現
type PurchaseOrder struct {
	ID           string              `json:"id" db:"id"`
	PONumber     string              `json:"po_number" db:"po_number"`         // 発注番号
	SupplierName string              `json:"supplier_name" db:"supplier_name"` // 仕入先名
	Status       OrderStatus         `json:"status" db:"status"`
	TotalAmount  decimal.Decimal     `json:"total_amount" db:"total_amount"` // 明細合計
	OrderDate    time.Time           `json:"order_date" db:"order_date"`
	ExpectedDate *time.Time          `json:"expected_date" db:"expected_date"` // 入荷予定日
	Items        []PurchaseOrderLine `json:"items" db:"-"`
}

// PurchaseOrderLine is one immutable line of a purchase order
// 発注書の明細1行（作成後は読み取り専用）
type PurchaseOrderLine struct {
	ID              string          `json:"id" db:"id"`
	PurchaseOrderID string          `json:"purchase_order_id" db:"purchase_order_id"`
	ProductID       string          `json:"product_id" db:"product_id"`
	Quantity        int64           `json:"quantity" db:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price" db:"total_price"` // quantity × unit_price
}

// AlertType defines the kinds of derived stock alerts
// 導出在庫アラートの種別を定義
type AlertType string

const (
	AlertTypeLowStock   AlertType = "LOW_STOCK"    // 低在庫
	AlertTypeOutOfStock AlertType = "OUT_OF_STOCK" // 在庫切れ
)

// Severity is the urgency tier used by the live alert feed
// アラートフィードで使用する緊急度
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Priority is the urgency tier used by the low-stock report.
// Intentionally a separate scheme from Severity.
// 低在庫レポートで使用する優先度（Severityとは別体系）
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

// Alert is derived from a stock record on every read, never stored
// 在庫記録から読み取りごとに導出されるアラート（永続化しない）
type Alert struct {
	ID                string     `json:"id"`
	Type              AlertType  `json:"type"`
	Severity          Severity   `json:"severity"`
	ProductID         string     `json:"product_id"`
	WarehouseID       string     `json:"warehouse_id"`
	ProductName       string     `json:"product_name"`
	ProductSKU        string     `json:"product_sku"`
	WarehouseName     string     `json:"warehouse_name"`
	WarehouseLocation string     `json:"warehouse_location"`
	CurrentQuantity   int64      `json:"current_quantity"`
	ReorderLevel      int64      `json:"reorder_level"`
	CreatedAt         time.Time  `json:"created_at"`
	IsAcknowledged    bool       `json:"is_acknowledged"`
	AcknowledgedAt    *time.Time `json:"acknowledged_at,omitempty"`
}

// AlertAcknowledgement durably records who acknowledged an alert and when
// アラート確認の記録（誰がいつ確認したか）を永続化
type AlertAcknowledgement struct {
	AlertID        string    `json:"alert_id" db:"alert_id"`
	InventoryID    string    `json:"inventory_id" db:"inventory_id"`
	AcknowledgedBy string    `json:"acknowledged_by" db:"acknowledged_by"`
	AcknowledgedAt time.Time `json:"acknowledged_at" db:"acknowledged_at"`
}

const alertIDPrefix = "alert_"

// AlertIDFor builds the synthetic alert id for a stock record
// 在庫記録IDからアラートIDを合成
func AlertIDFor(stockID string) string {
	return alertIDPrefix + stockID
}

// StockIDFromAlert recovers the stock record id from an alert id
// アラートIDから在庫記録IDを復元
func StockIDFromAlert(alertID string) (string, bool) {
	if len(alertID) <= len(alertIDPrefix) || alertID[:len(alertIDPrefix)] != alertIDPrefix {
		return "", false
	}
	return alertID[len(alertIDPrefix):], true
}

// NewRecordID generates a new record ID
// 新しいレコードIDを生成
func NewRecordID() string {
	return uuid.New().String()
}

// NewPONumber generates a time-based unique purchase order number
// 時刻ベースの一意な発注番号を生成
func NewPONumber() string {
	return fmt.Sprintf("PO-%d", time.Now().UnixMilli())
}
