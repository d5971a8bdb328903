package warehouse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderManager implements the purchase order workflow
// 発注書ワークフローの実装
type OrderManager struct {
	storage Storage
	logger  *zap.Logger
}

var _ OrderWorkflow = (*OrderManager)(nil)

// NewOrderManager creates a new order manager
// 新しい発注マネージャーを作成
func NewOrderManager(storage Storage, logger *zap.Logger) *OrderManager {
	return &OrderManager{
		storage: storage,
		logger:  logger,
	}
}

// CreateOrderRequest describes a purchase order to create
// 作成する発注書を表現
type CreateOrderRequest struct {
	SupplierName string             `json:"supplier_name"`
	ExpectedDate *time.Time         `json:"expected_date"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderItemRequest is one requested line item
// 発注明細1行のリクエスト
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// allowedTransitions is the checked status transition table.
// RECEIVED and CANCELLED are terminal.
// ステータス遷移表（RECEIVEDとCANCELLEDは終端）
var allowedTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusOrdered, OrderStatusCancelled},
	OrderStatusOrdered:   {OrderStatusReceived, OrderStatusCancelled},
	OrderStatusReceived:  {},
	OrderStatusCancelled: {},
}

// CanTransition reports whether the workflow allows from → to.
// Setting the current status again is a no-op and always allowed.
// 遷移表がfrom→toを許可するか判定（同一ステータスは常に許可）
func CanTransition(from, to OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Create validates the request, computes line totals and the PO total,
// and persists header and lines atomically in one transaction, so a
// failed line insert can never leave an orphaned header behind.
// 発注書を検証し、明細合計を計算して単一トランザクションで永続化
func (om *OrderManager) Create(ctx context.Context, req CreateOrderRequest) (*PurchaseOrder, error) {
	if err := ValidateSupplierName(req.SupplierName); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, NewValidationError("items", "明細が1件以上必要です", "")
	}

	lines := make([]PurchaseOrderLine, 0, len(req.Items))
	total := decimal.Zero
	for _, item := range req.Items {
		if err := ValidateRecordID("items.product_id", item.ProductID); err != nil {
			return nil, err
		}
		if item.Quantity <= 0 {
			return nil, NewValidationError("items.quantity",
				"数量は正の値である必要があります", fmt.Sprintf("%d", item.Quantity))
		}
		if err := ValidatePrice("items.unit_price", item.UnitPrice); err != nil {
			return nil, err
		}

		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		lines = append(lines, PurchaseOrderLine{
			ID:         NewRecordID(),
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	po := &PurchaseOrder{
		ID:           NewRecordID(),
		PONumber:     NewPONumber(),
		SupplierName: req.SupplierName,
		Status:       OrderStatusPending,
		TotalAmount:  total,
		OrderDate:    time.Now(),
		ExpectedDate: req.ExpectedDate,
		Items:        lines,
	}
	for i := range po.Items {
		po.Items[i].PurchaseOrderID = po.ID
	}

	if err := om.storage.CreateOrder(ctx, po); err != nil {
		return nil, NewStorageError("create_order", "発注書作成に失敗しました", err)
	}

	ordersCreatedTotal.Inc()
	om.logger.Info("発注書作成完了",
		zap.String("po_number", po.PONumber),
		zap.String("supplier", po.SupplierName),
		zap.Int("items", len(po.Items)),
		zap.String("total_amount", po.TotalAmount.String()),
	)

	return po, nil
}

// Get returns one purchase order with its lines. A header without
// lines degrades to an empty items slice rather than erroring.
// 発注書1件を明細付きで取得（明細なしは空スライスに縮退）
func (om *OrderManager) Get(ctx context.Context, id string) (*PurchaseOrder, error) {
	po, err := om.storage.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, NewStorageError("get_order", "発注書取得に失敗しました", err)
	}
	if po.Items == nil {
		po.Items = []PurchaseOrderLine{}
	}
	return po, nil
}

// List returns all purchase orders, newest first, each with its lines
// すべての発注書を新しい順に明細付きで取得
func (om *OrderManager) List(ctx context.Context) ([]PurchaseOrder, error) {
	orders, err := om.storage.ListOrders(ctx)
	if err != nil {
		return nil, NewStorageError("list_orders", "発注書一覧取得に失敗しました", err)
	}
	for i := range orders {
		if orders[i].Items == nil {
			orders[i].Items = []PurchaseOrderLine{}
		}
	}
	return orders, nil
}

// UpdateStatus moves a purchase order through the workflow. The target
// must be an enumerated status and the transition must be allowed by
// the table above.
// 発注書のステータスを遷移表に従って更新
func (om *OrderManager) UpdateStatus(ctx context.Context, id string, status OrderStatus) (*PurchaseOrder, error) {
	if err := ValidateRecordID("id", id); err != nil {
		return nil, err
	}
	if err := ValidateOrderStatus(status); err != nil {
		return nil, err
	}

	current, err := om.storage.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, NewStorageError("get_order", "発注書取得に失敗しました", err)
	}

	if !CanTransition(current.Status, status) {
		return nil, &TransitionError{From: current.Status, To: status}
	}

	if current.Status != status {
		if err := om.storage.UpdateOrderStatus(ctx, id, status); err != nil {
			if errors.Is(err, ErrOrderNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, NewStorageError("update_order_status", "ステータス更新に失敗しました", err)
		}
		current.Status = status
	}

	om.logger.Info("発注ステータス更新完了",
		zap.String("id", id),
		zap.String("status", string(status)),
	)

	if current.Items == nil {
		current.Items = []PurchaseOrderLine{}
	}
	return current, nil
}
