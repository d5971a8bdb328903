package warehouse

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// TestOrderManager_Create は発注書作成と合計計算のテスト
func TestOrderManager_Create(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*warehouse.PurchaseOrder")).Return(nil)

	po, err := manager.Create(ctx, CreateOrderRequest{
		SupplierName: "株式会社サプライ",
		Items: []OrderItemRequest{
			{ProductID: "prod-1", Quantity: 7, UnitPrice: decimal.NewFromInt(5)},
			{ProductID: "prod-2", Quantity: 4, UnitPrice: decimal.NewFromInt(5)},
		},
	})

	// アサーション - 明細合計 35 + 20 = 55
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusPending, po.Status)
	assert.True(t, po.TotalAmount.Equal(decimal.NewFromInt(55)))
	assert.Len(t, po.Items, 2)
	assert.True(t, po.Items[0].TotalPrice.Equal(decimal.NewFromInt(35)))
	assert.True(t, po.Items[1].TotalPrice.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, po.ID, po.Items[0].PurchaseOrderID)
	assert.Regexp(t, `^PO-\d+$`, po.PONumber)
	mockStorage.AssertExpectations(t)
}

// TestOrderManager_Create_EmptyItems は明細なし発注書の拒否のテスト
func TestOrderManager_Create_EmptyItems(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())

	po, err := manager.Create(context.Background(), CreateOrderRequest{
		SupplierName: "株式会社サプライ",
		Items:        []OrderItemRequest{},
	})

	assert.Nil(t, po)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	mockStorage.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

// TestOrderManager_Create_InvalidLine は無効な明細の拒否のテスト
func TestOrderManager_Create_InvalidLine(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name string
		item OrderItemRequest
	}{
		{"数量0", OrderItemRequest{ProductID: "prod-1", Quantity: 0, UnitPrice: decimal.NewFromInt(5)}},
		{"負の単価", OrderItemRequest{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(-5)}},
		{"商品ID空", OrderItemRequest{ProductID: "", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			po, err := manager.Create(ctx, CreateOrderRequest{
				SupplierName: "株式会社サプライ",
				Items:        []OrderItemRequest{tt.item},
			})
			assert.Nil(t, po)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	mockStorage.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

// TestOrderManager_Create_StorageFailure はトランザクション失敗時に
// 発注書が返されないことのテスト
func TestOrderManager_Create_StorageFailure(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateOrder", ctx, mock.AnythingOfType("*warehouse.PurchaseOrder")).
		Return(errors.New("接続が切断されました"))

	po, err := manager.Create(ctx, CreateOrderRequest{
		SupplierName: "株式会社サプライ",
		Items: []OrderItemRequest{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: decimal.NewFromInt(100)},
		},
	})

	assert.Nil(t, po)
	var se *StorageError
	assert.ErrorAs(t, err, &se)
	mockStorage.AssertExpectations(t)
}

// TestCanTransition はステータス遷移表のテスト
func TestCanTransition(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusOrdered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReceived, false},
		{OrderStatusOrdered, OrderStatusReceived, true},
		{OrderStatusOrdered, OrderStatusCancelled, true},
		{OrderStatusOrdered, OrderStatusPending, false},
		{OrderStatusReceived, OrderStatusCancelled, false},
		{OrderStatusReceived, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusOrdered, false},
		// 同一ステータスは常に許可
		{OrderStatusReceived, OrderStatusReceived, true},
		{OrderStatusPending, OrderStatusPending, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to),
			"%s → %s", tt.from, tt.to)
	}
}

// TestOrderManager_UpdateStatus は許可された遷移のテスト
func TestOrderManager_UpdateStatus(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	current := &PurchaseOrder{
		ID:     "po-1",
		Status: OrderStatusPending,
	}

	mockStorage.On("GetOrder", ctx, "po-1").Return(current, nil)
	mockStorage.On("UpdateOrderStatus", ctx, "po-1", OrderStatusOrdered).Return(nil)

	po, err := manager.UpdateStatus(ctx, "po-1", OrderStatusOrdered)

	assert.NoError(t, err)
	assert.Equal(t, OrderStatusOrdered, po.Status)
	mockStorage.AssertExpectations(t)
}

// TestOrderManager_UpdateStatus_Forbidden は遷移表にない遷移の拒否のテスト
func TestOrderManager_UpdateStatus_Forbidden(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	current := &PurchaseOrder{
		ID:     "po-1",
		Status: OrderStatusReceived,
	}

	mockStorage.On("GetOrder", ctx, "po-1").Return(current, nil)

	po, err := manager.UpdateStatus(ctx, "po-1", OrderStatusCancelled)

	assert.Nil(t, po)
	var te *TransitionError
	assert.ErrorAs(t, err, &te)
	assert.Equal(t, OrderStatusReceived, te.From)
	assert.Equal(t, OrderStatusCancelled, te.To)
	mockStorage.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	mockStorage.AssertExpectations(t)
}

// TestOrderManager_UpdateStatus_SameStatus は同一ステータス指定が
// ストレージ更新なしで成功することのテスト
func TestOrderManager_UpdateStatus_SameStatus(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	current := &PurchaseOrder{
		ID:     "po-1",
		Status: OrderStatusOrdered,
	}

	mockStorage.On("GetOrder", ctx, "po-1").Return(current, nil)

	po, err := manager.UpdateStatus(ctx, "po-1", OrderStatusOrdered)

	assert.NoError(t, err)
	assert.Equal(t, OrderStatusOrdered, po.Status)
	mockStorage.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	mockStorage.AssertExpectations(t)
}

// TestOrderManager_UpdateStatus_InvalidStatus は列挙外ステータスの拒否のテスト
func TestOrderManager_UpdateStatus_InvalidStatus(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())

	po, err := manager.UpdateStatus(context.Background(), "po-1", "SHIPPED")

	assert.Nil(t, po)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
	mockStorage.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything)
}

// TestOrderManager_UpdateStatus_NotFound は存在しない発注書のテスト
func TestOrderManager_UpdateStatus_NotFound(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("GetOrder", ctx, "missing").Return(nil, ErrOrderNotFound)

	po, err := manager.UpdateStatus(ctx, "missing", OrderStatusOrdered)

	assert.Nil(t, po)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	mockStorage.AssertExpectations(t)
}

// TestOrderManager_Get_EmptyItems は明細なしヘッダーが空スライスに
// 縮退することのテスト
func TestOrderManager_Get_EmptyItems(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewOrderManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("GetOrder", ctx, "po-1").Return(&PurchaseOrder{ID: "po-1"}, nil)

	po, err := manager.Get(ctx, "po-1")

	assert.NoError(t, err)
	assert.NotNil(t, po.Items)
	assert.Empty(t, po.Items)
	mockStorage.AssertExpectations(t)
}
