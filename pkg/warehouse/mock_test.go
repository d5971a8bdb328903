package warehouse

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockStorage はテスト用のStorageモック
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateProduct(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStorage) GetProduct(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockStorage) UpdateProduct(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockStorage) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) ListProducts(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockStorage) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateWarehouse(ctx context.Context, w *Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockStorage) GetWarehouse(ctx context.Context, id string) (*Warehouse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Warehouse), args.Error(1)
}

func (m *MockStorage) UpdateWarehouse(ctx context.Context, w *Warehouse) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockStorage) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Warehouse), args.Error(1)
}

func (m *MockStorage) CountActiveWarehouses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateStock(ctx context.Context, s *StockRecord) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStorage) UpdateStock(ctx context.Context, s *StockRecord) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStorage) GetStock(ctx context.Context, productID, warehouseID string) (*StockRecord, error) {
	args := m.Called(ctx, productID, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StockRecord), args.Error(1)
}

func (m *MockStorage) GetStockByID(ctx context.Context, id string) (*StockRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StockRecord), args.Error(1)
}

func (m *MockStorage) GetStockDetail(ctx context.Context, id string) (*StockDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StockDetail), args.Error(1)
}

func (m *MockStorage) ListStock(ctx context.Context, filter StockFilter) ([]StockDetail, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StockDetail), args.Error(1)
}

func (m *MockStorage) ListLowStock(ctx context.Context) ([]StockDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]StockDetail), args.Error(1)
}

func (m *MockStorage) TotalQuantityByProduct(ctx context.Context, productID string) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CreateMovement(ctx context.Context, mv *Movement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}

func (m *MockStorage) SumMovements(ctx context.Context, productID string, from, to time.Time) (int64, int64, error) {
	args := m.Called(ctx, productID, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) CreateOrder(ctx context.Context, po *PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockStorage) GetOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PurchaseOrder), args.Error(1)
}

func (m *MockStorage) ListOrders(ctx context.Context) ([]PurchaseOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]PurchaseOrder), args.Error(1)
}

func (m *MockStorage) UpdateOrderStatus(ctx context.Context, id string, status OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockStorage) SaveAcknowledgement(ctx context.Context, ack *AlertAcknowledgement) error {
	args := m.Called(ctx, ack)
	return args.Error(0)
}

func (m *MockStorage) GetAcknowledgement(ctx context.Context, alertID string) (*AlertAcknowledgement, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AlertAcknowledgement), args.Error(1)
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}
