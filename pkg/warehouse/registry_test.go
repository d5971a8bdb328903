package warehouse

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// TestRegistry_CreateProduct は商品登録のテスト
func TestRegistry_CreateProduct(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateProduct", ctx, mock.AnythingOfType("*warehouse.Product")).Return(nil)

	p := &Product{
		Name:  "ノートパソコン",
		SKU:   "LAPTOP-001",
		Price: decimal.NewFromInt(128000),
	}
	err := registry.CreateProduct(ctx, p)

	// ID・タイムスタンプ・空仕様マップが補完される
	assert.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.NotNil(t, p.Specification)
	mockStorage.AssertExpectations(t)
}

// TestRegistry_CreateProduct_DuplicateSKU はSKU重複の拒否のテスト
func TestRegistry_CreateProduct_DuplicateSKU(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateProduct", ctx, mock.AnythingOfType("*warehouse.Product")).Return(ErrDuplicateSKU)

	err := registry.CreateProduct(ctx, &Product{
		Name:  "ノートパソコン",
		SKU:   "LAPTOP-001",
		Price: decimal.NewFromInt(128000),
	})

	assert.ErrorIs(t, err, ErrDuplicateSKU)
	assert.Equal(t, CodeValidationError, ErrorCode(err))
	mockStorage.AssertExpectations(t)
}

// TestRegistry_CreateProduct_Invalid は無効な商品の拒否のテスト
func TestRegistry_CreateProduct_Invalid(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	tests := []struct {
		name    string
		product Product
	}{
		{"名前なし", Product{SKU: "SKU-1", Price: decimal.NewFromInt(100)}},
		{"SKUなし", Product{Name: "商品", Price: decimal.NewFromInt(100)}},
		{"負の単価", Product{Name: "商品", SKU: "SKU-1", Price: decimal.NewFromInt(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.product
			err := registry.CreateProduct(ctx, &p)
			var ve *ValidationError
			assert.ErrorAs(t, err, &ve)
		})
	}

	mockStorage.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

// TestRegistry_CreateWarehouse は倉庫登録のテスト
func TestRegistry_CreateWarehouse(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("CreateWarehouse", ctx, mock.AnythingOfType("*warehouse.Warehouse")).Return(nil)

	w := &Warehouse{Name: "東京第一倉庫", Location: "Tokyo", IsActive: true}
	err := registry.CreateWarehouse(ctx, w)

	assert.NoError(t, err)
	assert.NotEmpty(t, w.ID)
	mockStorage.AssertExpectations(t)
}

// TestRegistry_UpdateProduct_NotFound は存在しない商品の更新のテスト
func TestRegistry_UpdateProduct_NotFound(t *testing.T) {
	mockStorage := new(MockStorage)
	registry := NewRegistry(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("UpdateProduct", ctx, mock.AnythingOfType("*warehouse.Product")).Return(ErrProductNotFound)

	updated, err := registry.UpdateProduct(ctx, &Product{
		ID:    "missing",
		Name:  "商品",
		SKU:   "SKU-1",
		Price: decimal.NewFromInt(100),
	})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, ErrProductNotFound)
	mockStorage.AssertExpectations(t)
}
