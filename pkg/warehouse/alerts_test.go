package warehouse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// TestClassifySeverity は欠乏率による緊急度分類のテスト
func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int64
		reorderLevel int64
		wantType     AlertType
		wantSeverity Severity
		wantAlert    bool
	}{
		{"在庫切れ", 0, 10, AlertTypeOutOfStock, SeverityHigh, true},
		{"欠乏率80%以上", 1, 10, AlertTypeLowStock, SeverityHigh, true},
		{"欠乏率80%ちょうど", 2, 10, AlertTypeLowStock, SeverityHigh, true},
		{"欠乏率50%以上", 4, 10, AlertTypeLowStock, SeverityMedium, true},
		{"欠乏率50%ちょうど", 5, 10, AlertTypeLowStock, SeverityMedium, true},
		{"欠乏率50%未満", 8, 10, AlertTypeLowStock, SeverityLow, true},
		{"発注点ちょうど", 10, 10, AlertTypeLowStock, SeverityLow, true},
		{"発注点超え", 11, 10, "", "", false},
		{"発注点0で在庫あり", 5, 0, "", "", false},
		{"発注点0で在庫切れ", 0, 0, AlertTypeOutOfStock, SeverityHigh, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alertType, severity, ok := ClassifySeverity(tt.quantity, tt.reorderLevel)
			assert.Equal(t, tt.wantAlert, ok)
			assert.Equal(t, tt.wantType, alertType)
			assert.Equal(t, tt.wantSeverity, severity)
		})
	}
}

// TestClassifyPriority は絶対数量閾値による優先度分類のテスト
// （緊急度とは独立した別体系）
func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name         string
		quantity     int64
		reorderLevel int64
		want         Priority
	}{
		{"在庫切れ", 0, 10, PriorityCritical},
		{"発注点の30%未満", 2, 10, PriorityHigh},
		{"発注点の30%ちょうどは対象外", 3, 10, PriorityMedium},
		{"発注点の60%未満", 5, 10, PriorityMedium},
		{"発注点の60%以上", 6, 10, PriorityLow},
		{"発注点ちょうど", 10, 10, PriorityLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPriority(tt.quantity, tt.reorderLevel))
		})
	}
}

// TestSeverityAndPriorityDiverge は同じ在庫状態でも緊急度と優先度が
// 別の判定になることのテスト
func TestSeverityAndPriorityDiverge(t *testing.T) {
	// 数量4 / 発注点10: 欠乏率0.6 → MEDIUM緊急度、
	// 数量4は発注点の40%（30%以上60%未満）→ MEDIUM優先度
	_, severity, ok := ClassifySeverity(4, 10)
	assert.True(t, ok)
	assert.Equal(t, SeverityMedium, severity)
	assert.Equal(t, PriorityMedium, ClassifyPriority(4, 10))

	// 数量2 / 発注点10: 欠乏率0.8 → HIGH緊急度、
	// 数量2は発注点の20% → HIGH優先度
	_, severity, ok = ClassifySeverity(2, 10)
	assert.True(t, ok)
	assert.Equal(t, SeverityHigh, severity)
	assert.Equal(t, PriorityHigh, ClassifyPriority(2, 10))
}

func lowStockDetail(id string, quantity, reorderLevel int64, lastUpdated time.Time) StockDetail {
	return StockDetail{
		StockRecord: StockRecord{
			ID:           id,
			ProductID:    "prod-1",
			WarehouseID:  "wh-1",
			Quantity:     quantity,
			ReorderLevel: reorderLevel,
			LastUpdated:  lastUpdated,
		},
		ProductName:   "テスト商品",
		ProductSKU:    "TEST-001",
		WarehouseName: "テスト倉庫",
	}
}

// TestAlertManager_Feed は在庫状態からのアラート導出のテスト
func TestAlertManager_Feed(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewAlertManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	now := time.Now()
	records := []StockDetail{
		lowStockDetail("stock-1", 0, 10, now),  // 在庫切れ
		lowStockDetail("stock-2", 8, 10, now),  // 低在庫
		lowStockDetail("stock-3", 5, 0, now),   // 発注点0 → アラート対象外
	}

	mockStorage.On("ListLowStock", ctx).Return(records, nil)
	mockStorage.On("GetAcknowledgement", ctx, "alert_stock-1").Return(nil, nil)
	mockStorage.On("GetAcknowledgement", ctx, "alert_stock-2").Return(nil, nil)

	alerts, err := manager.Feed(ctx)

	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	assert.Equal(t, "alert_stock-1", alerts[0].ID)
	assert.Equal(t, AlertTypeOutOfStock, alerts[0].Type)
	assert.Equal(t, SeverityHigh, alerts[0].Severity)
	assert.Equal(t, AlertTypeLowStock, alerts[1].Type)
	assert.Equal(t, SeverityLow, alerts[1].Severity)
	assert.False(t, alerts[0].IsAcknowledged)
	mockStorage.AssertExpectations(t)
}

// TestAlertManager_Feed_AcknowledgementMasks は確認記録が在庫更新より
// 新しい間だけアラートが確認済みになることのテスト
func TestAlertManager_Feed_AcknowledgementMasks(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewAlertManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	lastUpdated := time.Now().Add(-2 * time.Hour)
	records := []StockDetail{
		lowStockDetail("stock-1", 3, 10, lastUpdated),
		lowStockDetail("stock-2", 3, 10, time.Now()), // 確認後に在庫が動いた
	}

	ackTime := time.Now().Add(-time.Hour)
	mockStorage.On("ListLowStock", ctx).Return(records, nil)
	mockStorage.On("GetAcknowledgement", ctx, "alert_stock-1").Return(&AlertAcknowledgement{
		AlertID:        "alert_stock-1",
		AcknowledgedAt: ackTime,
	}, nil)
	mockStorage.On("GetAcknowledgement", ctx, "alert_stock-2").Return(&AlertAcknowledgement{
		AlertID:        "alert_stock-2",
		AcknowledgedAt: ackTime,
	}, nil)

	alerts, err := manager.Feed(ctx)

	assert.NoError(t, err)
	assert.Len(t, alerts, 2)
	// 確認が最終更新より新しい → 確認済み
	assert.True(t, alerts[0].IsAcknowledged)
	// 確認後に在庫が更新された → 再度未確認に戻る
	assert.False(t, alerts[1].IsAcknowledged)
	mockStorage.AssertExpectations(t)
}

// TestAlertManager_Acknowledge はアラート確認の永続記録のテスト
func TestAlertManager_Acknowledge(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewAlertManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	detail := lowStockDetail("stock-1", 3, 10, time.Now())
	mockStorage.On("GetStockDetail", ctx, "stock-1").Return(&detail, nil)
	mockStorage.On("SaveAcknowledgement", ctx, mock.AnythingOfType("*warehouse.AlertAcknowledgement")).Return(nil)

	alert, err := manager.Acknowledge(ctx, "alert_stock-1", "user-7")

	assert.NoError(t, err)
	assert.True(t, alert.IsAcknowledged)
	assert.NotNil(t, alert.AcknowledgedAt)
	assert.Equal(t, "alert_stock-1", alert.ID)
	mockStorage.AssertExpectations(t)
}

// TestAlertManager_Acknowledge_NotFound は在庫記録に対応しない
// アラートIDのテスト
func TestAlertManager_Acknowledge_NotFound(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewAlertManager(mockStorage, zap.NewNop())
	ctx := context.Background()

	mockStorage.On("GetStockDetail", ctx, "missing").Return(nil, ErrStockNotFound)

	alert, err := manager.Acknowledge(ctx, "alert_missing", "user-7")

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrAlertNotFound)
	mockStorage.AssertExpectations(t)
}

// TestAlertManager_Acknowledge_InvalidID はプレフィックスのない
// アラートIDのテスト
func TestAlertManager_Acknowledge_InvalidID(t *testing.T) {
	mockStorage := new(MockStorage)
	manager := NewAlertManager(mockStorage, zap.NewNop())

	alert, err := manager.Acknowledge(context.Background(), "stock-1", "user-7")

	assert.Nil(t, alert)
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)
}

// TestStockIDFromAlert はアラートIDの往復変換のテスト
func TestStockIDFromAlert(t *testing.T) {
	id, ok := StockIDFromAlert(AlertIDFor("stock-42"))
	assert.True(t, ok)
	assert.Equal(t, "stock-42", id)

	_, ok = StockIDFromAlert("alert_")
	assert.False(t, ok)
	_, ok = StockIDFromAlert("other_stock-42")
	assert.False(t, ok)
}
