package warehouse

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ClassifySeverity maps a stock snapshot to its alert type and
// severity. ok is false when the record is not an alert at all
// (quantity above reorder level). With reorderLevel 0 a positive
// quantity is never low, so the deficit ratio division is never
// reached and no NaN severity can occur.
// 在庫スナップショットをアラート種別・緊急度に対応付ける純関数
func ClassifySeverity(quantity, reorderLevel int64) (AlertType, Severity, bool) {
	if quantity == 0 {
		return AlertTypeOutOfStock, SeverityHigh, true
	}
	if quantity > reorderLevel {
		return "", "", false
	}

	// deficitRatio = (発注点 - 数量) / 発注点
	deficitRatio := float64(reorderLevel-quantity) / float64(reorderLevel)
	switch {
	case deficitRatio >= 0.8:
		return AlertTypeLowStock, SeverityHigh, true
	case deficitRatio >= 0.5:
		return AlertTypeLowStock, SeverityMedium, true
	default:
		return AlertTypeLowStock, SeverityLow, true
	}
}

// ClassifyPriority maps a stock snapshot to the low-stock report
// priority tier. This is a separate scheme from ClassifySeverity with
// its own absolute-quantity thresholds; the two must not be unified.
// 低在庫レポート用の優先度を算出する純関数（Severityとは別体系）
func ClassifyPriority(quantity, reorderLevel int64) Priority {
	switch {
	case quantity == 0:
		return PriorityCritical
	case float64(quantity) < float64(reorderLevel)*0.3:
		return PriorityHigh
	case float64(quantity) < float64(reorderLevel)*0.6:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Shortage returns how far the quantity sits below the reorder level
// 発注点に対する不足数を返す
func Shortage(quantity, reorderLevel int64) int64 {
	if reorderLevel <= quantity {
		return 0
	}
	return reorderLevel - quantity
}

// AlertManager derives the alert feed from stock records and keeps the
// durable acknowledgement ledger.
// 在庫記録からアラートフィードを導出し、確認記録を管理
type AlertManager struct {
	storage Storage
	logger  *zap.Logger
}

var _ AlertFeed = (*AlertManager)(nil)

// NewAlertManager creates a new alert manager
// 新しいアラートマネージャーを作成
func NewAlertManager(storage Storage, logger *zap.Logger) *AlertManager {
	return &AlertManager{
		storage: storage,
		logger:  logger,
	}
}

// Feed recomputes all active alerts from current stock state. Alerts
// are never stored; an acknowledgement only masks an alert while it is
// newer than the record's last update, so a later movement re-raises it.
// 現在の在庫状態からアラートを再計算（永続化はしない）
func (am *AlertManager) Feed(ctx context.Context) ([]Alert, error) {
	lowStock, err := am.storage.ListLowStock(ctx)
	if err != nil {
		return nil, NewStorageError("list_low_stock", "低在庫一覧取得に失敗しました", err)
	}

	alerts := make([]Alert, 0, len(lowStock))
	for _, rec := range lowStock {
		alert, ok := am.buildAlert(ctx, &rec)
		if !ok {
			continue
		}
		alerts = append(alerts, *alert)
	}

	activeAlerts.Set(float64(len(alerts)))
	return alerts, nil
}

// Acknowledge durably records that userID has seen the alert. The
// underlying stock record must still exist.
// アラート確認を永続記録する
func (am *AlertManager) Acknowledge(ctx context.Context, alertID, userID string) (*Alert, error) {
	stockID, ok := StockIDFromAlert(alertID)
	if !ok {
		return nil, NewValidationError("id", "アラートIDの形式が不正です", alertID)
	}

	detail, err := am.storage.GetStockDetail(ctx, stockID)
	if err != nil {
		if errors.Is(err, ErrStockNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, NewStorageError("get_stock", "在庫取得に失敗しました", err)
	}

	ack := &AlertAcknowledgement{
		AlertID:        alertID,
		InventoryID:    stockID,
		AcknowledgedBy: userID,
		AcknowledgedAt: time.Now(),
	}
	if err := am.storage.SaveAcknowledgement(ctx, ack); err != nil {
		return nil, NewStorageError("save_acknowledgement", "確認記録の保存に失敗しました", err)
	}

	am.logger.Info("アラート確認完了",
		zap.String("alert_id", alertID),
		zap.String("acknowledged_by", userID),
	)

	alert, isAlert := am.snapshotAlert(detail)
	if !isAlert {
		// 在庫は回復済みだが確認操作自体は成功として返す
		alert = &Alert{
			ID:              alertID,
			ProductID:       detail.ProductID,
			WarehouseID:     detail.WarehouseID,
			CurrentQuantity: detail.Quantity,
			ReorderLevel:    detail.ReorderLevel,
			CreatedAt:       detail.LastUpdated,
		}
	}
	alert.IsAcknowledged = true
	alert.AcknowledgedAt = &ack.AcknowledgedAt
	return alert, nil
}

// buildAlert classifies one record and overlays its acknowledgement state
// 在庫記録1件を分類し確認状態を付与
func (am *AlertManager) buildAlert(ctx context.Context, rec *StockDetail) (*Alert, bool) {
	alert, ok := am.snapshotAlert(rec)
	if !ok {
		return nil, false
	}

	ack, err := am.storage.GetAcknowledgement(ctx, alert.ID)
	if err != nil {
		am.logger.Warn("確認記録の取得に失敗しました", zap.String("alert_id", alert.ID), zap.Error(err))
	}
	if ack != nil && !ack.AcknowledgedAt.Before(rec.LastUpdated) {
		alert.IsAcknowledged = true
		alert.AcknowledgedAt = &ack.AcknowledgedAt
	}
	return alert, true
}

// snapshotAlert maps a stock detail to an alert snapshot
// 在庫詳細をアラートスナップショットに変換
func (am *AlertManager) snapshotAlert(rec *StockDetail) (*Alert, bool) {
	alertType, severity, ok := ClassifySeverity(rec.Quantity, rec.ReorderLevel)
	if !ok {
		return nil, false
	}

	return &Alert{
		ID:                AlertIDFor(rec.ID),
		Type:              alertType,
		Severity:          severity,
		ProductID:         rec.ProductID,
		WarehouseID:       rec.WarehouseID,
		ProductName:       rec.ProductName,
		ProductSKU:        rec.ProductSKU,
		WarehouseName:     rec.WarehouseName,
		WarehouseLocation: rec.WarehouseLocation,
		CurrentQuantity:   rec.Quantity,
		ReorderLevel:      rec.ReorderLevel,
		CreatedAt:         rec.LastUpdated,
	}, true
}
