package warehouse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const maxQuantity = 999999999

// ValidateRecordID レコードIDの形式をバリデーション
func ValidateRecordID(field, id string) error {
	if id == "" {
		return NewValidationError(field, "IDが空です", id)
	}
	if len(id) > 255 {
		return NewValidationError(field, "IDが長すぎます", id)
	}
	return nil
}

// ValidateMovementQuantity 移動数量をバリデーション（厳密に正）
func ValidateMovementQuantity(quantity int64) error {
	if quantity <= 0 {
		return NewValidationError("quantity", "数量は正の値である必要があります", fmt.Sprintf("%d", quantity))
	}
	if quantity > maxQuantity {
		return NewValidationError("quantity", "数量が有効範囲を超えています", fmt.Sprintf("%d", quantity))
	}
	return nil
}

// ValidateLevel 在庫水準（数量・発注点）をバリデーション（0以上）
func ValidateLevel(field string, level int64) error {
	if level < 0 {
		return NewValidationError(field, "0以上である必要があります", fmt.Sprintf("%d", level))
	}
	if level > maxQuantity {
		return NewValidationError(field, "有効範囲を超えています", fmt.Sprintf("%d", level))
	}
	return nil
}

// ValidateDirection 移動方向をバリデーション
func ValidateDirection(direction Direction) error {
	if direction != DirectionIn && direction != DirectionOut {
		return NewValidationError("direction", "方向はINまたはOUTである必要があります", string(direction))
	}
	return nil
}

// ValidateProductName 商品名をバリデーション
func ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "商品名が空です", name)
	}
	if len(name) > 500 {
		return NewValidationError("name", "商品名が長すぎます", name)
	}
	return nil
}

// ValidateSKU SKUの形式をバリデーション
func ValidateSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return NewValidationError("sku", "SKUが空です", sku)
	}
	if len(sku) > 255 {
		return NewValidationError("sku", "SKUが長すぎます", sku)
	}
	return nil
}

// ValidateWarehouseName 倉庫名をバリデーション
func ValidateWarehouseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("name", "倉庫名が空です", name)
	}
	if len(name) > 500 {
		return NewValidationError("name", "倉庫名が長すぎます", name)
	}
	return nil
}

// ValidatePrice 単価をバリデーション（0以上）
func ValidatePrice(field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return NewValidationError(field, "単価は0以上である必要があります", price.String())
	}
	return nil
}

// ValidateSupplierName 仕入先名をバリデーション
func ValidateSupplierName(name string) error {
	if strings.TrimSpace(name) == "" {
		return NewValidationError("supplier_name", "仕入先名が空です", name)
	}
	if len(name) > 500 {
		return NewValidationError("supplier_name", "仕入先名が長すぎます", name)
	}
	return nil
}

// ValidateReference 参照番号をバリデーション（任意）
func ValidateReference(reference string) error {
	if len(reference) > 500 {
		return NewValidationError("reference", "参照番号が長すぎます", reference)
	}
	return nil
}

// ValidateNotes 備考をバリデーション（任意）
func ValidateNotes(notes string) error {
	if len(notes) > 2000 {
		return NewValidationError("notes", "備考が長すぎます", notes)
	}
	return nil
}

// ValidateOrderStatus 発注ステータスをバリデーション
func ValidateOrderStatus(status OrderStatus) error {
	if !status.Valid() {
		return NewValidationError("status",
			"ステータスはPENDING、ORDERED、RECEIVED、CANCELLEDのいずれかである必要があります",
			string(status))
	}
	return nil
}
