package warehouse

import (
	"errors"
	"fmt"
)

// Error codes of the response envelope taxonomy
// レスポンスエンベロープのエラーコード体系
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Common warehouse errors
// 共通のエラー定義

var (
	// ErrProductNotFound is returned when a product doesn't exist
	// 商品が存在しない場合のエラー
	ErrProductNotFound = errors.New("商品が見つかりません")

	// ErrWarehouseNotFound is returned when a warehouse doesn't exist
	// 倉庫が存在しない場合のエラー
	ErrWarehouseNotFound = errors.New("倉庫が見つかりません")

	// ErrStockNotFound is returned when a stock record doesn't exist
	// 在庫記録が存在しない場合のエラー
	ErrStockNotFound = errors.New("在庫記録が見つかりません")

	// ErrOrderNotFound is returned when a purchase order doesn't exist
	// 発注書が存在しない場合のエラー
	ErrOrderNotFound = errors.New("発注書が見つかりません")

	// ErrAlertNotFound is returned when an alert id resolves to no stock record
	// アラートIDが在庫記録に対応しない場合のエラー
	ErrAlertNotFound = errors.New("アラートが見つかりません")

	// ErrDuplicateSKU is returned when a product SKU already exists
	// SKUが既に存在する場合のエラー
	ErrDuplicateSKU = errors.New("SKUは既に使用されています")

	// ErrStockExists is returned when a (product, warehouse) record already exists
	// 在庫記録が既に存在する場合のエラー
	ErrStockExists = errors.New("在庫記録は既に存在します")

	// ErrVersionMismatch is returned when optimistic locking fails
	// 楽観的ロック失敗時のエラー
	ErrVersionMismatch = errors.New("バージョンが一致しません。他のユーザーによって更新されています")
)

// ValidationError represents an invalid input with field details
// 詳細付きの入力バリデーションエラーを表現
type ValidationError struct {
	Field   string `json:"field"`   // エラーフィールド
	Message string `json:"message"` // エラーメッセージ
	Value   string `json:"value"`   // 無効な値
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("バリデーションエラー [%s]: %s (値: %s)", e.Field, e.Message, e.Value)
}

// NewValidationError creates a new validation error
// 新しいバリデーションエラーを作成
func NewValidationError(field, message, value string) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// InsufficientStockError rejects an OUT movement that would drive the
// quantity negative. Available and Requested feed the envelope details.
// 在庫数量を負にするOUT移動を拒否するエラー
type InsufficientStockError struct {
	Available int64 `json:"available"` // 現在数量
	Requested int64 `json:"requested"` // 要求数量
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("在庫が不足しています (現在: %d, 要求: %d)", e.Available, e.Requested)
}

// TransitionError rejects a purchase order status transition that the
// workflow table does not allow.
// 遷移表で許可されていない発注ステータス遷移を拒否するエラー
type TransitionError struct {
	From OrderStatus `json:"from"`
	To   OrderStatus `json:"to"`
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("ステータス遷移 %s → %s は許可されていません", e.From, e.To)
}

// StorageError represents a storage layer failure
// ストレージ層のエラーを表現
type StorageError struct {
	Operation string `json:"operation"` // 操作名
	Message   string `json:"message"`   // エラーメッセージ
	Cause     error  `json:"cause"`     // 原因エラー
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ストレージエラー [%s]: %s (原因: %v)", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("ストレージエラー [%s]: %s", e.Operation, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new storage error
// 新しいストレージエラーを作成
func NewStorageError(operation, message string, cause error) *StorageError {
	return &StorageError{Operation: operation, Message: message, Cause: cause}
}

// ErrorCode maps an error to its taxonomy code. Anything unrecognized
// is an INTERNAL_ERROR.
// エラーをコード体系に対応付け（未知のものはINTERNAL_ERROR）
func ErrorCode(err error) string {
	var ve *ValidationError
	var ise *InsufficientStockError
	var te *TransitionError
	switch {
	case errors.As(err, &ve), errors.As(err, &ise), errors.As(err, &te),
		errors.Is(err, ErrDuplicateSKU), errors.Is(err, ErrStockExists):
		return CodeValidationError
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrWarehouseNotFound),
		errors.Is(err, ErrStockNotFound), errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrAlertNotFound):
		return CodeNotFound
	default:
		return CodeInternalError
	}
}
