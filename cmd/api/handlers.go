package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/nemonet1337/soukoGo/pkg/warehouse"
)

// Handlers holds HTTP handlers and their dependencies
// HTTPハンドラーと依存関係を保持
type Handlers struct {
	ledger   warehouse.StockLedger
	alerts   warehouse.AlertFeed
	orders   warehouse.OrderWorkflow
	reporter *warehouse.Reporter
	registry *warehouse.Registry
	storage  warehouse.Storage
	logger   *zap.Logger
}

// NewHandlers creates a new handlers instance
// 新しいハンドラーインスタンスを作成
func NewHandlers(
	ledger warehouse.StockLedger,
	alerts warehouse.AlertFeed,
	orders warehouse.OrderWorkflow,
	reporter *warehouse.Reporter,
	registry *warehouse.Registry,
	storage warehouse.Storage,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		ledger:   ledger,
		alerts:   alerts,
		orders:   orders,
		reporter: reporter,
		registry: registry,
		storage:  storage,
		logger:   logger,
	}
}

// APIResponse is the uniform response envelope
// 統一レスポンスエンベロープ
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError is the error payload of the envelope
// エンベロープのエラーペイロード
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// sendSuccess writes a success envelope
// 成功エンベロープを書き込み
func (h *Handlers) sendSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(APIResponse{Success: true, Data: data}); err != nil {
		h.logger.Error("レスポンス書き込みに失敗しました", zap.Error(err))
	}
}

// sendError maps an error to the envelope taxonomy and writes it
// エラーをコード体系に対応付けてエンベロープを書き込み
func (h *Handlers) sendError(w http.ResponseWriter, err error) {
	code := warehouse.ErrorCode(err)
	status := statusForCode(code)

	// 内部エラーの詳細はログに残し、レスポンスには出さない
	message := err.Error()
	if code == warehouse.CodeInternalError {
		h.logger.Error("内部エラー", zap.Error(err))
		message = "内部エラーが発生しました"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: detailsFor(err),
		},
	}
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		h.logger.Error("レスポンス書き込みに失敗しました", zap.Error(encErr))
	}
}

// sendUnauthorized writes an UNAUTHORIZED envelope
// 認証エラーエンベロープを書き込み
func sendUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success: false,
		Error: &APIError{
			Code:    warehouse.CodeUnauthorized,
			Message: message,
		},
	})
}

// statusForCode maps taxonomy codes to HTTP statuses
// エラーコードをHTTPステータスに対応付け
func statusForCode(code string) int {
	switch code {
	case warehouse.CodeValidationError:
		return http.StatusBadRequest
	case warehouse.CodeNotFound:
		return http.StatusNotFound
	case warehouse.CodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// detailsFor extracts structured error details where they exist
// 構造化されたエラー詳細を抽出
func detailsFor(err error) interface{} {
	var ise *warehouse.InsufficientStockError
	if errors.As(err, &ise) {
		return map[string]int64{
			"available": ise.Available,
			"requested": ise.Requested,
		}
	}
	var ve *warehouse.ValidationError
	if errors.As(err, &ve) {
		return map[string]string{
			"field": ve.Field,
			"value": ve.Value,
		}
	}
	var te *warehouse.TransitionError
	if errors.As(err, &te) {
		return map[string]string{
			"from": string(te.From),
			"to":   string(te.To),
		}
	}
	return nil
}

// decodeBody decodes a JSON request body
// JSONリクエストボディをデコード
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return warehouse.NewValidationError("body", "JSONのパースに失敗しました", "")
	}
	return nil
}

// HealthCheck handles health check requests
// ヘルスチェックを処理
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status := "healthy"
	httpStatus := http.StatusOK
	if err := h.storage.Ping(ctx); err != nil {
		h.logger.Error("ヘルスチェックに失敗しました", zap.Error(err))
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	h.sendSuccess(w, httpStatus, map[string]string{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
