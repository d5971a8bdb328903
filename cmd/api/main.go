package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nemonet1337/soukoGo/internal/config"
	"github.com/nemonet1337/soukoGo/pkg/warehouse"
	"github.com/nemonet1337/soukoGo/pkg/warehouse/storage"
)

func main() {
	// .envファイル読み込み（存在しない場合は無視）
	_ = godotenv.Load()

	// 設定読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("設定読み込みに失敗しました:", err)
	}

	// ログ設定
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal("ログ初期化に失敗しました:", err)
	}
	defer logger.Sync()

	// データベース接続
	store, err := storage.NewPostgreSQLStorage(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}
	defer store.Close()

	// ドメインサービス初期化
	ledgerConfig := &warehouse.Config{
		DefaultReorderLevel: cfg.Inventory.DefaultReorderLevel,
		MaxRetries:          cfg.Inventory.MaxRetries,
	}
	ledger := warehouse.NewLedger(store, logger, ledgerConfig)
	alerts := warehouse.NewAlertManager(store, logger)
	orders := warehouse.NewOrderManager(store, logger)
	reporter := warehouse.NewReporter(store, logger)
	registry := warehouse.NewRegistry(store, logger)

	// HTTPハンドラー設定
	handlers := NewHandlers(ledger, alerts, orders, reporter, registry, store, logger)
	router := setupRouter(handlers, cfg)

	// HTTPサーバー設定
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.API.Port),
		Handler:      router,
		ReadTimeout:  cfg.API.ReadTimeout,
		WriteTimeout: cfg.API.WriteTimeout,
		IdleTimeout:  cfg.API.IdleTimeout,
	}

	// グレースフルシャットダウン設定
	go func() {
		logger.Info("倉庫管理APIサーバーを開始します", zap.Int("port", cfg.API.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("サーバー開始に失敗しました", zap.Error(err))
		}
	}()

	// シャットダウンシグナル待機
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("サーバーをシャットダウンしています...")

	// グレースフルシャットダウン
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("サーバーシャットダウンに失敗しました", zap.Error(err))
	}

	logger.Info("サーバーが正常に停止しました")
}

// newLogger builds the zap logger from the logging configuration
// ログ設定からzapロガーを構築
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	if cfg.Format == "console" {
		return zap.NewDevelopment()
	}
	zapCfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(cfg.Level); err == nil {
		zapCfg.Level = level
	}
	return zapCfg.Build()
}

// setupRouter sets up HTTP routes
// HTTPルートを設定
func setupRouter(handlers *Handlers, cfg *config.Config) *mux.Router {
	router := mux.NewRouter()

	// ヘルスチェックとメトリクスは認証不要
	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
	if cfg.API.EnableMetrics {
		router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	}

	// API v1ルート（JWT認証必須）
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(cfg.Auth.JWTSecret, handlers.logger))

	// 在庫台帳
	api.HandleFunc("/inventory", handlers.ListInventory).Methods("GET")
	api.HandleFunc("/inventory/movement", handlers.ApplyMovement).Methods("POST")
	api.HandleFunc("/inventory/{id}", handlers.UpdateLevels).Methods("PUT")

	// 商品カタログ
	api.HandleFunc("/products", handlers.CreateProduct).Methods("POST")
	api.HandleFunc("/products", handlers.ListProducts).Methods("GET")
	api.HandleFunc("/products/{id}", handlers.UpdateProduct).Methods("PUT")
	api.HandleFunc("/products/{id}", handlers.DeleteProduct).Methods("DELETE")

	// 倉庫管理
	api.HandleFunc("/warehouses", handlers.CreateWarehouse).Methods("POST")
	api.HandleFunc("/warehouses", handlers.ListWarehouses).Methods("GET")
	api.HandleFunc("/warehouses/{id}", handlers.UpdateWarehouse).Methods("PUT")

	// 発注書
	api.HandleFunc("/purchase-orders", handlers.CreateOrder).Methods("POST")
	api.HandleFunc("/purchase-orders", handlers.ListOrders).Methods("GET")
	api.HandleFunc("/purchase-orders/{id}", handlers.GetOrder).Methods("GET")
	api.HandleFunc("/purchase-orders/{id}/status", handlers.UpdateOrderStatus).Methods("PATCH")

	// アラート
	api.HandleFunc("/alerts", handlers.ListAlerts).Methods("GET")
	api.HandleFunc("/alerts/{id}/acknowledge", handlers.AcknowledgeAlert).Methods("POST")

	// レポート
	api.HandleFunc("/reports/inventory-summary", handlers.InventorySummaryReport).Methods("GET")
	api.HandleFunc("/reports/low-stock", handlers.LowStockReport).Methods("GET")
	api.HandleFunc("/reports/turnover", handlers.TurnoverReport).Methods("GET")

	// 共通ミドルウェア
	if cfg.API.EnableCORS {
		router.Use(corsMiddleware)
	}
	router.Use(loggingMiddleware(handlers.logger))
	router.Use(metricsMiddleware)

	return router
}
