package warehouse

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Reporter folds inventory and movement state into report payloads
// 在庫・移動状態を集計してレポートを生成
type Reporter struct {
	storage Storage
	logger  *zap.Logger
}

// NewReporter creates a new reporter
// 新しいレポーターを作成
func NewReporter(storage Storage, logger *zap.Logger) *Reporter {
	return &Reporter{
		storage: storage,
		logger:  logger,
	}
}

// CategorySummary is the per-category rollup of the inventory summary
// カテゴリ別の集計
type CategorySummary struct {
	Name         string          `json:"name"`
	ProductCount int64           `json:"product_count"`
	StockValue   decimal.Decimal `json:"stock_value"`
}

// InventorySummary is the top-level stock overview
// 在庫全体のサマリー
type InventorySummary struct {
	TotalProducts    int64             `json:"total_products"`
	TotalStockValue  decimal.Decimal   `json:"total_stock_value"`
	LowStockItems    int64             `json:"low_stock_items"`
	OutOfStockItems  int64             `json:"out_of_stock_items"`
	ActiveWarehouses int64             `json:"active_warehouses"`
	Categories       []CategorySummary `json:"categories"`
}

// InventorySummary computes total counts, total stock value and the
// per-category rollup. Records whose product has no category fall into
// "Uncategorized".
// 在庫サマリーを計算（カテゴリ未設定は "Uncategorized" に集約）
func (r *Reporter) InventorySummary(ctx context.Context) (*InventorySummary, error) {
	totalProducts, err := r.storage.CountProducts(ctx)
	if err != nil {
		return nil, NewStorageError("count_products", "商品数取得に失敗しました", err)
	}

	stock, err := r.storage.ListStock(ctx, StockFilter{})
	if err != nil {
		return nil, NewStorageError("list_stock", "在庫一覧取得に失敗しました", err)
	}

	activeWarehouses, err := r.storage.CountActiveWarehouses(ctx)
	if err != nil {
		return nil, NewStorageError("count_warehouses", "倉庫数取得に失敗しました", err)
	}

	summary := &InventorySummary{
		TotalProducts:    totalProducts,
		TotalStockValue:  decimal.Zero,
		ActiveWarehouses: activeWarehouses,
	}

	byCategory := make(map[string]*CategorySummary)
	for _, rec := range stock {
		value := rec.ProductPrice.Mul(decimal.NewFromInt(rec.Quantity))
		summary.TotalStockValue = summary.TotalStockValue.Add(value)

		switch {
		case rec.Quantity == 0:
			summary.OutOfStockItems++
		case rec.Quantity <= rec.ReorderLevel:
			summary.LowStockItems++
		}

		category := rec.ProductCategory
		if category == "" {
			category = "Uncategorized"
		}
		cs, ok := byCategory[category]
		if !ok {
			cs = &CategorySummary{Name: category, StockValue: decimal.Zero}
			byCategory[category] = cs
		}
		cs.ProductCount++
		cs.StockValue = cs.StockValue.Add(value)
	}

	summary.TotalStockValue = summary.TotalStockValue.Round(2)
	summary.Categories = make([]CategorySummary, 0, len(byCategory))
	for _, cs := range byCategory {
		cs.StockValue = cs.StockValue.Round(2)
		summary.Categories = append(summary.Categories, *cs)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Name < summary.Categories[j].Name
	})

	return summary, nil
}

// LowStockItem is one line of the low-stock report
// 低在庫レポートの1行
type LowStockItem struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	WarehouseID       string          `json:"warehouse_id"`
	ProductName       string          `json:"product_name"`
	ProductSKU        string          `json:"product_sku"`
	ProductCategory   string          `json:"product_category"`
	ProductPrice      decimal.Decimal `json:"product_price"`
	WarehouseName     string          `json:"warehouse_name"`
	WarehouseLocation string          `json:"warehouse_location"`
	CurrentQuantity   int64           `json:"current_quantity"`
	ReservedQuantity  int64           `json:"reserved_quantity"`
	AvailableQuantity int64           `json:"available_quantity"`
	ReorderLevel      int64           `json:"reorder_level"`
	Shortage          int64           `json:"shortage"`
	ShortageValue     decimal.Decimal `json:"shortage_value"`
	Priority          Priority        `json:"priority"`
	LastUpdated       time.Time       `json:"last_updated"`
	DaysSinceUpdate   int64           `json:"days_since_update"`
}

// LowStockSummary counts report lines per priority tier
// 優先度別の件数サマリー
type LowStockSummary struct {
	TotalItems          int64           `json:"total_items"`
	CriticalItems       int64           `json:"critical_items"`
	HighPriorityItems   int64           `json:"high_priority_items"`
	MediumPriorityItems int64           `json:"medium_priority_items"`
	LowPriorityItems    int64           `json:"low_priority_items"`
	TotalShortageValue  decimal.Decimal `json:"total_shortage_value"`
}

// LowStockReport is the low-stock report payload
// 低在庫レポート全体
type LowStockReport struct {
	Summary LowStockSummary `json:"summary"`
	Items   []LowStockItem  `json:"items"`
}

// LowStock builds the low-stock report: every record at or below its
// reorder level with priority, shortage and shortage value, sorted
// ascending by quantity, plus a per-tier summary.
// 低在庫レポートを生成（数量の昇順、優先度別サマリー付き）
func (r *Reporter) LowStock(ctx context.Context) (*LowStockReport, error) {
	records, err := r.storage.ListLowStock(ctx)
	if err != nil {
		return nil, NewStorageError("list_low_stock", "低在庫一覧取得に失敗しました", err)
	}

	now := time.Now()
	report := &LowStockReport{
		Summary: LowStockSummary{TotalShortageValue: decimal.Zero},
		Items:   make([]LowStockItem, 0, len(records)),
	}

	for _, rec := range records {
		shortage := Shortage(rec.Quantity, rec.ReorderLevel)
		shortageValue := rec.ProductPrice.Mul(decimal.NewFromInt(shortage)).Round(2)
		priority := ClassifyPriority(rec.Quantity, rec.ReorderLevel)

		report.Items = append(report.Items, LowStockItem{
			ID:                rec.ID,
			ProductID:         rec.ProductID,
			WarehouseID:       rec.WarehouseID,
			ProductName:       rec.ProductName,
			ProductSKU:        rec.ProductSKU,
			ProductCategory:   rec.ProductCategory,
			ProductPrice:      rec.ProductPrice,
			WarehouseName:     rec.WarehouseName,
			WarehouseLocation: rec.WarehouseLocation,
			CurrentQuantity:   rec.Quantity,
			ReservedQuantity:  rec.ReservedQuantity,
			AvailableQuantity: rec.Quantity - rec.ReservedQuantity,
			ReorderLevel:      rec.ReorderLevel,
			Shortage:          shortage,
			ShortageValue:     shortageValue,
			Priority:          priority,
			LastUpdated:       rec.LastUpdated,
			DaysSinceUpdate:   int64(now.Sub(rec.LastUpdated).Hours() / 24),
		})

		report.Summary.TotalItems++
		report.Summary.TotalShortageValue = report.Summary.TotalShortageValue.Add(shortageValue)
		switch priority {
		case PriorityCritical:
			report.Summary.CriticalItems++
		case PriorityHigh:
			report.Summary.HighPriorityItems++
		case PriorityMedium:
			report.Summary.MediumPriorityItems++
		case PriorityLow:
			report.Summary.LowPriorityItems++
		}
	}

	report.Summary.TotalShortageValue = report.Summary.TotalShortageValue.Round(2)
	return report, nil
}

// TurnoverItem is one product's turnover over the requested period
// 期間内の商品1件の回転率
type TurnoverItem struct {
	ProductID          string  `json:"product_id"`
	ProductName        string  `json:"product_name"`
	SKU                string  `json:"sku"`
	BeginningInventory int64   `json:"beginning_inventory"`
	EndingInventory    int64   `json:"ending_inventory"`
	UnitsSold          int64   `json:"units_sold"`
	AverageInventory   float64 `json:"average_inventory"`
	TurnoverRatio      float64 `json:"turnover_ratio"`
}

// ParsePeriod maps a period token to its duration. Unknown tokens fall
// back to 30 days, matching the report's default.
// 期間トークンを期間長に変換（不明なものは30日）
func ParsePeriod(period string) time.Duration {
	switch period {
	case "7d":
		return 7 * 24 * time.Hour
	case "90d":
		return 90 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// Turnover derives per-product turnover from the persisted movement
// ledger: units sold are the summed OUT quantities in the period and
// the beginning inventory is reconstructed from the current total and
// the period's deltas. No figures are synthesized.
// 移動台帳の実データから回転率を導出（乱数による生成はしない）
func (r *Reporter) Turnover(ctx context.Context, period string) ([]TurnoverItem, error) {
	products, err := r.storage.ListProducts(ctx)
	if err != nil {
		return nil, NewStorageError("list_products", "商品一覧取得に失敗しました", err)
	}

	to := time.Now()
	from := to.Add(-ParsePeriod(period))

	items := make([]TurnoverItem, 0, len(products))
	for _, p := range products {
		ending, err := r.storage.TotalQuantityByProduct(ctx, p.ID)
		if err != nil {
			return nil, NewStorageError("total_quantity", "合計在庫数取得に失敗しました", err)
		}

		inbound, outbound, err := r.storage.SumMovements(ctx, p.ID, from, to)
		if err != nil {
			return nil, NewStorageError("sum_movements", "移動集計に失敗しました", err)
		}

		beginning := ending - inbound + outbound
		if beginning < 0 {
			beginning = 0
		}
		average := float64(beginning+ending) / 2

		ratio := 0.0
		if average > 0 {
			ratio = math.Round(float64(outbound)/average*100) / 100
		}

		items = append(items, TurnoverItem{
			ProductID:          p.ID,
			ProductName:        p.Name,
			SKU:                p.SKU,
			BeginningInventory: beginning,
			EndingInventory:    ending,
			UnitsSold:          outbound,
			AverageInventory:   average,
			TurnoverRatio:      ratio,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].TurnoverRatio > items[j].TurnoverRatio
	})
	return items, nil
}
