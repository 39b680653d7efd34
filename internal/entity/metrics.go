package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange is an inclusive reporting window. A zero bound is open.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t lies inside the window, both ends included.
func (tr TimeRange) Contains(t time.Time) bool {
	if !tr.From.IsZero() && t.Before(tr.From) {
		return false
	}
	if !tr.To.IsZero() && t.After(tr.To) {
		return false
	}
	return true
}

// Bounded reports whether both ends of the window are set.
func (tr TimeRange) Bounded() bool {
	return !tr.From.IsZero() && !tr.To.IsZero()
}

// IsZero reports whether the window covers the full history.
func (tr TimeRange) IsZero() bool {
	return tr.From.IsZero() && tr.To.IsZero()
}

// Granularity is the size of a time bucket.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityWeekly  Granularity = "weekly"
	GranularityMonthly Granularity = "monthly"
)

// SalesSummary totals the orders of a window.
type SalesSummary struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	CompletedOrders   int             `json:"completedOrders"`
	PendingOrders     int             `json:"pendingOrders"`
	CancelledOrders   int             `json:"cancelledOrders"`
}

// TimeSeriesPoint is one bucket of an order time series.
type TimeSeriesPoint struct {
	Period            string          `json:"period"`
	Orders            int             `json:"orders"`
	Revenue           decimal.Decimal `json:"revenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// ProductSales is the sales performance of one product.
type ProductSales struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	SKU          string          `json:"sku"`
	CategoryID   string          `json:"categoryId,omitempty"`
	TotalSold    int             `json:"totalSold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	OrderCount   int             `json:"orderCount"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// SalesReport is the sales overview of a window.
type SalesReport struct {
	Summary     SalesSummary      `json:"summary"`
	ChartData   []TimeSeriesPoint `json:"chartData"`
	TopProducts []ProductSales    `json:"topProducts"`
}

// PaymentMethodRevenue is the paid revenue collected through one payment method.
type PaymentMethodRevenue struct {
	PaymentMethod string          `json:"paymentMethod"`
	Revenue       decimal.Decimal `json:"revenue"`
	Count         int             `json:"count"`
}

// RevenueReport holds realized revenue per day and per payment method.
type RevenueReport struct {
	DailyRevenue           []TimeSeriesPoint      `json:"dailyRevenue"`
	PaymentMethodBreakdown []PaymentMethodRevenue `json:"paymentMethodBreakdown"`
}

// CategorySales is the sales performance of one category.
type CategorySales struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	TotalSold    int             `json:"totalSold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	OrderCount   int             `json:"orderCount"`
}

// CustomerSummary splits the customers of a window into new and returning.
type CustomerSummary struct {
	NewCustomers             int             `json:"newCustomers"`
	ReturningCustomers       int             `json:"returningCustomers"`
	TotalCustomers           int             `json:"totalCustomers"`
	AverageOrdersPerCustomer decimal.Decimal `json:"averageOrdersPerCustomer"`
	AverageSpentPerCustomer  decimal.Decimal `json:"averageSpentPerCustomer"`
}

// CustomerValue is the spend of one customer.
type CustomerValue struct {
	CustomerID        string          `json:"customerId"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"customerEmail"`
	TotalSpent        decimal.Decimal `json:"totalSpent"`
	OrderCount        int             `json:"orderCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// CustomerReport is the customer overview of a window.
type CustomerReport struct {
	Summary      CustomerSummary `json:"summary"`
	TopCustomers []CustomerValue `json:"topCustomers"`
}

// SegmentSummary aggregates the customers of one spend tier.
type SegmentSummary struct {
	Segment           string          `json:"segment"`
	CustomerCount     int             `json:"customerCount"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// RFMSegmentSummary aggregates the customers of one RFM segment.
type RFMSegmentSummary struct {
	Segment          string          `json:"segment"`
	CustomerCount    int             `json:"customerCount"`
	TotalValue       decimal.Decimal `json:"totalValue"`
	AverageRecency   decimal.Decimal `json:"avgRecency"`
	AverageFrequency decimal.Decimal `json:"avgFrequency"`
	AverageMonetary  decimal.Decimal `json:"avgMonetary"`
}

// CustomerLifetimeValue is the all-time value of one customer.
type CustomerLifetimeValue struct {
	CustomerID        string          `json:"customerId"`
	CustomerName      string          `json:"customerName"`
	CustomerEmail     string          `json:"customerEmail"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	OrderCount        int             `json:"orderCount"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	FirstOrder        time.Time       `json:"firstOrder"`
	LastOrder         time.Time       `json:"lastOrder"`
	LifetimeDays      decimal.Decimal `json:"customerLifetimeDays"`
}

// Cohort groups customers by the month of their first order.
type Cohort struct {
	CohortMonth  string          `json:"cohortMonth"`
	Customers    int             `json:"customers"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	CustomerIDs  []string        `json:"customerIds"`
}

// Delta compares one metric between two periods.
type Delta struct {
	Period1       decimal.Decimal `json:"period1"`
	Period2       decimal.Decimal `json:"period2"`
	Change        decimal.Decimal `json:"change"`
	PercentChange decimal.Decimal `json:"percentChange"`
}

// PeriodSnapshot is the order totals of one comparison period.
type PeriodSnapshot struct {
	Range             TimeRange       `json:"range"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// Comparison is the difference between two periods.
type Comparison struct {
	Period1           PeriodSnapshot `json:"period1"`
	Period2           PeriodSnapshot `json:"period2"`
	Orders            Delta          `json:"orders"`
	Revenue           Delta          `json:"revenue"`
	AverageOrderValue Delta          `json:"averageOrderValue"`
}

// ProductProfit is the gross profit earned on one product.
type ProductProfit struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	SKU          string          `json:"sku"`
	UnitsSold    int             `json:"unitsSold"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	TotalProfit  decimal.Decimal `json:"totalProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// MonthlyRevenue is the realized history a forecast is based on.
type MonthlyRevenue struct {
	Period       string          `json:"period"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
	OrderCount   int             `json:"orderCount"`
}

// ForecastPoint is one projected month.
type ForecastPoint struct {
	Period           string          `json:"period"`
	PredictedRevenue decimal.Decimal `json:"predictedRevenue"`
	Confidence       decimal.Decimal `json:"confidence"`
}

// ForecastReport pairs the revenue history with its projection.
type ForecastReport struct {
	Historical []MonthlyRevenue `json:"historical"`
	Forecast   []ForecastPoint  `json:"forecast"`
	Message    string           `json:"message,omitempty"`
}

// InventorySummary totals the catalog stock.
type InventorySummary struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalValue      decimal.Decimal `json:"totalValue"`
	AveragePrice    decimal.Decimal `json:"averagePrice"`
	LowStockItems   int             `json:"lowStockItems"`
	OutOfStockItems int             `json:"outOfStockItems"`
	TotalStock      int             `json:"totalStock"`
}

// CategoryStock is the stock held in one category.
type CategoryStock struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	ProductCount int             `json:"productCount"`
	TotalValue   decimal.Decimal `json:"totalValue"`
}

// InventoryReport is the stock overview.
type InventoryReport struct {
	Summary           InventorySummary `json:"summary"`
	CategoryBreakdown []CategoryStock  `json:"categoryBreakdown"`
}

// InventoryTurnover relates units sold in a window to the current stock.
type InventoryTurnover struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	SKU          string          `json:"sku"`
	CurrentStock int             `json:"currentStock"`
	SoldQuantity int             `json:"soldQuantity"`
	TurnoverRate decimal.Decimal `json:"turnoverRate"`
}

// OrderTrend is one bucket of the order trend series.
type OrderTrend struct {
	Period            string          `json:"period"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	CompletedOrders   int             `json:"completedOrders"`
	CancelledOrders   int             `json:"cancelledOrders"`
}

// SeasonalTrend aggregates orders of one calendar month across years.
type SeasonalTrend struct {
	Month             int             `json:"month"`
	MonthName         string          `json:"monthName"`
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// PeriodTotals is the order count and revenue of a dashboard period.
type PeriodTotals struct {
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// DashboardStats is the landing page overview.
type DashboardStats struct {
	Today         PeriodTotals `json:"today"`
	Month         PeriodTotals `json:"month"`
	TotalProducts int          `json:"totalProducts"`
	LowStock      int          `json:"lowStock"`
	Customers     int          `json:"totalCustomers"`
}

// DailySales is one row of the sales custom report.
type DailySales struct {
	Date       string          `json:"date"`
	TotalSales decimal.Decimal `json:"totalSales"`
	OrderCount int             `json:"orderCount"`
}

// ProductQuantity is one row of the products custom report.
type ProductQuantity struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

// CustomReport is an ad hoc report built from a request body.
type CustomReport struct {
	ReportID    string         `json:"reportId"`
	ReportType  string         `json:"reportType"`
	GeneratedAt time.Time      `json:"generatedAt"`
	Range       TimeRange      `json:"range"`
	Filters     map[string]any `json:"filters,omitempty"`
	Results     any            `json:"results"`
}

// OrderExport is one exported order.
type OrderExport struct {
	OrderID       string          `json:"orderId"`
	CreatedAt     time.Time       `json:"createdAt"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	PaymentMethod string          `json:"paymentMethod"`
	Items         int             `json:"items"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
}

// ProductExport is one exported product.
type ProductExport struct {
	ProductID     string          `json:"productId"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	CategoryName  string          `json:"categoryName"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"costPrice"`
	StockQuantity int             `json:"stockQuantity"`
	UnitsSold     int             `json:"unitsSold"`
}

// Export is a snapshot of records for download.
type Export struct {
	ExportID   string    `json:"exportId"`
	Type       string    `json:"type"`
	ExportedAt time.Time `json:"exportedAt"`
	Count      int       `json:"count"`
	Records    any       `json:"records"`
	ObjectURL  string    `json:"objectUrl,omitempty"`
}
