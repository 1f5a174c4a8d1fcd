package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	TotalStockValue decimal.Decimal `json:"total_stock_value"` // suma de buy_price * stock_qty
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalProducts   int             `json:"total_products"`
	LowStock        int             `json:"low_stock_products"`
	RecentSales     []SaleResponse  `json:"recent_sales"`
	TopProducts     []TopProductDTO `json:"top_products"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// TopProductDTO producto más vendido por cantidad.
type TopProductDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ProfileResponse perfil del usuario autenticado.
type ProfileResponse struct {
	UserResponse
	UpdatedAt time.Time `json:"updated_at"`
}

// ProfileStatsResponse actividad del usuario autenticado.
type ProfileStatsResponse struct {
	TotalSales    int             `json:"total_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	ProductsAdded int             `json:"products_added"`
	LastLogin     *time.Time      `json:"last_login"`
}
