package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de una nueva venta. El precio de compra se toma del producto.
type SaleItemRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	Quantity      int             `json:"quantity" validate:"gt=0"`
	UnitSellPrice decimal.Decimal `json:"unit_sell_price"`
}

// CreateSaleRequest body de POST /api/sales.
type CreateSaleRequest struct {
	ClientName  string            `json:"client_name" validate:"max=200"`
	ClientPhone string            `json:"client_phone" validate:"max=50"`
	Status      string            `json:"status" validate:"omitempty,oneof=completed pending cancelled"`
	Notes       string            `json:"notes" validate:"max=1000"`
	SaleDate    *time.Time        `json:"sale_date"`
	Items       []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleItemResponse salida de una línea.
type SaleItemResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name,omitempty"`
	Quantity      int             `json:"quantity"`
	UnitBuyPrice  decimal.Decimal `json:"unit_buy_price"`
	UnitSellPrice decimal.Decimal `json:"unit_sell_price"`
	TotalBuy      decimal.Decimal `json:"total_buy"`
	TotalSell     decimal.Decimal `json:"total_sell"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          string             `json:"id"`
	ClientName  string             `json:"client_name,omitempty"`
	ClientPhone string             `json:"client_phone,omitempty"`
	UserID      string             `json:"user_id,omitempty"`
	UserName    string             `json:"user_name,omitempty"`
	SaleDate    time.Time          `json:"sale_date"`
	TotalBuy    decimal.Decimal    `json:"total_buy"`
	TotalSell   decimal.Decimal    `json:"total_sell"`
	Profit      decimal.Decimal    `json:"profit"`
	Status      string             `json:"status"`
	Notes       string             `json:"notes,omitempty"`
	Items       []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse página de ventas.
type SaleListResponse struct {
	Sales []SaleResponse `json:"sales"`
	PageMeta
}

// SaleStatsResponse agregados de ventas. AverageMargin en porcentaje sobre el ingreso.
type SaleStatsResponse struct {
	TotalSales    int             `json:"total_sales"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalProfit   decimal.Decimal `json:"total_profit"`
	AverageMargin decimal.Decimal `json:"average_margin"`
}
