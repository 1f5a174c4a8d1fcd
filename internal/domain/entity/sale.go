package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
)

// Sale cabecera de una venta. Profit = TotalSell - TotalBuy.
type Sale struct {
	ID          string
	ClientName  string
	ClientPhone string
	UserID      string
	SaleDate    time.Time
	TotalBuy    decimal.Decimal
	TotalSell   decimal.Decimal
	Profit      decimal.Decimal
	Status      string
	Notes       string
	CreatedAt   time.Time

	Items    []SaleItem
	UserName string // desnormalizado para listados
}

// SaleItem línea de venta. Los precios unitarios se congelan al momento de la venta.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	ProductName   string // desnormalizado para listados
	Quantity      int
	UnitBuyPrice  decimal.Decimal
	UnitSellPrice decimal.Decimal
	TotalBuy      decimal.Decimal
	TotalSell     decimal.Decimal
}
