package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/domain/entity"
)

// SaleTotals agregados de ventas.
type SaleTotals struct {
	Count   int
	Revenue decimal.Decimal // suma de total_sell
	Cost    decimal.Decimal // suma de total_buy
	Profit  decimal.Decimal
}

// TopProduct producto más vendido por cantidad.
type TopProduct struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// SaleRepository define el puerto de persistencia para ventas (DIP).
type SaleRepository interface {
	// Create persiste la cabecera y sus líneas (sale.Items).
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas, o (nil, nil).
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List ventas más recientes primero (sale_date DESC), sin líneas.
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
	// Totals agregados; userID vacío = todas las ventas.
	Totals(ctx context.Context, userID string) (SaleTotals, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}
