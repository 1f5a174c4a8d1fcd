package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una entrada del catálogo.
// StockQty nunca es negativo; cada cambio de StockQty queda registrado en StockMovement.
type Product struct {
	ID          string
	Name        string
	Description *string // nil si no tiene descripción
	BuyPrice    decimal.Decimal
	StockQty    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DescriptionOrEmpty devuelve la descripción o "" si es nil.
func (p *Product) DescriptionOrEmpty() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// StockValue valor del stock a precio de compra (BuyPrice × StockQty).
func (p *Product) StockValue() decimal.Decimal {
	return p.BuyPrice.Mul(decimal.NewFromInt(int64(p.StockQty)))
}
