package entity

import "time"

// MovementType causa de un movimiento de stock.
type MovementType string

// Tipos de movimiento de stock.
const (
	MovementBuy    MovementType = "BUY"    // compra / entrada
	MovementSell   MovementType = "SELL"   // venta / salida
	MovementAdjust MovementType = "ADJUST" // ajuste manual o saldo inicial
)

// Valid indica si el tipo es uno de los permitidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementBuy, MovementSell, MovementAdjust:
		return true
	}
	return false
}

// StockMovement entrada inmutable del libro de movimientos.
// Quantity es el delta con signo aplicado a Product.StockQty.
type StockMovement struct {
	ID        string
	ProductID string
	Type      MovementType
	Quantity  int
	Reason    string // opcional
	UserID    string // opcional: usuario que originó el cambio
	CreatedAt time.Time

	// Datos desnormalizados para listados (no se persisten).
	ProductName string
	UserName    string
	UserEmail   string
}
