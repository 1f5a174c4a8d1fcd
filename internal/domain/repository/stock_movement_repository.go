package repository

import (
	"context"

	"github.com/jhoicas/stockpro/internal/domain/entity"
)

// MovementQuery filtros del listado global de movimientos. Type vacío = todos.
type MovementQuery struct {
	Type   entity.MovementType
	Limit  int
	Offset int
}

// LedgerMismatch producto cuyo saldo del libro no coincide con su stock.
type LedgerMismatch struct {
	ProductID   string
	ProductName string
	StockQty    int
	LedgerSum   int
}

// StockMovementRepository define el puerto de persistencia para el libro de movimientos (DIP).
// Los movimientos son inmutables: no hay Update.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct movimientos del producto, más recientes primero, con nombre y email del usuario.
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	// List movimientos de todos los productos, más recientes primero, con el nombre del producto.
	List(ctx context.Context, q MovementQuery) ([]*entity.StockMovement, error)
	Count(ctx context.Context, q MovementQuery) (int, error)
	// DeleteByProduct se usa solo al eliminar el producto.
	DeleteByProduct(ctx context.Context, productID string) error
	// Mismatches productos cuya suma de deltas difiere de stock_qty.
	Mismatches(ctx context.Context) ([]LedgerMismatch, error)
}
