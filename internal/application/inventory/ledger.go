package inventory

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
)

// StockChange fija el stock de un producto en Target. Se aplica dentro de una transacción.
type StockChange struct {
	ProductID string
	Target    int
	Type      entity.MovementType
	Reason    string
	UserID    string
	Now       time.Time
}

// SetStock bloquea la fila del producto, calcula delta = Target - actual, actualiza el
// producto y escribe un movimiento si delta != 0. El movimiento devuelto es nil si no hubo cambio.
func SetStock(ctx context.Context, tx ports.TxRepos, in StockChange) (*entity.Product, *entity.StockMovement, error) {
	if !in.Type.Valid() {
		return nil, nil, domain.NewValidationError("movement_type", "tipo de movimiento inválido")
	}
	if in.Target < 0 {
		return nil, nil, domain.NewValidationError("quantity", "la cantidad no puede ser negativa")
	}
	product, err := tx.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	delta := in.Target - product.StockQty
	if delta == 0 {
		return product, nil, nil
	}
	product.StockQty = in.Target
	product.UpdatedAt = in.Now
	if err := tx.Products.Update(ctx, product); err != nil {
		return nil, nil, err
	}
	mov, err := RecordMovement(ctx, tx, product.ID, delta, in.Type, in.Reason, in.UserID, in.Now)
	if err != nil {
		return nil, nil, err
	}
	return product, mov, nil
}

// Decrement descuenta qty del stock con un movimiento SELL.
// Devuelve domain.ErrInsufficientStock si el stock no alcanza.
func Decrement(ctx context.Context, tx ports.TxRepos, productID string, qty int, reason, userID string, now time.Time) (*entity.Product, error) {
	product, err := tx.Products.GetForUpdate(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.StockQty < qty {
		return nil, domain.ErrInsufficientStock
	}
	p, _, err := SetStock(ctx, tx, StockChange{
		ProductID: productID,
		Target:    product.StockQty - qty,
		Type:      entity.MovementSell,
		Reason:    reason,
		UserID:    userID,
		Now:       now,
	})
	return p, err
}

// RecordMovement agrega una entrada al libro. delta == 0 no escribe nada.
func RecordMovement(
	ctx context.Context,
	tx ports.TxRepos,
	productID string,
	delta int,
	typ entity.MovementType,
	reason, userID string,
	now time.Time,
) (*entity.StockMovement, error) {
	if delta == 0 {
		return nil, nil
	}
	mov := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      typ,
		Quantity:  delta,
		Reason:    reason,
		UserID:    userID,
		CreatedAt: now,
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, fmt.Errorf("registrar movimiento: %w", err)
	}
	return mov, nil
}

// SignedQty formatea un delta con signo explícito: +5, -3.
func SignedQty(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
