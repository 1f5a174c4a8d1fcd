package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos sobre PostgreSQL. Solo inserta y lee.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta el movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (id, product_id, movement_type, quantity, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ProductID, string(m.Type), m.Quantity, nullable(m.Reason), nullable(m.UserID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

const movementSelect = `
	SELECT m.id, m.product_id, m.movement_type, m.quantity, m.reason, m.user_id, m.created_at,
	       COALESCE(p.name, ''), COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM stock_movements m
	LEFT JOIN products p ON p.id = m.product_id
	LEFT JOIN users u ON u.id = m.user_id`

// ListByProduct movimientos del producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	if !isUUID(productID) {
		return []*entity.StockMovement{}, nil
	}
	return r.query(ctx, movementSelect+` WHERE m.product_id = $1 ORDER BY m.created_at DESC, m.id DESC`, productID)
}

// List movimientos de todos los productos, más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, q repository.MovementQuery) ([]*entity.StockMovement, error) {
	w := movementWhere(q)
	query := movementSelect + w.sql() + ` ORDER BY m.created_at DESC, m.id DESC`
	if q.Limit > 0 {
		query += ` LIMIT ` + w.arg(q.Limit) + ` OFFSET ` + w.arg(q.Offset)
	}
	return r.query(ctx, query, w.args...)
}

// Count movimientos que cumplen el filtro.
func (r *StockMovementRepo) Count(ctx context.Context, q repository.MovementQuery) (int, error) {
	w := movementWhere(q)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements m`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}

// DeleteByProduct elimina los movimientos del producto (solo al eliminarlo).
func (r *StockMovementRepo) DeleteByProduct(ctx context.Context, productID string) error {
	if !isUUID(productID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_movements WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete stock movements: %w", err)
	}
	return nil
}

// Mismatches productos cuya suma de deltas difiere de stock_qty.
func (r *StockMovementRepo) Mismatches(ctx context.Context) ([]repository.LedgerMismatch, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.stock_qty, COALESCE(SUM(m.quantity), 0) AS ledger
		FROM products p
		LEFT JOIN stock_movements m ON m.product_id = p.id
		GROUP BY p.id, p.name, p.stock_qty
		HAVING p.stock_qty <> COALESCE(SUM(m.quantity), 0)
		ORDER BY p.name, p.id`)
	if err != nil {
		return nil, fmt.Errorf("reconcile stock: %w", err)
	}
	defer rows.Close()
	out := make([]repository.LedgerMismatch, 0)
	for rows.Next() {
		var m repository.LedgerMismatch
		if err := rows.Scan(&m.ProductID, &m.ProductName, &m.StockQty, &m.LedgerSum); err != nil {
			return nil, fmt.Errorf("scan mismatch: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *StockMovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.StockMovement, 0)
	for rows.Next() {
		var (
			m              entity.StockMovement
			typ            string
			reason, userID *string
		)
		if err := rows.Scan(&m.ID, &m.ProductID, &typ, &m.Quantity, &reason, &userID, &m.CreatedAt,
			&m.ProductName, &m.UserName, &m.UserEmail); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		m.Type = entity.MovementType(typ)
		m.Reason = deref(reason)
		m.UserID = deref(userID)
		out = append(out, &m)
	}
	return out, rows.Err()
}

func movementWhere(q repository.MovementQuery) *where {
	w := &where{}
	if q.Type != "" {
		w.add(`m.movement_type = ?`, string(q.Type))
	}
	return w
}
