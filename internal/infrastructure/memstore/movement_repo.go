package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria, en orden de inserción.
type MovementRepo struct{ base }

// Create agrega el movimiento al final del libro.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	return r.do(ctx, func(st *state) error {
		m := *movement
		m.ProductName, m.UserName, m.UserEmail = "", "", ""
		st.movements = append(st.movements, &m)
		return nil
	})
}

// ListByProduct más recientes primero, con nombre y email del usuario.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(ctx, func(st *state) error {
		for _, m := range newestFirst(st.movements) {
			if m.ProductID != productID {
				continue
			}
			c := *m
			if u := st.users[m.UserID]; u != nil {
				c.UserName, c.UserEmail = u.Name, u.Email
			}
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// List movimientos de todos los productos, más recientes primero.
func (r *MovementRepo) List(ctx context.Context, q repository.MovementQuery) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(ctx, func(st *state) error {
		skipped := 0
		for _, m := range newestFirst(st.movements) {
			if q.Type != "" && m.Type != q.Type {
				continue
			}
			if skipped < q.Offset {
				skipped++
				continue
			}
			if q.Limit > 0 && len(out) >= q.Limit {
				break
			}
			c := *m
			if p := st.products[m.ProductID]; p != nil {
				c.ProductName = p.Name
			}
			if u := st.users[m.UserID]; u != nil {
				c.UserName, c.UserEmail = u.Name, u.Email
			}
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// Count movimientos que cumplen el filtro de tipo.
func (r *MovementRepo) Count(ctx context.Context, q repository.MovementQuery) (int, error) {
	n := 0
	err := r.do(ctx, func(st *state) error {
		for _, m := range st.movements {
			if q.Type == "" || m.Type == q.Type {
				n++
			}
		}
		return nil
	})
	return n, err
}

// DeleteByProduct elimina los movimientos del producto.
func (r *MovementRepo) DeleteByProduct(ctx context.Context, productID string) error {
	return r.do(ctx, func(st *state) error {
		kept := st.movements[:0:0]
		for _, m := range st.movements {
			if m.ProductID != productID {
				kept = append(kept, m)
			}
		}
		st.movements = kept
		return nil
	})
}

// Mismatches productos cuya suma de deltas difiere de stock_qty, por nombre.
func (r *MovementRepo) Mismatches(ctx context.Context) ([]repository.LedgerMismatch, error) {
	var out []repository.LedgerMismatch
	err := r.do(ctx, func(st *state) error {
		sums := map[string]int{}
		for _, m := range st.movements {
			sums[m.ProductID] += m.Quantity
		}
		for _, p := range st.products {
			if sums[p.ID] != p.StockQty {
				out = append(out, repository.LedgerMismatch{
					ProductID:   p.ID,
					ProductName: p.Name,
					StockQty:    p.StockQty,
					LedgerSum:   sums[p.ID],
				})
			}
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].ProductName != out[j].ProductName {
				return out[i].ProductName < out[j].ProductName
			}
			return out[i].ProductID < out[j].ProductID
		})
		return nil
	})
	return out, err
}

// newestFirst created_at DESC; a igual fecha, el último insertado primero.
func newestFirst(list []*entity.StockMovement) []*entity.StockMovement {
	out := make([]*entity.StockMovement, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		out = append(out, list[i])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
