package memstore

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct{ base }

// Create persiste la venta con sus líneas.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	return r.do(ctx, func(st *state) error {
		st.sales = append(st.sales, copySale(sale))
		return nil
	})
}

// GetByID venta con líneas o (nil, nil).
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.do(ctx, func(st *state) error {
		for _, s := range st.sales {
			if s.ID == id {
				out = copySale(s)
				if u := st.users[s.UserID]; u != nil {
					out.UserName = u.Name
				}
				break
			}
		}
		return nil
	})
	return out, err
}

// List sale_date DESC, sin líneas.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.do(ctx, func(st *state) error {
		all := make([]*entity.Sale, 0, len(st.sales))
		for i := len(st.sales) - 1; i >= 0; i-- {
			all = append(all, st.sales[i])
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].SaleDate.After(all[j].SaleDate) })
		if offset >= len(all) {
			return nil
		}
		all = all[offset:]
		if limit > 0 && len(all) > limit {
			all = all[:limit]
		}
		for _, s := range all {
			c := copySale(s)
			c.Items = nil
			if u := st.users[s.UserID]; u != nil {
				c.UserName = u.Name
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}

// Totals agregados; userID vacío = todas.
func (r *SaleRepo) Totals(ctx context.Context, userID string) (repository.SaleTotals, error) {
	out := repository.SaleTotals{Revenue: decimal.Zero, Cost: decimal.Zero, Profit: decimal.Zero}
	err := r.do(ctx, func(st *state) error {
		for _, s := range st.sales {
			if userID != "" && s.UserID != userID {
				continue
			}
			out.Count++
			out.Revenue = out.Revenue.Add(s.TotalSell)
			out.Cost = out.Cost.Add(s.TotalBuy)
			out.Profit = out.Profit.Add(s.Profit)
		}
		return nil
	})
	return out, err
}

// TopProducts por cantidad vendida, descendente.
func (r *SaleRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	var out []repository.TopProduct
	err := r.do(ctx, func(st *state) error {
		idx := map[string]int{}
		for _, s := range st.sales {
			for _, it := range s.Items {
				i, ok := idx[it.ProductID]
				if !ok {
					name := it.ProductName
					if p := st.products[it.ProductID]; p != nil {
						name = p.Name
					}
					out = append(out, repository.TopProduct{ProductID: it.ProductID, ProductName: name, Revenue: decimal.Zero})
					i = len(out) - 1
					idx[it.ProductID] = i
				}
				out[i].Quantity += it.Quantity
				out[i].Revenue = out[i].Revenue.Add(it.TotalSell)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Quantity != out[j].Quantity {
				return out[i].Quantity > out[j].Quantity
			}
			return out[i].ProductName < out[j].ProductName
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}
