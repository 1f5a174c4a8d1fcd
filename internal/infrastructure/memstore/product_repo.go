package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct{ base }

// Create persiste el producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return r.do(ctx, func(st *state) error {
		if product.StockQty < 0 {
			return fmt.Errorf("insert product: stock_qty negativo")
		}
		if _, ok := st.products[product.ID]; ok {
			return domain.ErrConflict
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(ctx, func(st *state) error {
		out = copyProduct(st.products[id])
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el mutex ya serializa las escrituras.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// Update reemplaza los campos editables.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return r.do(ctx, func(st *state) error {
		if _, ok := st.products[product.ID]; !ok {
			return domain.ErrNotFound
		}
		if product.StockQty < 0 {
			return fmt.Errorf("update product: stock_qty negativo")
		}
		st.products[product.ID] = copyProduct(product)
		return nil
	})
}

// Delete elimina el producto.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.do(ctx, func(st *state) error {
		delete(st.products, id)
		return nil
	})
}

// List aplica búsqueda, filtro, orden y paginación.
func (r *ProductRepo) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(ctx, func(st *state) error {
		list := filterProducts(st, q.Search, q.Filter)
		sortProducts(list, q.Sort)
		if q.Offset > 0 {
			if q.Offset >= len(list) {
				list = nil
			} else {
				list = list[q.Offset:]
			}
		}
		if q.Limit > 0 && len(list) > q.Limit {
			list = list[:q.Limit]
		}
		out = make([]*entity.Product, 0, len(list))
		for _, p := range list {
			out = append(out, copyProduct(p))
		}
		return nil
	})
	return out, err
}

// Count total que cumple búsqueda y filtro.
func (r *ProductRepo) Count(ctx context.Context, q repository.ProductQuery) (int, error) {
	n := 0
	err := r.do(ctx, func(st *state) error {
		n = len(filterProducts(st, q.Search, q.Filter))
		return nil
	})
	return n, err
}

// Stats agregados: total, valor y unidades con búsqueda y filtro; stock bajo y agotados solo con búsqueda.
func (r *ProductRepo) Stats(ctx context.Context, q repository.ProductQuery) (repository.ProductStats, error) {
	out := repository.ProductStats{TotalStockValue: decimal.Zero}
	err := r.do(ctx, func(st *state) error {
		for _, p := range filterProducts(st, q.Search, q.Filter) {
			out.TotalProducts++
			out.TotalStockValue = out.TotalStockValue.Add(p.BuyPrice)
			out.TotalUnits += p.StockQty
		}
		for _, p := range filterProducts(st, q.Search, inventory.FilterAll) {
			if p.StockQty <= inventory.LowStockThreshold {
				out.LowStock++
			}
			if p.StockQty == 0 {
				out.OutOfStock++
			}
		}
		return nil
	})
	return out, err
}

// Overview agregados de todo el inventario.
func (r *ProductRepo) Overview(ctx context.Context) (repository.StockOverview, error) {
	out := repository.StockOverview{StockValue: decimal.Zero}
	err := r.do(ctx, func(st *state) error {
		for _, p := range st.products {
			out.TotalProducts++
			out.TotalUnits += p.StockQty
			out.StockValue = out.StockValue.Add(p.StockValue())
			switch inventory.Classify(p.StockQty) {
			case inventory.FilterInStock:
				out.InStock++
			case inventory.FilterLowStock:
				out.LowStock++
			default:
				out.OutOfStock++
			}
		}
		return nil
	})
	return out, err
}

// LowStock stock_qty <= threshold, de menor a mayor.
func (r *ProductRepo) LowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.StockQty <= threshold {
				out = append(out, copyProduct(p))
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].StockQty != out[j].StockQty {
				return out[i].StockQty < out[j].StockQty
			}
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].ID < out[j].ID
		})
		return nil
	})
	return out, err
}

// HasSaleItems indica si alguna venta tiene una línea del producto.
func (r *ProductRepo) HasSaleItems(ctx context.Context, id string) (bool, error) {
	found := false
	err := r.do(ctx, func(st *state) error {
		for _, s := range st.sales {
			for _, it := range s.Items {
				if it.ProductID == id {
					found = true
					return nil
				}
			}
		}
		return nil
	})
	return found, err
}

func filterProducts(st *state, search string, f inventory.StockFilter) []*entity.Product {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]*entity.Product, 0, len(st.products))
	for _, p := range st.products {
		if !f.Matches(p.StockQty) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.DescriptionOrEmpty()), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func sortProducts(list []*entity.Product, by repository.ProductSort) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if by == repository.SortRecent && !a.UpdatedAt.Equal(b.UpdatedAt) {
			return a.UpdatedAt.After(b.UpdatedAt)
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
}
