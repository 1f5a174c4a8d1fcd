package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, description, buy_price, stock_qty, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.BuyPrice, product.StockQty,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) findOne(ctx context.Context, query, id string) (*entity.Product, error) {
	if !isUUID(id) {
		return nil, nil
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos editables y stock_qty.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, buy_price = $4, stock_qty = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.BuyPrice, product.StockQty, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrProductHasSales
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// List lista productos según búsqueda, filtro, orden y página.
func (r *ProductRepo) List(ctx context.Context, q repository.ProductQuery) ([]*entity.Product, error) {
	w := productWhere(q.Search, q.Filter)
	query := `SELECT ` + productColumns + ` FROM products` + w.sql()
	if q.Sort == repository.SortName {
		query += ` ORDER BY name ASC, id ASC`
	} else {
		query += ` ORDER BY updated_at DESC, name ASC, id ASC`
	}
	if q.Limit > 0 {
		query += ` LIMIT ` + w.arg(q.Limit) + ` OFFSET ` + w.arg(q.Offset)
	}
	return r.queryProducts(ctx, query, w.args...)
}

// Count total de productos que cumplen búsqueda y filtro.
func (r *ProductRepo) Count(ctx context.Context, q repository.ProductQuery) (int, error) {
	w := productWhere(q.Search, q.Filter)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// Stats agregados del catálogo. Total, valor y unidades respetan búsqueda y filtro;
// stock bajo y agotados respetan solo la búsqueda.
func (r *ProductRepo) Stats(ctx context.Context, q repository.ProductQuery) (repository.ProductStats, error) {
	var st repository.ProductStats

	w := productWhere(q.Search, q.Filter)
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(buy_price), 0), COALESCE(SUM(stock_qty), 0)
		FROM products`+w.sql(), w.args...).Scan(&st.TotalProducts, &st.TotalStockValue, &st.TotalUnits)
	if err != nil {
		return st, fmt.Errorf("product stats: %w", err)
	}

	base := productWhere(q.Search, inventory.FilterAll)
	low := base.arg(inventory.LowStockThreshold)
	err = r.q.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE stock_qty <= `+low+`), COUNT(*) FILTER (WHERE stock_qty = 0)
		FROM products`+base.sql(), base.args...).Scan(&st.LowStock, &st.OutOfStock)
	if err != nil {
		return st, fmt.Errorf("product stock stats: %w", err)
	}
	return st, nil
}

// Overview agregados de todo el inventario.
func (r *ProductRepo) Overview(ctx context.Context) (repository.StockOverview, error) {
	var ov repository.StockOverview
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(stock_qty), 0),
		       COALESCE(SUM(buy_price * stock_qty), 0),
		       COUNT(*) FILTER (WHERE stock_qty > $1),
		       COUNT(*) FILTER (WHERE stock_qty > 0 AND stock_qty <= $1),
		       COUNT(*) FILTER (WHERE stock_qty = 0)
		FROM products`, inventory.LowStockThreshold).Scan(
		&ov.TotalProducts, &ov.TotalUnits, &ov.StockValue, &ov.InStock, &ov.LowStock, &ov.OutOfStock,
	)
	if err != nil {
		return ov, fmt.Errorf("stock overview: %w", err)
	}
	return ov, nil
}

// LowStock productos con stock_qty <= threshold, de menor a mayor stock.
func (r *ProductRepo) LowStock(ctx context.Context, threshold int) ([]*entity.Product, error) {
	return r.queryProducts(ctx,
		`SELECT `+productColumns+` FROM products WHERE stock_qty <= $1 ORDER BY stock_qty ASC, name ASC, id ASC`,
		threshold)
}

// HasSaleItems indica si alguna línea de venta referencia el producto.
func (r *ProductRepo) HasSaleItems(ctx context.Context, id string) (bool, error) {
	if !isUUID(id) {
		return false, nil
	}
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sale_items WHERE product_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sale items: %w", err)
	}
	return exists, nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// productWhere búsqueda ILIKE sobre name o description y rango de stock del filtro.
func productWhere(search string, f inventory.StockFilter) *where {
	w := &where{}
	if search != "" {
		w.add(`(name ILIKE ? OR description ILIKE ?)`, likePattern(search), likePattern(search))
	}
	if min, max, ok := f.Bounds(); ok {
		if max < 0 {
			w.add(`stock_qty >= ?`, min)
		} else {
			w.add(`stock_qty BETWEEN ? AND ?`, min, max)
		}
	}
	return w
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.BuyPrice, &p.StockQty, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
