package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y sus líneas sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier); Create debe correr en una tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera y luego cada línea.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, client_name, client_phone, user_id, sale_date, total_buy, total_sell, profit, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, nullable(s.ClientName), nullable(s.ClientPhone), nullable(s.UserID), s.SaleDate,
		s.TotalBuy, s.TotalSell, s.Profit, s.Status, nullable(s.Notes), s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, it := range s.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_buy_price, unit_sell_price, total_buy, total_sell)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, s.ID, it.ProductID, it.Quantity, it.UnitBuyPrice, it.UnitSellPrice, it.TotalBuy, it.TotalSell,
		)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

const saleSelect = `
	SELECT s.id, s.client_name, s.client_phone, s.user_id, s.sale_date, s.total_buy, s.total_sell,
	       s.profit, s.status, s.notes, s.created_at, COALESCE(u.name, '')
	FROM sales s
	LEFT JOIN users u ON u.id = s.user_id`

// GetByID venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	if !isUUID(id) {
		return nil, nil
	}
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.product_id, COALESCE(p.name, ''), i.quantity, i.unit_buy_price, i.unit_sell_price, i.total_buy, i.total_sell
		FROM sale_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY p.name, i.id`, id)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		it := entity.SaleItem{SaleID: s.ID}
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitBuyPrice, &it.UnitSellPrice, &it.TotalBuy, &it.TotalSell); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

// List ventas más recientes primero.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+` ORDER BY s.sale_date DESC, s.id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Totals agregados; userID vacío = todas las ventas.
func (r *SaleRepo) Totals(ctx context.Context, userID string) (repository.SaleTotals, error) {
	var t repository.SaleTotals
	w := &where{}
	if userID != "" {
		w.add(`user_id = ?`, userID)
	}
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_sell), 0), COALESCE(SUM(total_buy), 0), COALESCE(SUM(profit), 0)
		FROM sales`+w.sql(), w.args...).Scan(&t.Count, &t.Revenue, &t.Cost, &t.Profit)
	if err != nil {
		return t, fmt.Errorf("sale totals: %w", err)
	}
	return t, nil
}

// TopProducts productos más vendidos por cantidad.
func (r *SaleRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.product_id, COALESCE(p.name, ''), SUM(i.quantity), SUM(i.total_sell)
		FROM sale_items i
		LEFT JOIN products p ON p.id = i.product_id
		GROUP BY i.product_id, p.name
		ORDER BY SUM(i.quantity) DESC, p.name ASC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	out := make([]repository.TopProduct, 0, limit)
	for rows.Next() {
		var t repository.TopProduct
		if err := rows.Scan(&t.ProductID, &t.ProductName, &t.Quantity, &t.Revenue); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s                          entity.Sale
		client, phone, user, notes *string
	)
	if err := row.Scan(&s.ID, &client, &phone, &user, &s.SaleDate, &s.TotalBuy, &s.TotalSell,
		&s.Profit, &s.Status, &notes, &s.CreatedAt, &s.UserName); err != nil {
		return nil, err
	}
	s.ClientName = deref(client)
	s.ClientPhone = deref(phone)
	s.UserID = deref(user)
	s.Notes = deref(notes)
	return &s, nil
}
