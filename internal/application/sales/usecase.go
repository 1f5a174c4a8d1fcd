// Package sales registra ventas y calcula sus totales.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/application/dto"
	appinv "github.com/jhoicas/stockpro/internal/application/inventory"
	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/pkg/validation"
)

// Options comportamiento configurable.
type Options struct {
	// DecrementStock descuenta stock con un movimiento SELL por línea.
	DecrementStock bool
}

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	txRunner  ports.TxRunner
	repo      repository.SaleRepository
	validator *validation.Validator
	opts      Options
	log       zerolog.Logger
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner ports.TxRunner,
	repo repository.SaleRepository,
	validator *validation.Validator,
	opts Options,
	log zerolog.Logger,
) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, repo: repo, validator: validator, opts: opts, log: log}
}

// Create valida la venta, congela el precio de compra de cada producto, calcula totales y
// beneficio, y persiste cabecera + líneas en una transacción.
func (uc *SaleUseCase) Create(ctx context.Context, actor *dto.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	fields := uc.validator.Struct(in)
	if fields == nil {
		fields = validation.FieldErrors{}
	}
	for i, it := range in.Items {
		if msg := inventory.PriceProblem(it.UnitSellPrice); msg != "" {
			fields.Add(fmt.Sprintf("items[%d].unit_sell_price", i), "el precio de venta "+msg)
		}
		if it.Quantity > inventory.MaxQty {
			fields.Add(fmt.Sprintf("items[%d].quantity", i), fmt.Sprintf("la cantidad no debe superar %d", inventory.MaxQty))
		}
	}
	if !fields.Empty() {
		return nil, &domain.ValidationError{Fields: fields}
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		ClientName:  strings.TrimSpace(in.ClientName),
		ClientPhone: strings.TrimSpace(in.ClientPhone),
		UserID:      actor.UserID,
		UserName:    actor.Name,
		SaleDate:    now,
		Status:      in.Status,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
	}
	if in.SaleDate != nil && !in.SaleDate.IsZero() {
		sale.SaleDate = *in.SaleDate
	}
	if sale.Status == "" {
		sale.Status = entity.SaleStatusCompleted
	}

	err := uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		items := make([]entity.SaleItem, 0, len(in.Items))
		for i, it := range in.Items {
			var (
				product *entity.Product
				err     error
			)
			if uc.opts.DecrementStock {
				product, err = appinv.Decrement(ctx, tx, it.ProductID, it.Quantity, "venta "+sale.ID, actor.UserID, now)
			} else {
				product, err = tx.Products.GetByID(ctx, it.ProductID)
			}
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "producto no encontrado")
				}
				return err
			}
			if product == nil {
				return domain.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "producto no encontrado")
			}
			items = append(items, NewItem(sale.ID, product, it.Quantity, it.UnitSellPrice))
		}
		ApplyTotals(sale, items)
		if sale.TotalSell.GreaterThan(inventory.MaxPrice) || sale.TotalBuy.GreaterThan(inventory.MaxPrice) {
			return domain.NewValidationError("items", "el total de la venta no debe superar "+inventory.MaxPrice.StringFixed(inventory.PriceScale))
		}

		if err := tx.Sales.Create(ctx, sale); err != nil {
			return err
		}
		client := sale.ClientName
		if client == "" {
			client = "cliente sin nombre"
		}
		return tx.Activity.Append(ctx, &entity.ActivityLogEntry{
			ID:        uuid.New().String(),
			Type:      entity.ActivitySale,
			Message:   entity.MsgSaleRecorded + " - " + client,
			Details:   fmt.Sprintf("Monto: %s, Beneficio: %s", sale.TotalSell.StringFixed(2), sale.Profit.StringFixed(2)),
			UserID:    actor.UserID,
			UserName:  actor.Name,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	r := ToSaleResponse(sale)
	return &r, nil
}

// NewItem construye una línea con el precio de compra actual del producto.
func NewItem(saleID string, product *entity.Product, qty int, unitSell decimal.Decimal) entity.SaleItem {
	q := decimal.NewFromInt(int64(qty))
	return entity.SaleItem{
		ID:            uuid.New().String(),
		SaleID:        saleID,
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      qty,
		UnitBuyPrice:  product.BuyPrice,
		UnitSellPrice: unitSell,
		TotalBuy:      product.BuyPrice.Mul(q),
		TotalSell:     unitSell.Mul(q),
	}
}

// ApplyTotals fija las líneas y los totales de la venta. Profit = TotalSell - TotalBuy.
func ApplyTotals(sale *entity.Sale, items []entity.SaleItem) {
	sale.Items = items
	sale.TotalBuy = decimal.Zero
	sale.TotalSell = decimal.Zero
	for _, it := range items {
		sale.TotalBuy = sale.TotalBuy.Add(it.TotalBuy)
		sale.TotalSell = sale.TotalSell.Add(it.TotalSell)
	}
	sale.Profit = sale.TotalSell.Sub(sale.TotalBuy)
}

// Get venta con sus líneas.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*dto.SaleResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	r := ToSaleResponse(s)
	return &r, nil
}

// List ventas más recientes primero. Un fallo de consulta devuelve una página vacía.
func (uc *SaleUseCase) List(ctx context.Context, p dto.PageRequest) *dto.SaleListResponse {
	p.Normalize()
	empty := &dto.SaleListResponse{Sales: []dto.SaleResponse{}, PageMeta: dto.PageMeta{CurrentPage: 1, PerPage: p.PerPage}}
	totals, err := uc.repo.Totals(ctx, "")
	if err != nil {
		uc.log.Error().Err(err).Msg("contar ventas")
		return empty
	}
	list, err := uc.repo.List(ctx, p.PerPage, p.Offset())
	if err != nil {
		uc.log.Error().Err(err).Msg("listar ventas")
		return empty
	}
	return &dto.SaleListResponse{Sales: ToSaleResponses(list), PageMeta: dto.NewPageMeta(totals.Count, p)}
}

// Stats número de ventas, ingreso, costo, beneficio y margen medio (% sobre ingreso).
func (uc *SaleUseCase) Stats(ctx context.Context) (*dto.SaleStatsResponse, error) {
	t, err := uc.repo.Totals(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("estadísticas de ventas: %w", err)
	}
	return &dto.SaleStatsResponse{
		TotalSales:    t.Count,
		TotalRevenue:  t.Revenue,
		TotalCost:     t.Cost,
		TotalProfit:   t.Profit,
		AverageMargin: MarginPct(t.Profit, t.Revenue),
	}, nil
}

// MarginPct beneficio / ingreso * 100, redondeado a 2 decimales. Ingreso cero -> 0.
func MarginPct(profit, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return profit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
}

// ToSaleResponses mapea sin líneas.
func ToSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, ToSaleResponse(s))
	}
	return out
}

// ToSaleResponse mapea la venta y sus líneas.
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	r := dto.SaleResponse{
		ID:          s.ID,
		ClientName:  s.ClientName,
		ClientPhone: s.ClientPhone,
		UserID:      s.UserID,
		UserName:    s.UserName,
		SaleDate:    s.SaleDate,
		TotalBuy:    s.TotalBuy,
		TotalSell:   s.TotalSell,
		Profit:      s.Profit,
		Status:      s.Status,
		Notes:       s.Notes,
	}
	for _, it := range s.Items {
		r.Items = append(r.Items, dto.SaleItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			ProductName:   it.ProductName,
			Quantity:      it.Quantity,
			UnitBuyPrice:  it.UnitBuyPrice,
			UnitSellPrice: it.UnitSellPrice,
			TotalBuy:      it.TotalBuy,
			TotalSell:     it.TotalSell,
		})
	}
	return r
}
