// Package analytics contiene los casos de uso del tablero principal.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/sales"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

const (
	dashboardRecentSales = 5 // ventas recientes en el tablero
	dashboardTopProducts = 5
)

// DashboardUseCase arma los indicadores del tablero.
//
// Fuentes: ProductRepository (overview y stock bajo) y SaleRepository (totales, recientes, top).
type DashboardUseCase struct {
	products repository.ProductRepository
	sales    repository.SaleRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso. El stock bajo usa el mismo umbral que los filtros de productos.
func NewDashboardUseCase(products repository.ProductRepository, sales repository.SaleRepository) *DashboardUseCase {
	return &DashboardUseCase{products: products, sales: sales, now: time.Now}
}

// GetStats lanza las cuatro consultas en paralelo; el primer error cancela las demás.
//  1. Overview           → valor del stock, número de productos
//  2. LowStock(umbral)   → productos con stock bajo
//  3. Totals + List(5)   → ingreso, beneficio y ventas recientes
//  4. TopProducts(5)     → más vendidos por cantidad
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var (
		overview repository.StockOverview
		low      []*entity.Product
		totals   repository.SaleTotals
		recent   []*entity.Sale
		top      []repository.TopProduct
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		overview, err = uc.products.Overview(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: overview: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		low, err = uc.products.LowStock(gctx, inventory.LowStockThreshold)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		totals, err = uc.sales.Totals(gctx, "")
		if err != nil {
			return fmt.Errorf("dashboard: totales: %w", err)
		}
		recent, err = uc.sales.List(gctx, dashboardRecentSales, 0)
		if err != nil {
			return fmt.Errorf("dashboard: ventas recientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		top, err = uc.sales.TopProducts(gctx, dashboardTopProducts)
		if err != nil {
			return fmt.Errorf("dashboard: top productos: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardStatsResponse{
		TotalStockValue: overview.StockValue.Round(2),
		TotalRevenue:    totals.Revenue.Round(2),
		TotalProfit:     totals.Profit.Round(2),
		TotalProducts:   overview.TotalProducts,
		LowStock:        len(low),
		RecentSales:     sales.ToSaleResponses(recent),
		TopProducts:     make([]dto.TopProductDTO, 0, len(top)),
		GeneratedAt:     uc.now(),
	}
	for _, t := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			Quantity:    t.Quantity,
			Revenue:     t.Revenue.Round(2),
		})
	}
	return out, nil
}
