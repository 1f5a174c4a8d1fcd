package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/stockpro/internal/application/analytics"
	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/internal/infrastructure/memstore"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addProduct(t *testing.T, s *memstore.Store, id, name, buy string, qty int) {
	t.Helper()
	now := time.Now()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: id, Name: name, BuyPrice: dec(buy), StockQty: qty, CreatedAt: now, UpdatedAt: now,
	}))
}

func addSale(t *testing.T, s *memstore.Store, id string, at time.Time, items ...entity.SaleItem) {
	t.Helper()
	sale := &entity.Sale{ID: id, UserID: "u1", SaleDate: at, Status: entity.SaleStatusCompleted, CreatedAt: at,
		TotalBuy: decimal.Zero, TotalSell: decimal.Zero}
	for _, it := range items {
		it.SaleID = id
		sale.Items = append(sale.Items, it)
		sale.TotalBuy = sale.TotalBuy.Add(it.TotalBuy)
		sale.TotalSell = sale.TotalSell.Add(it.TotalSell)
	}
	sale.Profit = sale.TotalSell.Sub(sale.TotalBuy)
	require.NoError(t, s.Sales().Create(context.Background(), sale))
}

func item(id, productID string, qty int, buy, sell string) entity.SaleItem {
	q := decimal.NewFromInt(int64(qty))
	return entity.SaleItem{
		ID: id, ProductID: productID, Quantity: qty,
		UnitBuyPrice: dec(buy), UnitSellPrice: dec(sell),
		TotalBuy: dec(buy).Mul(q), TotalSell: dec(sell).Mul(q),
	}
}

func TestGetStats_IndicadoresYTopProductos(t *testing.T) {
	s := memstore.New()
	addProduct(t, s, "p1", "Teclado", "20", 3)
	addProduct(t, s, "p2", "Mouse", "5", 40)
	addProduct(t, s, "p3", "Cable", "2", 0)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	addSale(t, s, "s1", base, item("i1", "p1", 1, "20", "30"), item("i2", "p2", 2, "5", "8"))
	addSale(t, s, "s2", base.Add(time.Hour), item("i3", "p2", 5, "5", "9"))
	addSale(t, s, "s3", base.Add(2*time.Hour), item("i4", "p3", 1, "2", "4"))

	uc := analytics.NewDashboardUseCase(s.Products(), s.Sales())
	got, err := uc.GetStats(context.Background())
	require.NoError(t, err)

	assert.True(t, got.TotalStockValue.Equal(dec("260")), got.TotalStockValue.String())
	assert.True(t, got.TotalRevenue.Equal(dec("95")), got.TotalRevenue.String())
	assert.True(t, got.TotalProfit.Equal(dec("38")), got.TotalProfit.String())
	assert.Equal(t, 3, got.TotalProducts)
	assert.Equal(t, 2, got.LowStock)
	assert.False(t, got.GeneratedAt.IsZero())

	require.Len(t, got.RecentSales, 3)
	assert.Equal(t, "s3", got.RecentSales[0].ID)

	want := []dto.TopProductDTO{
		{ProductID: "p2", ProductName: "Mouse", Quantity: 7, Revenue: dec("61")},
		{ProductID: "p3", ProductName: "Cable", Quantity: 1, Revenue: dec("4")},
		{ProductID: "p1", ProductName: "Teclado", Quantity: 1, Revenue: dec("30")},
	}
	if diff := cmp.Diff(want, got.TopProducts, decimalEqual); diff != "" {
		t.Errorf("top productos (-want +got):\n%s", diff)
	}
}

func TestGetStats_InventarioVacio(t *testing.T) {
	s := memstore.New()
	got, err := analytics.NewDashboardUseCase(s.Products(), s.Sales()).GetStats(context.Background())
	require.NoError(t, err)
	assert.True(t, got.TotalRevenue.IsZero())
	assert.Zero(t, got.TotalProducts)
	assert.NotNil(t, got.TopProducts)
	assert.Empty(t, got.RecentSales)
}

type failingSales struct{ repository.SaleRepository }

func (failingSales) Totals(context.Context, string) (repository.SaleTotals, error) {
	return repository.SaleTotals{}, errors.New("sin conexión")
}

func (failingSales) List(context.Context, int, int) ([]*entity.Sale, error) { return nil, nil }

func (failingSales) TopProducts(ctx context.Context, _ int) ([]repository.TopProduct, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestGetStats_ErrorCancelaConsultas(t *testing.T) {
	s := memstore.New()
	uc := analytics.NewDashboardUseCase(s.Products(), failingSales{})
	_, err := uc.GetStats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "totales")
}

func TestGetStats_StockBajoCoincideConProductos(t *testing.T) {
	s := memstore.New()
	for i, qty := range []int{0, 10, 11, 40} {
		addProduct(t, s, string(rune('a'+i)), "P", "1", qty)
	}
	got, err := analytics.NewDashboardUseCase(s.Products(), s.Sales()).GetStats(context.Background())
	require.NoError(t, err)

	stats, err := s.Products().Stats(context.Background(), repository.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, stats.LowStock, got.LowStock)
	assert.Equal(t, 2, got.LowStock)
}
