package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/inventory"
	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/application/sales"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/internal/infrastructure/memstore"
	"github.com/jhoicas/stockpro/pkg/validation"
)

var actor = &dto.Actor{UserID: "u1", Name: "Ana", Email: "ana@example.com"}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seed crea un producto con su movimiento inicial.
func seed(t *testing.T, s *memstore.Store, id, name, buy string, qty int) {
	t.Helper()
	now := time.Now()
	err := s.Run(context.Background(), func(tx ports.TxRepos) error {
		if err := tx.Products.Create(context.Background(), &entity.Product{
			ID: id, Name: name, BuyPrice: dec(buy), CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			return err
		}
		_, _, err := inventory.SetStock(context.Background(), tx, inventory.StockChange{
			ProductID: id, Target: qty, Type: entity.MovementAdjust, Reason: "inicial", UserID: actor.UserID, Now: now,
		})
		return err
	})
	require.NoError(t, err)
}

func newSales(s *memstore.Store, decrement bool) *sales.SaleUseCase {
	return sales.NewSaleUseCase(s, s.Sales(), validation.New(), sales.Options{DecrementStock: decrement}, zerolog.Nop())
}

func TestCreate_TotalesYBeneficio(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 10)
	seed(t, s, "p2", "Mouse", "5.50", 10)
	uc := newSales(s, false)

	out, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		ClientName: "  Carlos ",
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 2, UnitSellPrice: dec("35")},
			{ProductID: "p2", Quantity: 3, UnitSellPrice: dec("9.99")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Carlos", out.ClientName)
	assert.Equal(t, entity.SaleStatusCompleted, out.Status)
	assert.True(t, out.TotalBuy.Equal(dec("56.5")), out.TotalBuy.String())
	assert.True(t, out.TotalSell.Equal(dec("99.97")), out.TotalSell.String())
	assert.True(t, out.Profit.Equal(dec("43.47")), out.Profit.String())
	require.Len(t, out.Items, 2)
	assert.True(t, out.Items[0].UnitBuyPrice.Equal(dec("20")))

	// sin descuento de stock
	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQty)

	n, err := s.Activity().Count(context.Background(), repository.ActivityQuery{Type: string(entity.ActivitySale)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCreate_PrecioDeCompraCongelado(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 10)
	uc := newSales(s, false)

	out, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitSellPrice: dec("30")}},
	})
	require.NoError(t, err)

	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	p.BuyPrice = dec("25")
	require.NoError(t, s.Products().Update(context.Background(), p))

	got, err := uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitBuyPrice.Equal(dec("20")))
	assert.True(t, got.Profit.Equal(dec("10")))
}

func TestCreate_ProductoInexistenteEsErrorDeCampo(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 10)
	uc := newSales(s, false)

	_, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: "p1", Quantity: 1, UnitSellPrice: dec("30")},
			{ProductID: "nope", Quantity: 1, UnitSellPrice: dec("30")},
		},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[1].product_id")

	totals, err := s.Sales().Totals(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, totals.Count)
}

func TestCreate_Validaciones(t *testing.T) {
	uc := newSales(memstore.New(), false)

	_, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items")

	_, err = uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitSellPrice: dec("-1")}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].unit_sell_price")

	_, err = uc.Create(context.Background(), nil, dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreate_LimitesDeImportes(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 10)
	uc := newSales(s, true)

	_, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitSellPrice: dec("1.234")}},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].unit_sell_price")

	_, err = uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2, UnitSellPrice: dec("9999999999.99")}},
	})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items")

	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.StockQty, "la venta rechazada no descuenta stock")
}

func TestCreate_DescuentaStockConMovimientoSell(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 10)
	uc := newSales(s, true)

	_, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 4, UnitSellPrice: dec("30")}},
	})
	require.NoError(t, err)

	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 6, p.StockQty)

	movs, err := s.Movements().ListByProduct(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementSell, movs[0].Type)
	assert.Equal(t, -4, movs[0].Quantity)

	mism, err := s.Movements().Mismatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, mism)
}

func TestCreate_StockInsuficienteEsConflicto(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 2)
	uc := newSales(s, true)

	_, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 3, UnitSellPrice: dec("30")}},
	})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, err := s.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, p.StockQty)
}

func TestStats_Margen(t *testing.T) {
	s := memstore.New()
	seed(t, s, "p1", "Teclado", "20", 10)
	uc := newSales(s, false)

	empty, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, empty.AverageMargin.IsZero())

	for _, price := range []string{"30", "50"} {
		_, err := uc.Create(context.Background(), actor, dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: "p1", Quantity: 1, UnitSellPrice: dec(price)}},
		})
		require.NoError(t, err)
	}
	st, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalSales)
	assert.True(t, st.TotalRevenue.Equal(dec("80")))
	assert.True(t, st.TotalCost.Equal(dec("40")))
	assert.True(t, st.TotalProfit.Equal(dec("40")))
	assert.True(t, st.AverageMargin.Equal(dec("50")), st.AverageMargin.String())

	page := uc.List(context.Background(), dto.PageRequest{Page: 1, PerPage: 1})
	assert.Len(t, page.Sales, 1)
	assert.Equal(t, 2, page.TotalPages)
}

func TestMarginPct(t *testing.T) {
	assert.True(t, sales.MarginPct(dec("1"), dec("3")).Equal(dec("33.33")))
	assert.True(t, sales.MarginPct(dec("5"), decimal.Zero).IsZero())
	assert.True(t, sales.MarginPct(dec("-2"), dec("8")).Equal(dec("-25")))
}
