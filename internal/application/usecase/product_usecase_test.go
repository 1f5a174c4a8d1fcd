package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/inventory"
	"github.com/jhoicas/stockpro/internal/application/sales"
	"github.com/jhoicas/stockpro/internal/application/usecase"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/infrastructure/memstore"
	"github.com/jhoicas/stockpro/internal/infrastructure/pdf"
	"github.com/jhoicas/stockpro/pkg/validation"
)

var actor = &dto.Actor{UserID: "u1", Name: "Ana", Email: "ana@example.com"}

type fixture struct {
	ctx      context.Context
	store    *memstore.Store
	products *usecase.ProductUseCase
	stock    *inventory.StockUseCase
	sales    *sales.SaleUseCase
}

func newFixture() *fixture {
	s := memstore.New()
	v := validation.New()
	log := zerolog.Nop()
	return &fixture{
		ctx:      context.Background(),
		store:    s,
		products: usecase.NewProductUseCase(s, s.Products(), pdf.NewMarotoReportGenerator(language.Spanish), v, log),
		stock:    inventory.NewStockUseCase(s, s.Products(), s.Movements(), log),
		sales:    sales.NewSaleUseCase(s, s.Sales(), v, sales.Options{}, log),
	}
}

func form(name, price string, qty int) dto.ProductForm {
	return dto.ProductForm{Name: name, BuyPrice: dto.FormValue(price), StockQty: dto.FormValue(fmt.Sprint(qty))}
}

func (f *fixture) create(t *testing.T, name string, qty int) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(f.ctx, actor, form(name, "10", qty))
	require.NoError(t, err)
	return p
}

func (f *fixture) movements(t *testing.T, productID string) []dto.StockMovementResponse {
	t.Helper()
	movs, err := f.stock.ProductMovements(f.ctx, productID)
	require.NoError(t, err)
	return movs
}

func (f *fixture) requireReconciled(t *testing.T) {
	t.Helper()
	rec, err := f.stock.Reconciliation(f.ctx)
	require.NoError(t, err)
	assert.True(t, rec.Balanced, "Σ movimientos debe igualar stock_qty: %+v", rec.Mismatches)
}

// ── Listado ───────────────────────────────────────────────────────────────────

func TestList_PaginaFueraDeRango(t *testing.T) {
	f := newFixture()
	for i := 0; i < 7; i++ {
		f.create(t, fmt.Sprintf("P%d", i), i)
	}
	out := f.products.List(f.ctx, dto.ProductFilter{PageRequest: dto.PageRequest{Page: 9, PerPage: 3}})
	assert.Empty(t, out.Products)
	assert.Equal(t, 7, out.TotalCount)
	assert.Equal(t, 3, out.TotalPages)
	assert.True(t, out.HasPrevPage)
	assert.False(t, out.HasNextPage)
}

func TestList_PaginaEnormeNoDesborda(t *testing.T) {
	f := newFixture()
	f.create(t, "A", 1)
	f.create(t, "B", 2)
	page := 1<<61 + 1
	out := f.products.List(f.ctx, dto.ProductFilter{PageRequest: dto.PageRequest{Page: page, PerPage: 8}})
	assert.Empty(t, out.Products)
	assert.Equal(t, 2, out.TotalCount)
	assert.Equal(t, 1, out.TotalPages)
	assert.Equal(t, page, out.CurrentPage)
	assert.True(t, out.HasPrevPage)
	assert.False(t, out.HasNextPage)
}

func TestList_FiltrosParticionanCatalogo(t *testing.T) {
	f := newFixture()
	for _, q := range []int{0, 0, 1, 5, 10, 11, 40} {
		f.create(t, fmt.Sprintf("P%d", q), q)
	}
	total := 0
	seen := map[string]bool{}
	for _, stock := range []string{"in_stock", "low_stock", "out_of_stock"} {
		out := f.products.List(f.ctx, dto.ProductFilter{Stock: stock, PageRequest: dto.PageRequest{PerPage: 100}})
		total += out.TotalCount
		for _, p := range out.Products {
			assert.False(t, seen[p.ID], "producto en dos cubos")
			seen[p.ID] = true
			assert.Equal(t, stock, p.StockStatus)
		}
	}
	all := f.products.List(f.ctx, dto.ProductFilter{PageRequest: dto.PageRequest{PerPage: 100}})
	assert.Equal(t, all.TotalCount, total)
	assert.Len(t, seen, 7)
}

func TestList_FiltroDesconocidoEsTodos(t *testing.T) {
	f := newFixture()
	f.create(t, "A", 0)
	f.create(t, "B", 50)
	out := f.products.List(f.ctx, dto.ProductFilter{Stock: "cualquiera"})
	assert.Equal(t, 2, out.TotalCount)
	assert.Equal(t, dto.DefaultPerPage, out.PerPage)
}

func TestStats_BusquedaYFiltro(t *testing.T) {
	f := newFixture()
	f.create(t, "Cable USB", 0)
	f.create(t, "Hub USB", 4)
	f.create(t, "Monitor", 30)

	st := f.products.Stats(f.ctx, "usb", "")
	assert.Equal(t, 2, st.TotalProducts)
	assert.Equal(t, 2, st.LowStock, "stock bajo incluye agotados")
	assert.Equal(t, 1, st.OutOfStock)
	assert.Equal(t, 4, st.TotalUnits)
	assert.True(t, decimal.NewFromInt(20).Equal(st.TotalStockValue))
}

// ── Alta / edición ────────────────────────────────────────────────────────────

func TestCreate_Stock15_UnMovimientoAdjust(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 15)
	assert.Equal(t, 15, p.StockQty)

	movs := f.movements(t, p.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, string(entity.MovementAdjust), movs[0].MovementType)
	assert.Equal(t, 15, movs[0].Quantity)
	f.requireReconciled(t)
}

func TestCreate_StockCero_SinMovimiento(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 0)
	assert.Empty(t, f.movements(t, p.ID))
}

func TestCreate_ValidacionPorCampo(t *testing.T) {
	f := newFixture()
	_, err := f.products.Create(f.ctx, actor, dto.ProductForm{Name: "  ", BuyPrice: "-1", StockQty: "x"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "buy_price")
	assert.Contains(t, verr.Fields, "stock_qty")
}

func TestCreate_LimitesDeColumnas(t *testing.T) {
	f := newFixture()
	cases := []struct {
		price, qty, field string
	}{
		{"12.345", "1", "buy_price"},
		{"10000000000", "1", "buy_price"},
		{"10", "2147483648", "stock_qty"},
	}
	for _, c := range cases {
		_, err := f.products.Create(f.ctx, actor, dto.ProductForm{Name: "A", BuyPrice: dto.FormValue(c.price), StockQty: dto.FormValue(c.qty)})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr, c.price+"/"+c.qty)
		assert.Contains(t, verr.Fields, c.field)
	}

	p, err := f.products.Create(f.ctx, actor, form("B", "9999999999.99", 2147483647))
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", p.BuyPrice.StringFixed(2))
	assert.Equal(t, 2147483647, p.StockQty)
}

func TestAdjust_CantidadFueraDeRango(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 10)
	_, err := f.stock.AdjustStock(f.ctx, actor, p.ID, dto.AdjustStockRequest{Quantity: "2147483648"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")
	assert.Len(t, f.movements(t, p.ID), 1)
}

func TestCreate_SinSesion(t *testing.T) {
	f := newFixture()
	_, err := f.products.Create(f.ctx, nil, form("A", "1", 1))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUpdate_DeltaNegativoYSinCambio(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 15)

	_, err := f.products.Update(f.ctx, actor, p.ID, form("Cable", "10", 10))
	require.NoError(t, err)
	movs := f.movements(t, p.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, -5, movs[0].Quantity)
	assert.Equal(t, string(entity.MovementAdjust), movs[0].MovementType)

	_, err = f.products.Update(f.ctx, actor, p.ID, form("Cable renombrado", "12", 10))
	require.NoError(t, err)
	assert.Len(t, f.movements(t, p.ID), 2, "sin cambio de stock no hay movimiento")
	f.requireReconciled(t)
}

func TestUpdate_NoEncontrado(t *testing.T) {
	f := newFixture()
	_, err := f.products.Update(f.ctx, actor, "nope", form("A", "1", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Baja ──────────────────────────────────────────────────────────────────────

func TestDelete_ConVentas_ConflictoSinCambios(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 8)
	_, err := f.sales.Create(f.ctx, actor, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: p.ID, Quantity: 1, UnitSellPrice: decimal.NewFromInt(20)}},
	})
	require.NoError(t, err)

	err = f.products.Delete(f.ctx, actor, p.ID)
	require.ErrorIs(t, err, domain.ErrProductHasSales)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.products.Get(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.StockQty)
	assert.Len(t, f.movements(t, p.ID), 1)
}

func TestDelete_BorraProductoYMovimientos(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 8)
	require.NoError(t, f.products.Delete(f.ctx, actor, p.ID))

	_, err := f.products.Get(f.ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	movs, err := f.store.Movements().ListByProduct(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

// ── Ajustes de stock ──────────────────────────────────────────────────────────

func TestAdjust_Negativo_ErrorSinCambios(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 10)
	_, err := f.stock.AdjustStock(f.ctx, actor, p.ID, dto.AdjustStockRequest{Quantity: "-1"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "quantity")

	got, err := f.products.Get(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.StockQty)
	assert.Len(t, f.movements(t, p.ID), 1)
}

func TestAdjust_TipoInvalido(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 10)
	_, err := f.stock.AdjustStock(f.ctx, actor, p.ID, dto.AdjustStockRequest{Quantity: "3", MovementType: "REGALO"})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "movement_type")
}

func TestAdjust_MismaCantidad_SinMovimiento(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 10)
	out, err := f.stock.AdjustStock(f.ctx, actor, p.ID, dto.AdjustStockRequest{Quantity: "10"})
	require.NoError(t, err)
	assert.Nil(t, out.Movement)
	assert.Len(t, f.movements(t, p.ID), 1)
}

func TestLedger_SecuenciaDeOperaciones(t *testing.T) {
	f := newFixture()
	a := f.create(t, "A", 5)
	b := f.create(t, "B", 0)
	for _, q := range []string{"12", "0", "7"} {
		_, err := f.stock.AdjustStock(f.ctx, actor, a.ID, dto.AdjustStockRequest{Quantity: dto.FormValue(q), MovementType: "BUY"})
		require.NoError(t, err)
	}
	_, err := f.products.Update(f.ctx, actor, b.ID, form("B", "3", 9))
	require.NoError(t, err)
	_, err = f.stock.AdjustStock(f.ctx, actor, b.ID, dto.AdjustStockRequest{Quantity: "-4"})
	require.Error(t, err)
	f.requireReconciled(t)
}

func TestLedger_AjustesConcurrentes(t *testing.T) {
	f := newFixture()
	p := f.create(t, "Cable", 0)

	var wg sync.WaitGroup
	errs := make(chan error, 50)
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(target int) {
			defer wg.Done()
			_, err := f.stock.AdjustStock(f.ctx, actor, p.ID, dto.AdjustStockRequest{Quantity: dto.FormValue(fmt.Sprint(target))})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	f.requireReconciled(t)
}

func TestLowStock_OrdenAscendente(t *testing.T) {
	f := newFixture()
	f.create(t, "A", 9)
	f.create(t, "B", 0)
	f.create(t, "C", 30)
	out := f.products.LowStock(f.ctx, 10)
	require.Len(t, out, 2)
	assert.Equal(t, 0, out[0].StockQty)
	assert.Equal(t, 9, out[1].StockQty)
}

func TestExport_PDFConNombreSlug(t *testing.T) {
	f := newFixture()
	f.create(t, "Cable", 3)
	out, err := f.products.Export(f.ctx, actor, "", "low_stock")
	require.NoError(t, err)
	assert.Contains(t, out.FileName, "productos-low_stock-")
	assert.True(t, len(out.Content) > 4 && string(out.Content[:4]) == "%PDF")
}

func TestGet_ErrorEsNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.products.Get(f.ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
