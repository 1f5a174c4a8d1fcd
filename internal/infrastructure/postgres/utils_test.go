package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

func TestLikePattern_EscapaComodines(t *testing.T) {
	assert.Equal(t, `%cable%`, likePattern("cable"))
	assert.Equal(t, `%50\% off%`, likePattern("50% off"))
	assert.Equal(t, `%usb\_c%`, likePattern("usb_c"))
	assert.Equal(t, `%C:\\tmp%`, likePattern(`C:\tmp`))
}

func TestWhere_PlaceholdersEnOrden(t *testing.T) {
	w := &where{}
	assert.Empty(t, w.sql())
	w.add(`a = ?`, 1)
	w.add(`b BETWEEN ? AND ?`, 2, 3)
	assert.Equal(t, " WHERE a = $1 AND b BETWEEN $2 AND $3", w.sql())
	assert.Equal(t, "$4", w.arg(10))
	assert.Equal(t, []any{1, 2, 3, 10}, w.args)
}

func TestProductWhere_BusquedaYFiltro(t *testing.T) {
	w := productWhere("50%", inventory.FilterLowStock)
	assert.Equal(t, " WHERE (name ILIKE $1 OR description ILIKE $2) AND stock_qty BETWEEN $3 AND $4", w.sql())
	assert.Equal(t, []any{`%50\%%`, `%50\%%`, 1, inventory.LowStockThreshold}, w.args)

	// LIMIT/OFFSET continúan la numeración
	assert.Equal(t, "$5", w.arg(10))
}

func TestProductWhere_Filtros(t *testing.T) {
	in := productWhere("", inventory.FilterInStock)
	assert.Equal(t, " WHERE stock_qty >= $1", in.sql())
	assert.Equal(t, []any{inventory.LowStockThreshold + 1}, in.args)

	out := productWhere("", inventory.FilterOutOfStock)
	assert.Equal(t, " WHERE stock_qty BETWEEN $1 AND $2", out.sql())
	assert.Equal(t, []any{0, 0}, out.args)

	assert.Empty(t, productWhere("", inventory.FilterAll).sql())
}

func TestMovementWhere_Tipo(t *testing.T) {
	w := movementWhere(repository.MovementQuery{Type: "BUY"})
	assert.Equal(t, " WHERE m.movement_type = $1", w.sql())
	assert.Empty(t, movementWhere(repository.MovementQuery{}).sql())
}

// Los ids mal formados se resuelven sin consultar: el Querier nil no se usa.
func TestIDsInvalidos_NoConsultan(t *testing.T) {
	ctx := context.Background()
	assert.True(t, isUUID("6f1c2a8e-3b7d-4c59-9a4e-0d2f7b1e5c33"))
	assert.False(t, isUUID("abc"))

	products := NewProductRepository(nil)
	p, err := products.GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	p, err = products.GetForUpdate(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, p)
	has, err := products.HasSaleItems(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, has)

	movs, err := NewStockMovementRepository(nil).ListByProduct(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, movs)

	sale, err := NewSaleRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, sale)

	user, err := NewUserRepository(nil).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, user)
}
