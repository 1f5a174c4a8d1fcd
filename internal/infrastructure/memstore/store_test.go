package memstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/internal/infrastructure/memstore"
)

func product(id, name string, qty int, at time.Time) *entity.Product {
	return &entity.Product{ID: id, Name: name, BuyPrice: decimal.NewFromInt(10), StockQty: qty, CreatedAt: at, UpdatedAt: at}
}

func TestRun_ErrorRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	now := time.Now()
	require.NoError(t, s.Products().Create(ctx, product("p1", "Cable", 5, now)))

	boom := errors.New("boom")
	err := s.Run(ctx, func(tx ports.TxRepos) error {
		p, err := tx.Products.GetForUpdate(ctx, "p1")
		require.NoError(t, err)
		p.StockQty = 50
		require.NoError(t, tx.Products.Update(ctx, p))
		require.NoError(t, tx.Movements.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", Type: entity.MovementAdjust, Quantity: 45, CreatedAt: now}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.StockQty)
	movs, err := s.Movements().ListByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_CommitVisibleFuera(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Run(ctx, func(tx ports.TxRepos) error {
		return tx.Products.Create(ctx, product("p1", "Cable", 5, time.Now()))
	}))
	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestProductRepo_DevuelveCopias(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	require.NoError(t, s.Products().Create(ctx, product("p1", "Cable", 5, time.Now())))

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	p.StockQty = 999

	again, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, again.StockQty)
}

func TestProductRepo_GetByIDInexistente(t *testing.T) {
	p, err := memstore.New().Products().GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepo_FiltrosYBusqueda(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := s.Products()
	for i, p := range []*entity.Product{
		product("a", "Teclado USB", 0, base),
		product("b", "Ratón USB", 3, base.Add(time.Minute)),
		product("c", "Monitor", 10, base.Add(2*time.Minute)),
		product("d", "Portátil", 11, base.Add(3*time.Minute)),
	} {
		require.NoError(t, repo.Create(ctx, p), i)
	}

	count := func(q repository.ProductQuery) int {
		n, err := repo.Count(ctx, q)
		require.NoError(t, err)
		return n
	}
	assert.Equal(t, 1, count(repository.ProductQuery{Filter: inventory.FilterOutOfStock}))
	assert.Equal(t, 2, count(repository.ProductQuery{Filter: inventory.FilterLowStock}))
	assert.Equal(t, 1, count(repository.ProductQuery{Filter: inventory.FilterInStock}))
	assert.Equal(t, 2, count(repository.ProductQuery{Search: "usb"}))
	assert.Equal(t, 1, count(repository.ProductQuery{Search: "usb", Filter: inventory.FilterLowStock}))

	list, err := repo.List(ctx, repository.ProductQuery{Sort: repository.SortRecent, Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "d", list[0].ID)
	assert.Equal(t, "c", list[1].ID)

	low, err := repo.LowStock(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 3)
	assert.Equal(t, 0, low[0].StockQty)
	assert.Equal(t, 10, low[2].StockQty)
}

func TestMovementRepo_Mismatches(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()
	now := time.Now()
	require.NoError(t, s.Products().Create(ctx, product("p1", "Cable", 5, now)))
	require.NoError(t, s.Products().Create(ctx, product("p2", "Adaptador", 2, now)))
	require.NoError(t, s.Movements().Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", Type: entity.MovementAdjust, Quantity: 5, CreatedAt: now}))

	got, err := s.Movements().Mismatches(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ProductID)
	assert.Equal(t, 0, got[0].LedgerSum)
	assert.Equal(t, 2, got[0].StockQty)
}
