package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
)

// ProductSort orden del listado.
type ProductSort int

const (
	// SortRecent updated_at DESC, name ASC, id ASC.
	SortRecent ProductSort = iota
	// SortName name ASC, id ASC (exportación).
	SortName
)

// ProductQuery criterios del listado de productos. Limit <= 0 significa sin límite.
type ProductQuery struct {
	Search string // subcadena sin distinguir mayúsculas sobre name o description
	Filter inventory.StockFilter
	Sort   ProductSort
	Limit  int
	Offset int
}

// ProductStats agregados del catálogo.
// TotalProducts, TotalStockValue y TotalUnits respetan búsqueda y filtro;
// LowStock y OutOfStock respetan solo la búsqueda.
type ProductStats struct {
	TotalProducts   int
	LowStock        int // stock_qty <= 10, incluye agotados
	OutOfStock      int
	TotalStockValue decimal.Decimal // suma de buy_price
	TotalUnits      int
}

// StockOverview agregados de inventario para la vista de stock.
type StockOverview struct {
	TotalProducts int
	TotalUnits    int
	StockValue    decimal.Decimal // suma de buy_price * stock_qty
	InStock       int
	LowStock      int
	OutOfStock    int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update persiste name, description, buy_price, stock_qty y updated_at.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, q ProductQuery) ([]*entity.Product, error)
	Count(ctx context.Context, q ProductQuery) (int, error)
	Stats(ctx context.Context, q ProductQuery) (ProductStats, error)
	Overview(ctx context.Context) (StockOverview, error)
	// LowStock productos con stock_qty <= threshold, ordenados por stock_qty ASC.
	LowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	// HasSaleItems indica si alguna línea de venta referencia el producto.
	HasSaleItems(ctx context.Context, id string) (bool, error)
}
