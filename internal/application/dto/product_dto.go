package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/domain/entity"
)

// ProductForm entrada de alta/edición. buy_price y stock_qty llegan como texto
// y se interpretan en el use case para devolver errores por campo.
type ProductForm struct {
	Name        string    `json:"name" form:"name"`
	Description string    `json:"description" form:"description"`
	BuyPrice    FormValue `json:"buy_price" form:"buy_price"`
	StockQty    FormValue `json:"stock_qty" form:"stock_qty"`
}

// Values valores del formulario para repoblarlo tras un fallo.
func (f ProductForm) Values() map[string]string {
	return map[string]string{
		"name":        f.Name,
		"description": f.Description,
		"buy_price":   f.BuyPrice.String(),
		"stock_qty":   f.StockQty.String(),
	}
}

// ProductFilter parámetros de listado.
type ProductFilter struct {
	Search string `query:"search"`
	Stock  string `query:"stock"`
	PageRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	BuyPrice    decimal.Decimal `json:"buy_price"`
	StockQty    int             `json:"stock_qty"`
	StockStatus string          `json:"stock_status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse página de productos.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	PageMeta
}

// ProductStatsResponse agregados del catálogo.
type ProductStatsResponse struct {
	TotalProducts   int             `json:"total_products"`
	LowStock        int             `json:"low_stock_products"`
	OutOfStock      int             `json:"out_of_stock_products"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	TotalUnits      int             `json:"total_units"`
}

// ProductExport archivo generado.
type ProductExport struct {
	FileName string
	Content  []byte
}

// ToProductResponse mapea la entidad; status es el cubo de stock (in_stock, low_stock, out_of_stock).
func ToProductResponse(p *entity.Product, status string) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		BuyPrice:    p.BuyPrice,
		StockQty:    p.StockQty,
		StockStatus: status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
