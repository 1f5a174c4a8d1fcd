package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body de POST /api/products/:id/stock. Quantity es el stock objetivo, no un delta.
type AdjustStockRequest struct {
	Quantity     FormValue `json:"quantity" form:"quantity"`
	MovementType string    `json:"movement_type" form:"movement_type"`
	Reason       string    `json:"reason" form:"reason"`
}

// MovementFilter parámetros del listado global de movimientos.
type MovementFilter struct {
	Type string `query:"type"`
	PageRequest
}

// StockMovementResponse salida de un movimiento.
type StockMovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	ProductName  string    `json:"product_name,omitempty"`
	MovementType string    `json:"movement_type"`
	Quantity     int       `json:"quantity"`
	Reason       string    `json:"reason,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	UserName     string    `json:"user_name,omitempty"`
	UserEmail    string    `json:"user_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// MovementListResponse página de movimientos.
type MovementListResponse struct {
	Movements []StockMovementResponse `json:"movements"`
	PageMeta
}

// StockAdjustmentResponse resultado de un ajuste. Movement es nil si el stock no cambió.
type StockAdjustmentResponse struct {
	Product  ProductResponse        `json:"product"`
	Movement *StockMovementResponse `json:"movement"`
}

// StockOverviewResponse vista de inventario.
type StockOverviewResponse struct {
	TotalProducts int                     `json:"total_products"`
	TotalUnits    int                     `json:"total_units"`
	StockValue    decimal.Decimal         `json:"stock_value"`
	InStock       int                     `json:"in_stock"`
	LowStock      int                     `json:"low_stock"`
	OutOfStock    int                     `json:"out_of_stock"`
	Recent        []StockMovementResponse `json:"recent_movements"`
}

// ReconciliationRow producto con diferencia entre stock y libro.
type ReconciliationRow struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	StockQty    int    `json:"stock_qty"`
	LedgerSum   int    `json:"ledger_sum"`
	Difference  int    `json:"difference"`
}

// ReconciliationResponse informe de conciliación. Balanced = sin diferencias.
type ReconciliationResponse struct {
	Balanced   bool                `json:"balanced"`
	Mismatches []ReconciliationRow `json:"mismatches"`
}
