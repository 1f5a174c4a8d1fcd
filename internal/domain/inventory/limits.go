package inventory

import (
	"math"

	"github.com/shopspring/decimal"
)

// Rangos de las columnas: precios NUMERIC(12,2), cantidades INTEGER.
const (
	PriceScale = 2
	MaxQty     = math.MaxInt32
)

// MaxPrice mayor importe representable en NUMERIC(12,2).
var MaxPrice = decimal.RequireFromString("9999999999.99")

// PriceProblem describe por qué d no es un importe válido; "" si lo es.
func PriceProblem(d decimal.Decimal) string {
	switch {
	case d.IsNegative():
		return "no puede ser negativo"
	case !d.Equal(d.Round(PriceScale)):
		return "admite como máximo 2 decimales"
	case d.GreaterThan(MaxPrice):
		return "no debe superar " + MaxPrice.StringFixed(PriceScale)
	}
	return ""
}
