package inventory

// Umbral que separa "stock bajo" de "en stock". Es el único umbral de los filtros.
const LowStockThreshold = 10

// StockFilter cubo de nivel de stock usado por el listado de productos.
type StockFilter string

// Filtros de stock. FilterAll (vacío) no aplica filtro.
const (
	FilterAll        StockFilter = ""
	FilterInStock    StockFilter = "in_stock"
	FilterLowStock   StockFilter = "low_stock"
	FilterOutOfStock StockFilter = "out_of_stock"
)

// ParseStockFilter devuelve el filtro correspondiente; cualquier valor desconocido equivale a FilterAll.
func ParseStockFilter(s string) StockFilter {
	switch f := StockFilter(s); f {
	case FilterInStock, FilterLowStock, FilterOutOfStock:
		return f
	}
	return FilterAll
}

// Classify devuelve el cubo al que pertenece una cantidad.
//
//	in_stock:     qty > 10
//	low_stock:    0 < qty <= 10
//	out_of_stock: qty == 0
func Classify(qty int) StockFilter {
	switch {
	case qty > LowStockThreshold:
		return FilterInStock
	case qty > 0:
		return FilterLowStock
	default:
		return FilterOutOfStock
	}
}

// Matches indica si qty cae dentro del filtro. FilterAll acepta todo.
func (f StockFilter) Matches(qty int) bool {
	if f == FilterAll {
		return true
	}
	return Classify(qty) == f
}

// Bounds traduce el filtro a límites inclusivos [min, max] sobre stock_qty.
// max < 0 significa sin límite superior; ok=false para FilterAll.
func (f StockFilter) Bounds() (min, max int, ok bool) {
	switch f {
	case FilterInStock:
		return LowStockThreshold + 1, -1, true
	case FilterLowStock:
		return 1, LowStockThreshold, true
	case FilterOutOfStock:
		return 0, 0, true
	}
	return 0, 0, false
}
