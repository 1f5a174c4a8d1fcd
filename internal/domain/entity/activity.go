package entity

import "time"

// Categorías del journal de actividad.
const (
	ActivitySale    = "sale"
	ActivityStock   = "stock"
	ActivityProduct = "product"
	ActivityUser    = "user"
)

// Mensajes fijos del journal; los de usuario se consultan para el perfil.
const (
	MsgProductCreated = "Producto creado"
	MsgProductUpdated = "Producto actualizado"
	MsgProductDeleted = "Producto eliminado"
	MsgStockAdjusted  = "Ajuste de stock"
	MsgSaleRecorded   = "Venta registrada"
	MsgUserSignedUp   = "Cuenta creada"
	MsgUserSignedIn   = "Inicio de sesión"
)

// ActivityLogEntry registro del journal, escrito en la misma transacción que la mutación que describe.
type ActivityLogEntry struct {
	ID        string
	Type      string
	Message   string
	Details   string
	UserID    string
	UserName  string
	CreatedAt time.Time
}

// ValidActivityType indica si t es una categoría conocida.
func ValidActivityType(t string) bool {
	switch t {
	case ActivitySale, ActivityStock, ActivityProduct, ActivityUser:
		return true
	}
	return false
}
