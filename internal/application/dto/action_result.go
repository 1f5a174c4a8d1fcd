package dto

// Tipos de error de un ActionResult.
const (
	KindValidation         = "validation"
	KindUnauthenticated    = "unauthenticated"
	KindInvalidCredentials = "invalid_credentials"
	KindNotFound           = "not_found"
	KindConflict           = "conflict"
	KindInternal           = "internal"
)

// MsgGeneric mensaje único para errores inesperados.
const MsgGeneric = "algo salió mal, intente de nuevo"

// ActionError detalle del fallo. Fields lleva los mensajes por campo del formulario.
type ActionError struct {
	Kind    string              `json:"kind"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"fields,omitempty"`
}

// ActionResult resultado explícito de toda acción. Una redirección es un valor, no un error.
// Values devuelve lo que el usuario envió para repoblar el formulario (nunca contraseñas).
type ActionResult struct {
	Success  bool              `json:"success"`
	Redirect string            `json:"redirect,omitempty"`
	Message  string            `json:"message,omitempty"`
	Error    *ActionError      `json:"error,omitempty"`
	Values   map[string]string `json:"values,omitempty"`
	Data     any               `json:"data,omitempty"`
}

// OK resultado exitoso con datos.
func OK(data any) ActionResult {
	return ActionResult{Success: true, Data: data}
}

// RedirectTo resultado exitoso que indica navegar a path.
func RedirectTo(path string) ActionResult {
	return ActionResult{Success: true, Redirect: path}
}

// Fail resultado fallido.
func Fail(kind, message string) ActionResult {
	return ActionResult{Error: &ActionError{Kind: kind, Message: message}}
}

// WithValues adjunta los valores enviados.
func (r ActionResult) WithValues(values map[string]string) ActionResult {
	r.Values = values
	return r
}
