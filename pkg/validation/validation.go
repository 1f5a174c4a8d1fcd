// Package validation envuelve go-playground/validator y traduce los fallos
// a un mapa campo -> mensajes legibles, listo para mostrarse junto al control
// del formulario.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors mensajes de error por campo (clave = nombre JSON del campo).
type FieldErrors map[string][]string

// Add agrega un mensaje al campo.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Empty indica si no hay errores.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// Validator valida structs anotados con `validate:"..."`.
type Validator struct {
	v *validator.Validate
}

// New construye el validador; los nombres de campo salen del tag json.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// maxbytes limita la longitud en bytes (bcrypt no acepta más de 72).
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	return &Validator{v: v}
}

// Struct valida s y devuelve los errores por campo, o nil si es válido.
func (x *Validator) Struct(s any) FieldErrors {
	err := x.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": {err.Error()}}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("el campo %s es requerido", fe.Field())
	case "email":
		return "ingrese un email válido"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("debe contener al menos %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("no debe superar %s caracteres", fe.Param())
		}
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("no debe superar %s bytes", fe.Param())
	case "eqfield":
		return "las contraseñas no coinciden"
	case "oneof":
		return fmt.Sprintf("valor no permitido, use uno de: %s", fe.Param())
	case "uuid":
		return "identificador inválido"
	default:
		return fmt.Sprintf("valor inválido (%s)", fe.Tag())
	}
}
