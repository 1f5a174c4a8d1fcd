package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Límites de paginación.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// PageRequest paginación por número de página.
type PageRequest struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalize aplica los valores por defecto: page < 1 -> 1; per_page <= 0 -> 10; per_page > 100 -> 100.
func (p *PageRequest) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage <= 0 {
		p.PerPage = DefaultPerPage
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
}

// Offset desplazamiento para la página actual (requiere Normalize).
// Satura en math.MaxInt: una página enorme queda más allá del último registro.
func (p PageRequest) Offset() int {
	if p.PerPage <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.PerPage {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PerPage
}

// PageMeta metadatos de paginación en respuestas.
type PageMeta struct {
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	PerPage     int  `json:"per_page"`
	HasNextPage bool `json:"has_next_page"`
	HasPrevPage bool `json:"has_prev_page"`
}

// NewPageMeta calcula total_pages = ceil(total/per_page) y los indicadores de navegación.
func NewPageMeta(total int, p PageRequest) PageMeta {
	pages := 0
	if p.PerPage > 0 {
		pages = (total + p.PerPage - 1) / p.PerPage
	}
	return PageMeta{
		TotalCount:  total,
		TotalPages:  pages,
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		HasNextPage: p.Page < pages,
		HasPrevPage: p.Page > 1,
	}
}

// ErrorResponse cuerpo de error HTTP mínimo (rutas sin formulario).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FormValue texto enviado por el cliente. Acepta string o número en JSON,
// así buy_price = 12.5 y buy_price = "12.5" llegan igual al parser.
type FormValue string

// UnmarshalJSON acepta "texto", número o null.
func (v *FormValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*v = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*v = FormValue(n.String())
	return nil
}

// String devuelve el valor crudo.
func (v FormValue) String() string { return string(v) }

// Int interpreta el valor como entero base 10.
func (v FormValue) Int() (int, error) { return strconv.Atoi(string(v)) }
