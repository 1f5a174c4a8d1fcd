package dto_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockpro/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	p := dto.PageRequest{Page: -3, PerPage: 500}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, dto.MaxPerPage, p.PerPage)

	p = dto.PageRequest{}
	p.Normalize()
	assert.Equal(t, dto.DefaultPerPage, p.PerPage)
	assert.Zero(t, p.Offset())
}

func TestPageRequest_OffsetSatura(t *testing.T) {
	assert.Equal(t, 20, dto.PageRequest{Page: 3, PerPage: 10}.Offset())
	assert.Equal(t, math.MaxInt, dto.PageRequest{Page: 1<<61 + 1, PerPage: 8}.Offset())
	assert.Equal(t, math.MaxInt, dto.PageRequest{Page: math.MaxInt, PerPage: 100}.Offset())
}

func TestNewPageMeta(t *testing.T) {
	m := dto.NewPageMeta(7, dto.PageRequest{Page: 2, PerPage: 3})
	assert.Equal(t, 3, m.TotalPages)
	assert.True(t, m.HasNextPage)
	assert.True(t, m.HasPrevPage)
}

func TestFormValue_AceptaTextoYNumero(t *testing.T) {
	var in struct {
		A dto.FormValue `json:"a"`
		B dto.FormValue `json:"b"`
		C dto.FormValue `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12.5","b":12.5,"c":null}`), &in))
	assert.Equal(t, "12.5", in.A.String())
	assert.Equal(t, "12.5", in.B.String())
	assert.Empty(t, in.C.String())
}
