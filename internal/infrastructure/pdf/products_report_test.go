package pdf_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/internal/infrastructure/pdf"
)

func sampleReport() ports.ProductReport {
	desc := "Dell Inspiron 15"
	return ports.ProductReport{
		Title:       "Inventario de productos",
		GeneratedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Search:      "Portátil Dell",
		Filter:      "low_stock",
		Stats: repository.ProductStats{
			TotalProducts:   2,
			LowStock:        2,
			TotalStockValue: decimal.RequireFromString("465.00"),
			TotalUnits:      11,
		},
		Products: []*entity.Product{
			{ID: "1", Name: "Portátil Dell", Description: &desc, BuyPrice: decimal.RequireFromString("450"), StockQty: 3},
			{ID: "2", Name: "Ratón", BuyPrice: decimal.RequireFromString("15"), StockQty: 8},
		},
	}
}

func TestGenerateProductsReport_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoReportGenerator(language.Spanish)
	out, err := g.GenerateProductsReport(context.Background(), sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el documento debe empezar con la cabecera PDF")
}

func TestGenerateProductsReport_SinProductos(t *testing.T) {
	g := pdf.NewMarotoReportGenerator(language.Spanish)
	r := sampleReport()
	r.Products = nil
	r.Search, r.Filter = "", ""
	out, err := g.GenerateProductsReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateProductsReport_ContextoCancelado(t *testing.T) {
	g := pdf.NewMarotoReportGenerator(language.Spanish)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.GenerateProductsReport(ctx, sampleReport())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileName_Slug(t *testing.T) {
	g := pdf.NewMarotoReportGenerator(language.Spanish)
	name := g.FileName(sampleReport())
	assert.Equal(t, "productos-portatil-dell-low_stock-2026-03-14.pdf", name)
	assert.False(t, strings.ContainsAny(name, " áéíóú"))
}
