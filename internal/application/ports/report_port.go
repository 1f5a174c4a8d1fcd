package ports

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

// ProductReport datos del informe de productos exportado.
type ProductReport struct {
	Title       string
	GeneratedAt time.Time
	Search      string
	Filter      string
	Stats       repository.ProductStats
	Products    []*entity.Product
}

// ProductReportGenerator puerto de salida para renderizar el informe (PDF).
type ProductReportGenerator interface {
	GenerateProductsReport(ctx context.Context, report ProductReport) ([]byte, error)
	// FileName nombre de archivo sugerido para la descarga.
	FileName(report ProductReport) string
}
