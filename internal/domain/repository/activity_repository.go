package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockpro/internal/domain/entity"
)

// ActivityQuery filtros del journal. Campos vacíos = sin filtro.
type ActivityQuery struct {
	Type          string
	UserID        string
	MessagePrefix string
	Limit         int
	Offset        int
}

// ActivityRepository define el puerto del journal de actividad (solo inserción y lectura).
type ActivityRepository interface {
	Append(ctx context.Context, entry *entity.ActivityLogEntry) error
	// List entradas más recientes primero.
	List(ctx context.Context, q ActivityQuery) ([]*entity.ActivityLogEntry, error)
	Count(ctx context.Context, q ActivityQuery) (int, error)
	// CountByType conteo por tipo desde since (zero = todo el historial).
	CountByType(ctx context.Context, since time.Time) (map[string]int, error)
}
