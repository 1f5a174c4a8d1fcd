package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

// JournalUseCase lectura del journal de actividad.
type JournalUseCase struct {
	repo repository.ActivityRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewJournalUseCase construye el caso de uso.
func NewJournalUseCase(repo repository.ActivityRepository, log zerolog.Logger) *JournalUseCase {
	return &JournalUseCase{repo: repo, log: log, now: time.Now}
}

// List entradas más recientes primero; type desconocido equivale a sin filtro.
func (uc *JournalUseCase) List(ctx context.Context, f dto.JournalFilter) *dto.JournalListResponse {
	f.Normalize()
	q := repository.ActivityQuery{Limit: f.PerPage, Offset: f.Offset()}
	if entity.ValidActivityType(f.Type) {
		q.Type = f.Type
	}
	empty := &dto.JournalListResponse{Entries: []dto.ActivityResponse{}, PageMeta: dto.PageMeta{CurrentPage: 1, PerPage: f.PerPage}}
	total, err := uc.repo.Count(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Msg("contar journal")
		return empty
	}
	entries, err := uc.repo.List(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar journal")
		return empty
	}
	out := &dto.JournalListResponse{
		Entries:  make([]dto.ActivityResponse, 0, len(entries)),
		PageMeta: dto.NewPageMeta(total, f.PageRequest),
	}
	for _, e := range entries {
		out.Entries = append(out.Entries, dto.ActivityResponse{
			ID:        e.ID,
			Type:      e.Type,
			Message:   e.Message,
			Details:   e.Details,
			UserID:    e.UserID,
			User:      e.UserName,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

// Stats conteo total, del día y por tipo.
func (uc *JournalUseCase) Stats(ctx context.Context) (*dto.JournalStatsResponse, error) {
	all, err := uc.repo.CountByType(ctx, time.Time{})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	today, err := uc.repo.CountByType(ctx, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()))
	if err != nil {
		return nil, err
	}
	out := &dto.JournalStatsResponse{ByType: map[string]int{
		entity.ActivitySale:    0,
		entity.ActivityStock:   0,
		entity.ActivityProduct: 0,
		entity.ActivityUser:    0,
	}}
	for t, n := range all {
		out.ByType[t] = n
		out.Total += n
	}
	for _, n := range today {
		out.Today += n
	}
	return out, nil
}
