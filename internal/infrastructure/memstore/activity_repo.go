package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo journal en memoria.
type ActivityRepo struct{ base }

// Append agrega la entrada.
func (r *ActivityRepo) Append(ctx context.Context, entry *entity.ActivityLogEntry) error {
	return r.do(ctx, func(st *state) error {
		e := *entry
		st.activity = append(st.activity, &e)
		return nil
	})
}

// List más recientes primero.
func (r *ActivityRepo) List(ctx context.Context, q repository.ActivityQuery) ([]*entity.ActivityLogEntry, error) {
	var out []*entity.ActivityLogEntry
	err := r.do(ctx, func(st *state) error {
		matched := matchActivity(st.activity, q)
		if q.Offset >= len(matched) {
			return nil
		}
		matched = matched[q.Offset:]
		if q.Limit > 0 && len(matched) > q.Limit {
			matched = matched[:q.Limit]
		}
		for _, e := range matched {
			c := *e
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}

// Count entradas que cumplen el filtro.
func (r *ActivityRepo) Count(ctx context.Context, q repository.ActivityQuery) (int, error) {
	n := 0
	err := r.do(ctx, func(st *state) error {
		n = len(matchActivity(st.activity, q))
		return nil
	})
	return n, err
}

// CountByType conteo por tipo con created_at >= since.
func (r *ActivityRepo) CountByType(ctx context.Context, since time.Time) (map[string]int, error) {
	out := map[string]int{}
	err := r.do(ctx, func(st *state) error {
		for _, e := range st.activity {
			if !since.IsZero() && e.CreatedAt.Before(since) {
				continue
			}
			out[e.Type]++
		}
		return nil
	})
	return out, err
}

func matchActivity(all []*entity.ActivityLogEntry, q repository.ActivityQuery) []*entity.ActivityLogEntry {
	out := make([]*entity.ActivityLogEntry, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		e := all[i]
		if q.Type != "" && e.Type != q.Type {
			continue
		}
		if q.UserID != "" && e.UserID != q.UserID {
			continue
		}
		if q.MessagePrefix != "" && !strings.HasPrefix(e.Message, q.MessagePrefix) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
