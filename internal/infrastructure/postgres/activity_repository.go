package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo journal de actividad sobre la tabla activity_log.
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append inserta la entrada.
func (r *ActivityRepo) Append(ctx context.Context, e *entity.ActivityLogEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO activity_log (id, type, message, details, user_id, user_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.Type, e.Message, nullable(e.Details), nullable(e.UserID), nullable(e.UserName), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// List entradas más recientes primero.
func (r *ActivityRepo) List(ctx context.Context, q repository.ActivityQuery) ([]*entity.ActivityLogEntry, error) {
	w := activityWhere(q)
	query := `SELECT id, type, message, details, user_id, user_name, created_at FROM activity_log` +
		w.sql() + ` ORDER BY created_at DESC, id DESC`
	if q.Limit > 0 {
		query += ` LIMIT ` + w.arg(q.Limit) + ` OFFSET ` + w.arg(q.Offset)
	}
	rows, err := r.q.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()
	out := make([]*entity.ActivityLogEntry, 0)
	for rows.Next() {
		var (
			e                         entity.ActivityLogEntry
			details, userID, userName *string
		)
		if err := rows.Scan(&e.ID, &e.Type, &e.Message, &details, &userID, &userName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.Details, e.UserID, e.UserName = deref(details), deref(userID), deref(userName)
		out = append(out, &e)
	}
	return out, rows.Err()
}

// Count entradas que cumplen el filtro.
func (r *ActivityRepo) Count(ctx context.Context, q repository.ActivityQuery) (int, error) {
	w := activityWhere(q)
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM activity_log`+w.sql(), w.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count activity: %w", err)
	}
	return n, nil
}

// CountByType conteo por tipo con created_at >= since.
func (r *ActivityRepo) CountByType(ctx context.Context, since time.Time) (map[string]int, error) {
	w := &where{}
	if !since.IsZero() {
		w.add(`created_at >= ?`, since)
	}
	rows, err := r.q.Query(ctx, `SELECT type, COUNT(*) FROM activity_log`+w.sql()+` GROUP BY type`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("count activity by type: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan activity count: %w", err)
		}
		out[t] = n
	}
	return out, rows.Err()
}

func activityWhere(q repository.ActivityQuery) *where {
	w := &where{}
	if q.Type != "" {
		w.add(`type = ?`, q.Type)
	}
	if q.UserID != "" {
		w.add(`user_id = ?`, q.UserID)
	}
	if q.MessagePrefix != "" {
		w.add(`message LIKE ?`, likeEscaper.Replace(q.MessagePrefix)+"%")
	}
	return w
}
