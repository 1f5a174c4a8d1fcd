package memstore

import (
	"context"

	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria. El email es único.
type UserRepo struct{ base }

// Create persiste el usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.do(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Email == user.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[user.ID] = copyUser(user)
		return nil
	})
}

// GetByID devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.do(ctx, func(st *state) error {
		out = copyUser(st.users[id])
		return nil
	})
	return out, err
}

// GetByEmail devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.do(ctx, func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				out = copyUser(u)
				break
			}
		}
		return nil
	})
	return out, err
}
