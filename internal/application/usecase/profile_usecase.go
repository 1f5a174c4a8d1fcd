package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

// ProfileUseCase datos y actividad del usuario autenticado.
type ProfileUseCase struct {
	users    repository.UserRepository
	sales    repository.SaleRepository
	activity repository.ActivityRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(users repository.UserRepository, sales repository.SaleRepository, activity repository.ActivityRepository) *ProfileUseCase {
	return &ProfileUseCase{users: users, sales: sales, activity: activity}
}

// Get perfil del actor.
func (uc *ProfileUseCase) Get(ctx context.Context, actor *dto.Actor) (*dto.ProfileResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err := uc.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.ProfileResponse{UserResponse: ToUserResponse(u), UpdatedAt: u.UpdatedAt}, nil
}

// Stats ventas registradas, ingreso, productos creados y último inicio de sesión del actor.
func (uc *ProfileUseCase) Stats(ctx context.Context, actor *dto.Actor) (*dto.ProfileStatsResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	totals, err := uc.sales.Totals(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("perfil: ventas: %w", err)
	}
	added, err := uc.activity.Count(ctx, repository.ActivityQuery{Type: entity.ActivityProduct, UserID: actor.UserID, MessagePrefix: entity.MsgProductCreated})
	if err != nil {
		return nil, fmt.Errorf("perfil: productos: %w", err)
	}
	out := &dto.ProfileStatsResponse{
		TotalSales:    totals.Count,
		TotalRevenue:  totals.Revenue,
		ProductsAdded: added,
	}
	logins, err := uc.activity.List(ctx, repository.ActivityQuery{Type: entity.ActivityUser, UserID: actor.UserID, MessagePrefix: entity.MsgUserSignedIn, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("perfil: último acceso: %w", err)
	}
	if len(logins) > 0 {
		t := logins[0].CreatedAt
		out.LastLogin = &t
	}
	return out, nil
}

// ToUserResponse mapea el usuario sin el hash.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
