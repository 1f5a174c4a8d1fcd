package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/application/usecase"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/pkg/jwt"
	"github.com/jhoicas/stockpro/pkg/validation"
)

// BcryptCost costo de hashing de contraseñas.
const BcryptCost = 12

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y sesión.
type AuthUseCase struct {
	txRunner  ports.TxRunner
	userRepo  repository.UserRepository
	activity  repository.ActivityRepository
	validator *validation.Validator
	jwtCfg    JWTConfig
	cost      int
	dummyHash []byte
	log       zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	txRunner ports.TxRunner,
	userRepo repository.UserRepository,
	activity repository.ActivityRepository,
	validator *validation.Validator,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	return newAuthUseCase(txRunner, userRepo, activity, validator, jwtCfg, BcryptCost, log)
}

// NewAuthUseCaseWithCost igual que NewAuthUseCase con otro costo de bcrypt (tests).
func NewAuthUseCaseWithCost(
	txRunner ports.TxRunner,
	userRepo repository.UserRepository,
	activity repository.ActivityRepository,
	validator *validation.Validator,
	jwtCfg JWTConfig,
	cost int,
	log zerolog.Logger,
) *AuthUseCase {
	return newAuthUseCase(txRunner, userRepo, activity, validator, jwtCfg, cost, log)
}

func newAuthUseCase(
	txRunner ports.TxRunner,
	userRepo repository.UserRepository,
	activity repository.ActivityRepository,
	validator *validation.Validator,
	jwtCfg JWTConfig,
	cost int,
	log zerolog.Logger,
) *AuthUseCase {
	// Se compara contra dummy cuando el email no existe; ambos caminos pagan un bcrypt.
	dummy, err := bcrypt.GenerateFromPassword([]byte("stockpro-dummy-password"), cost)
	if err != nil {
		log.Warn().Err(err).Msg("auth: hash de referencia")
	}
	return &AuthUseCase{
		txRunner:  txRunner,
		userRepo:  userRepo,
		activity:  activity,
		validator: validator,
		jwtCfg:    jwtCfg,
		cost:      cost,
		dummyHash: dummy,
		log:       log,
	}
}

// NormalizeEmail minúsculas y sin espacios.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp valida el formulario, hashea la contraseña con bcrypt y persiste el usuario.
// Un email ya registrado se informa como error del campo email.
func (uc *AuthUseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.UserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = NormalizeEmail(in.Email)
	if fields := uc.validator.Struct(in); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		existing, err := tx.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			return err
		}
		return tx.Activity.Append(ctx, &entity.ActivityLogEntry{
			ID:        uuid.New().String(),
			Type:      entity.ActivityUser,
			Message:   entity.MsgUserSignedUp,
			Details:   user.Email,
			UserID:    user.ID,
			UserName:  user.Name,
			CreatedAt: now,
		})
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return nil, domain.NewValidationError("email", domain.ErrEmailAlreadyExists.Error())
	}
	if err != nil {
		return nil, err
	}
	r := usecase.ToUserResponse(user)
	return &r, nil
}

// SignIn verifica email/contraseña y emite el token de sesión.
// Email inexistente y contraseña incorrecta devuelven el mismo domain.ErrInvalidCredentials.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.SignInRequest) (*dto.SessionResponse, error) {
	in.Email = NormalizeEmail(in.Email)
	if fields := uc.validator.Struct(in); fields != nil {
		return nil, &domain.ValidationError{Fields: fields}
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(in.Password))
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Name, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if err := uc.activity.Append(ctx, &entity.ActivityLogEntry{
		ID:        uuid.New().String(),
		Type:      entity.ActivityUser,
		Message:   entity.MsgUserSignedIn,
		Details:   "Conexión exitosa",
		UserID:    user.ID,
		UserName:  user.Name,
		CreatedAt: now,
	}); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("journal: inicio de sesión")
	}
	return &dto.SessionResponse{
		Token:     token,
		ExpiresAt: now.Add(time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute),
		User:      dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email},
	}, nil
}

// ValidateSession recupera la identidad de un token. Cualquier fallo es domain.ErrUnauthenticated.
func (uc *AuthUseCase) ValidateSession(token string) (*dto.Actor, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	id, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return &dto.Actor{UserID: id.UserID, Name: id.Name, Email: id.Email}, nil
}

// Me datos del usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, actor *dto.Actor) (*dto.UserResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	u, err := uc.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUnauthenticated
	}
	r := usecase.ToUserResponse(u)
	return &r, nil
}
