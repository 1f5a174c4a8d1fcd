package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	domaininv "github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
)

const overviewRecentMovements = 10

// StockUseCase ajustes de stock y consultas del libro de movimientos.
// Toda escritura corre en una transacción con la fila del producto bloqueada (SELECT FOR UPDATE).
type StockUseCase struct {
	txRunner     ports.TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	log          zerolog.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	txRunner ports.TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	log zerolog.Logger,
) *StockUseCase {
	return &StockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		log:          log,
	}
}

// AdjustStock fija el stock de productID en la cantidad pedida (no es un delta).
// Valida tipo y cantidad antes de abrir la transacción; nada se escribe si algo falla.
func (uc *StockUseCase) AdjustStock(ctx context.Context, actor *dto.Actor, productID string, in dto.AdjustStockRequest) (*dto.StockAdjustmentResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	typ := entity.MovementType(strings.ToUpper(strings.TrimSpace(in.MovementType)))
	if typ == "" {
		typ = entity.MovementAdjust
	}
	verr := &domain.ValidationError{Fields: map[string][]string{}}
	if !typ.Valid() {
		verr.Fields["movement_type"] = []string{"tipo de movimiento inválido, use BUY, SELL o ADJUST"}
	}
	target, err := in.Quantity.Int()
	switch {
	case strings.TrimSpace(in.Quantity.String()) == "" || err != nil:
		verr.Fields["quantity"] = []string{"la cantidad debe ser un número entero"}
	case target < 0:
		verr.Fields["quantity"] = []string{"la cantidad no puede ser negativa"}
	case target > domaininv.MaxQty:
		verr.Fields["quantity"] = []string{fmt.Sprintf("la cantidad no debe superar %d", domaininv.MaxQty)}
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	reason := strings.TrimSpace(in.Reason)
	now := time.Now()
	var out *dto.StockAdjustmentResponse
	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		product, mov, err := SetStock(ctx, tx, StockChange{
			ProductID: productID,
			Target:    target,
			Type:      typ,
			Reason:    reason,
			UserID:    actor.UserID,
			Now:       now,
		})
		if err != nil {
			return err
		}
		out = &dto.StockAdjustmentResponse{Product: dto.ToProductResponse(product, string(domaininv.Classify(product.StockQty)))}
		if mov == nil {
			return nil
		}
		mov.ProductName = product.Name
		r := toMovementResponse(mov)
		out.Movement = &r

		details := SignedQty(mov.Quantity) + " unidades"
		if reason != "" {
			details += " (" + reason + ")"
		}
		return tx.Activity.Append(ctx, &entity.ActivityLogEntry{
			ID:        uuid.New().String(),
			Type:      entity.ActivityStock,
			Message:   entity.MsgStockAdjusted + " - " + product.Name,
			Details:   details,
			UserID:    actor.UserID,
			UserName:  actor.Name,
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ProductMovements historial de un producto, más reciente primero.
func (uc *StockUseCase) ProductMovements(ctx context.Context, productID string) ([]dto.StockMovementResponse, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movs, err := uc.movementRepo.ListByProduct(ctx, productID)
	if err != nil {
		uc.log.Error().Err(err).Str("product_id", productID).Msg("listar movimientos del producto")
		return []dto.StockMovementResponse{}, nil
	}
	return toMovementResponses(movs), nil
}

// Movements listado global paginado; type desconocido equivale a sin filtro.
func (uc *StockUseCase) Movements(ctx context.Context, f dto.MovementFilter) (*dto.MovementListResponse, error) {
	f.Normalize()
	q := repository.MovementQuery{Limit: f.PerPage, Offset: f.Offset()}
	if t := entity.MovementType(strings.ToUpper(strings.TrimSpace(f.Type))); t.Valid() {
		q.Type = t
	}
	total, err := uc.movementRepo.Count(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Msg("contar movimientos")
		return emptyMovements(), nil
	}
	movs, err := uc.movementRepo.List(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Msg("listar movimientos")
		return emptyMovements(), nil
	}
	return &dto.MovementListResponse{
		Movements: toMovementResponses(movs),
		PageMeta:  dto.NewPageMeta(total, f.PageRequest),
	}, nil
}

// Overview agregados de inventario más los últimos movimientos.
func (uc *StockUseCase) Overview(ctx context.Context) (*dto.StockOverviewResponse, error) {
	ov, err := uc.productRepo.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("stock overview: %w", err)
	}
	recent, err := uc.movementRepo.List(ctx, repository.MovementQuery{Limit: overviewRecentMovements})
	if err != nil {
		uc.log.Warn().Err(err).Msg("últimos movimientos")
		recent = nil
	}
	return &dto.StockOverviewResponse{
		TotalProducts: ov.TotalProducts,
		TotalUnits:    ov.TotalUnits,
		StockValue:    ov.StockValue.Round(2),
		InStock:       ov.InStock,
		LowStock:      ov.LowStock,
		OutOfStock:    ov.OutOfStock,
		Recent:        toMovementResponses(recent),
	}, nil
}

// Reconciliation productos cuyo saldo del libro difiere del stock actual.
func (uc *StockUseCase) Reconciliation(ctx context.Context) (*dto.ReconciliationResponse, error) {
	rows, err := uc.movementRepo.Mismatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("conciliación: %w", err)
	}
	out := &dto.ReconciliationResponse{Balanced: len(rows) == 0, Mismatches: make([]dto.ReconciliationRow, 0, len(rows))}
	for _, r := range rows {
		out.Mismatches = append(out.Mismatches, dto.ReconciliationRow{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			StockQty:    r.StockQty,
			LedgerSum:   r.LedgerSum,
			Difference:  r.StockQty - r.LedgerSum,
		})
	}
	return out, nil
}

func emptyMovements() *dto.MovementListResponse {
	return &dto.MovementListResponse{
		Movements: []dto.StockMovementResponse{},
		PageMeta:  dto.PageMeta{CurrentPage: 1},
	}
}

func toMovementResponses(movs []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return out
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		MovementType: string(m.Type),
		Quantity:     m.Quantity,
		Reason:       m.Reason,
		UserID:       m.UserID,
		UserName:     m.UserName,
		UserEmail:    m.UserEmail,
		CreatedAt:    m.CreatedAt,
	}
}
