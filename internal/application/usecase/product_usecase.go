package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockpro/internal/application/dto"
	appinv "github.com/jhoicas/stockpro/internal/application/inventory"
	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/domain"
	"github.com/jhoicas/stockpro/internal/domain/entity"
	"github.com/jhoicas/stockpro/internal/domain/inventory"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/pkg/validation"
)

// Motivo del movimiento que registra el saldo de apertura.
const initialStockReason = "stock inicial"

// ProductUseCase catálogo de productos. Cualquier cambio de stock_qty deja un movimiento ADJUST
// en la misma transacción.
type ProductUseCase struct {
	txRunner  ports.TxRunner
	repo      repository.ProductRepository
	reports   ports.ProductReportGenerator
	validator *validation.Validator
	log       zerolog.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner ports.TxRunner,
	repo repository.ProductRepository,
	reports ports.ProductReportGenerator,
	validator *validation.Validator,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo, reports: reports, validator: validator, log: log}
}

// productCommand formulario ya interpretado.
type productCommand struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description *string
	BuyPrice    decimal.Decimal
	StockQty    int `json:"stock_qty" validate:"gte=0"`
}

// parseProductForm interpreta y valida el formulario. Los errores se acumulan por campo.
func (uc *ProductUseCase) parseProductForm(in dto.ProductForm) (productCommand, error) {
	cmd := productCommand{Name: strings.TrimSpace(in.Name)}
	if d := strings.TrimSpace(in.Description); d != "" {
		cmd.Description = &d
	}
	fields := validation.FieldErrors{}

	priceRaw := strings.TrimSpace(in.BuyPrice.String())
	price, err := decimal.NewFromString(priceRaw)
	switch {
	case priceRaw == "" || err != nil:
		fields.Add("buy_price", "el precio de compra debe ser un número")
	case inventory.PriceProblem(price) != "":
		fields.Add("buy_price", "el precio de compra "+inventory.PriceProblem(price))
	default:
		cmd.BuyPrice = price
	}

	qtyRaw := strings.TrimSpace(in.StockQty.String())
	qty, err := dto.FormValue(qtyRaw).Int()
	switch {
	case qtyRaw == "" || err != nil:
		fields.Add("stock_qty", "la cantidad debe ser un número entero")
	case qty > inventory.MaxQty:
		fields.Add("stock_qty", fmt.Sprintf("la cantidad no debe superar %d", inventory.MaxQty))
	default:
		cmd.StockQty = qty
	}

	for field, msgs := range uc.validator.Struct(cmd) {
		if field == "stock_qty" && len(fields["stock_qty"]) > 0 {
			continue
		}
		if field == "name" {
			msgs = []string{"el nombre del producto es requerido"}
			if cmd.Name != "" {
				msgs = []string{"el nombre no debe superar 200 caracteres"}
			}
		}
		if field == "stock_qty" {
			msgs = []string{"la cantidad no puede ser negativa"}
		}
		fields[field] = append(fields[field], msgs...)
	}
	if !fields.Empty() {
		return cmd, &domain.ValidationError{Fields: fields}
	}
	return cmd, nil
}

// List listado paginado con búsqueda y filtro de stock.
// Si la consulta falla se registra el error y se devuelve una página vacía.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductFilter) *dto.ProductListResponse {
	f.Normalize()
	q := repository.ProductQuery{
		Search: strings.TrimSpace(f.Search),
		Filter: inventory.ParseStockFilter(f.Stock),
		Sort:   repository.SortRecent,
		Limit:  f.PerPage,
		Offset: f.Offset(),
	}
	total, err := uc.repo.Count(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Str("search", q.Search).Msg("contar productos")
		return emptyProductList(f.PerPage)
	}
	list, err := uc.repo.List(ctx, q)
	if err != nil {
		uc.log.Error().Err(err).Str("search", q.Search).Msg("listar productos")
		return emptyProductList(f.PerPage)
	}
	return &dto.ProductListResponse{
		Products: toProductResponses(list),
		PageMeta: dto.NewPageMeta(total, f.PageRequest),
	}
}

// Get obtiene un producto por ID.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	r := toProductResponse(p)
	return &r, nil
}

// Create valida, inserta el producto y, si stock_qty > 0, el movimiento ADJUST de apertura.
func (uc *ProductUseCase) Create(ctx context.Context, actor *dto.Actor, in dto.ProductForm) (*dto.ProductResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	cmd, err := uc.parseProductForm(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        cmd.Name,
		Description: cmd.Description,
		BuyPrice:    cmd.BuyPrice,
		StockQty:    cmd.StockQty,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		if err := tx.Products.Create(ctx, product); err != nil {
			return err
		}
		if _, err := appinv.RecordMovement(ctx, tx, product.ID, product.StockQty, entity.MovementAdjust, initialStockReason, actor.UserID, now); err != nil {
			return err
		}
		return tx.Activity.Append(ctx, activity(entity.ActivityProduct, entity.MsgProductCreated+" - "+product.Name,
			fmt.Sprintf("Precio: %s, Stock inicial: %d", product.BuyPrice.StringFixed(2), product.StockQty), actor, now))
	})
	if err != nil {
		return nil, err
	}
	r := toProductResponse(product)
	return &r, nil
}

// Update re-valida, bloquea la fila y registra un ADJUST con el delta si stock_qty cambió.
func (uc *ProductUseCase) Update(ctx context.Context, actor *dto.Actor, id string, in dto.ProductForm) (*dto.ProductResponse, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	cmd, err := uc.parseProductForm(in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	var updated *entity.Product
	err = uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := inventory.Delta(product.StockQty, cmd.StockQty)
		product.Name = cmd.Name
		product.Description = cmd.Description
		product.BuyPrice = cmd.BuyPrice
		product.StockQty = cmd.StockQty
		product.UpdatedAt = now
		if err := tx.Products.Update(ctx, product); err != nil {
			return err
		}
		if _, err := appinv.RecordMovement(ctx, tx, product.ID, delta, entity.MovementAdjust, "", actor.UserID, now); err != nil {
			return err
		}
		details := "Datos actualizados"
		if delta != 0 {
			details = "Stock " + appinv.SignedQty(delta) + " unidades"
		}
		updated = product
		return tx.Activity.Append(ctx, activity(entity.ActivityProduct, entity.MsgProductUpdated+" - "+product.Name, details, actor, now))
	})
	if err != nil {
		return nil, err
	}
	r := toProductResponse(updated)
	return &r, nil
}

// Delete elimina el producto y sus movimientos. Si alguna venta lo referencia devuelve
// domain.ErrProductHasSales sin tocar nada.
func (uc *ProductUseCase) Delete(ctx context.Context, actor *dto.Actor, id string) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	now := time.Now()
	return uc.txRunner.Run(ctx, func(tx ports.TxRepos) error {
		product, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		sold, err := tx.Products.HasSaleItems(ctx, id)
		if err != nil {
			return err
		}
		if sold {
			return domain.ErrProductHasSales
		}
		if err := tx.Movements.DeleteByProduct(ctx, id); err != nil {
			return err
		}
		if err := tx.Products.Delete(ctx, id); err != nil {
			return err
		}
		return tx.Activity.Append(ctx, activity(entity.ActivityProduct, entity.MsgProductDeleted+" - "+product.Name, "", actor, now))
	})
}

// Stats agregados del catálogo respetando búsqueda y filtro.
func (uc *ProductUseCase) Stats(ctx context.Context, search, stock string) *dto.ProductStatsResponse {
	st, err := uc.repo.Stats(ctx, repository.ProductQuery{
		Search: strings.TrimSpace(search),
		Filter: inventory.ParseStockFilter(stock),
	})
	if err != nil {
		uc.log.Error().Err(err).Msg("estadísticas de productos")
		return &dto.ProductStatsResponse{TotalStockValue: decimal.Zero}
	}
	return &dto.ProductStatsResponse{
		TotalProducts:   st.TotalProducts,
		LowStock:        st.LowStock,
		OutOfStock:      st.OutOfStock,
		TotalStockValue: st.TotalStockValue,
		TotalUnits:      st.TotalUnits,
	}
}

// LowStock productos con stock_qty <= threshold, de menor a mayor stock.
func (uc *ProductUseCase) LowStock(ctx context.Context, threshold int) []dto.ProductResponse {
	if threshold < 0 {
		threshold = inventory.LowStockThreshold
	}
	list, err := uc.repo.LowStock(ctx, threshold)
	if err != nil {
		uc.log.Error().Err(err).Int("threshold", threshold).Msg("productos con stock bajo")
		return []dto.ProductResponse{}
	}
	return toProductResponses(list)
}

// Export genera el informe PDF de los productos filtrados, ordenados por nombre.
func (uc *ProductUseCase) Export(ctx context.Context, actor *dto.Actor, search, stock string) (*dto.ProductExport, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	q := repository.ProductQuery{
		Search: strings.TrimSpace(search),
		Filter: inventory.ParseStockFilter(stock),
		Sort:   repository.SortName,
	}
	list, err := uc.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("exportar productos: %w", err)
	}
	stats, err := uc.repo.Stats(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("exportar productos: %w", err)
	}
	report := ports.ProductReport{
		Title:       "Inventario de productos",
		GeneratedAt: time.Now(),
		Search:      q.Search,
		Filter:      string(q.Filter),
		Stats:       stats,
		Products:    list,
	}
	content, err := uc.reports.GenerateProductsReport(ctx, report)
	if err != nil {
		return nil, err
	}
	return &dto.ProductExport{FileName: uc.reports.FileName(report), Content: content}, nil
}

func emptyProductList(perPage int) *dto.ProductListResponse {
	return &dto.ProductListResponse{
		Products: []dto.ProductResponse{},
		PageMeta: dto.PageMeta{CurrentPage: 1, PerPage: perPage},
	}
}

func activity(typ, msg, details string, actor *dto.Actor, now time.Time) *entity.ActivityLogEntry {
	return &entity.ActivityLogEntry{
		ID:        uuid.New().String(),
		Type:      typ,
		Message:   msg,
		Details:   details,
		UserID:    actor.UserID,
		UserName:  actor.Name,
		CreatedAt: now,
	}
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ToProductResponse(p, string(inventory.Classify(p.StockQty)))
}
