// seed crea el usuario de demostración y carga un catálogo de productos desde CSV.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Formato (separador ';', con cabecera): name;description;buy_price;stock_qty
// Los archivos exportados desde hojas de cálculo en ISO-8859-1 se convierten a UTF-8.
// Cada producto pasa por el mismo caso de uso que la API: queda su movimiento ADJUST inicial.
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockpro/internal/application/auth"
	"github.com/jhoicas/stockpro/internal/application/dto"
	"github.com/jhoicas/stockpro/internal/application/usecase"
	"github.com/jhoicas/stockpro/internal/domain"
	infrapdf "github.com/jhoicas/stockpro/internal/infrastructure/pdf"
	"github.com/jhoicas/stockpro/internal/infrastructure/postgres"
	"github.com/jhoicas/stockpro/pkg/config"
	"github.com/jhoicas/stockpro/pkg/logger"
	"github.com/jhoicas/stockpro/pkg/validation"
)

const (
	demoName     = "Demo"
	demoEmail    = "demo@stockpro.local"
	demoPassword = "demo12345"
)

// defaultCatalog se usa cuando no se pasa archivo.
const defaultCatalog = `name;description;buy_price;stock_qty
Portátil 14";Intel i5, 16 GB RAM;650.00;12
Monitor 27";IPS 2K;189.90;6
Teclado mecánico;Switches marrones;45.50;25
Ratón inalámbrico;;15.00;40
Cable HDMI 2 m;;4.20;0
Disco SSD 1 TB;NVMe;72.00;3
`

func main() {
	var src io.Reader = strings.NewReader(defaultCatalog)
	if len(os.Args) > 1 {
		raw, err := os.ReadFile(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		src = utf8Reader(raw)
	}

	rows, err := readCatalog(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración")
	}

	txRunner := postgres.NewTxRunner(pool)
	users := postgres.NewUserRepository(pool)
	activity := postgres.NewActivityRepository(pool)
	validator := validation.New()

	authUC := auth.NewAuthUseCase(txRunner, users, activity, validator, auth.JWTConfig{
		Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer,
	}, log.Component("auth"))
	_, err = authUC.SignUp(ctx, dto.SignUpRequest{
		Name: demoName, Email: demoEmail, Password: demoPassword, ConfirmPassword: demoPassword,
	})
	if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
		log.Fatal().Err(err).Msg("crear usuario demo")
	}
	demo, err := users.GetByEmail(ctx, demoEmail)
	if err != nil || demo == nil {
		log.Fatal().Err(err).Msg("usuario demo")
	}
	actor := &dto.Actor{UserID: demo.ID, Name: demo.Name, Email: demo.Email}

	productUC := usecase.NewProductUseCase(txRunner, postgres.NewProductRepository(pool),
		infrapdf.NewMarotoReportGenerator(language.French), validator, log.Component("products"))

	created := 0
	for i, form := range rows {
		if _, err := productUC.Create(ctx, actor, form); err != nil {
			log.Warn().Err(err).Int("fila", i+2).Str("name", form.Name).Msg("producto omitido")
			continue
		}
		created++
	}
	log.Info().Int("productos", created).Str("usuario", demoEmail).Msg("seed completado")
}

// utf8Reader devuelve raw tal cual si es UTF-8 válido; si no, lo decodifica como ISO-8859-1.
func utf8Reader(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func readCatalog(r io.Reader) ([]dto.ProductForm, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 4
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("archivo vacío")
	}
	out := make([]dto.ProductForm, 0, len(records)-1)
	for _, rec := range records[1:] {
		out = append(out, dto.ProductForm{
			Name:        strings.TrimSpace(rec[0]),
			Description: strings.TrimSpace(rec[1]),
			BuyPrice:    dto.FormValue(strings.TrimSpace(rec[2])),
			StockQty:    dto.FormValue(strings.TrimSpace(rec[3])),
		})
	}
	return out, nil
}
