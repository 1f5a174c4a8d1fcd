package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/stockpro/internal/application/analytics"
	"github.com/jhoicas/stockpro/internal/application/auth"
	"github.com/jhoicas/stockpro/internal/application/inventory"
	"github.com/jhoicas/stockpro/internal/application/ports"
	"github.com/jhoicas/stockpro/internal/application/sales"
	"github.com/jhoicas/stockpro/internal/application/usecase"
	"github.com/jhoicas/stockpro/internal/domain/repository"
	"github.com/jhoicas/stockpro/internal/infrastructure/memstore"
	infrapdf "github.com/jhoicas/stockpro/internal/infrastructure/pdf"
	"github.com/jhoicas/stockpro/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockpro/internal/interfaces/http"
	"github.com/jhoicas/stockpro/pkg/config"
	"github.com/jhoicas/stockpro/pkg/logger"
	"github.com/jhoicas/stockpro/pkg/validation"
)

// stores repositorios de la app, en PostgreSQL o en memoria según STORE_DRIVER.
type stores struct {
	tx        ports.TxRunner
	users     repository.UserRepository
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	sales     repository.SaleRepository
	activity  repository.ActivityRepository
	close     func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.App.StoreDriver == "memory" {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		m := memstore.New()
		return &stores{
			tx:        m,
			users:     m.Users(),
			products:  m.Products(),
			movements: m.Movements(),
			sales:     m.Sales(),
			activity:  m.Activity(),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("esquema aplicado")
	}
	return &stores{
		tx:        postgres.NewTxRunner(pool),
		users:     postgres.NewUserRepository(pool),
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		sales:     postgres.NewSaleRepository(pool),
		activity:  postgres.NewActivityRepository(pool),
		close:     pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: no se podrán emitir sesiones")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer st.close()

	validator := validation.New()
	reports := infrapdf.NewMarotoReportGenerator(language.French)

	authUC := auth.NewAuthUseCase(st.tx, st.users, st.activity, validator, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	productUC := usecase.NewProductUseCase(st.tx, st.products, reports, validator, log.Component("products"))
	stockUC := inventory.NewStockUseCase(st.tx, st.products, st.movements, log.Component("stock"))
	saleUC := sales.NewSaleUseCase(st.tx, st.sales, validator, sales.Options{
		DecrementStock: cfg.Stock.SalesDecrementStock,
	}, log.Component("sales"))
	dashboardUC := appanalytics.NewDashboardUseCase(st.products, st.sales)
	journalUC := usecase.NewJournalUseCase(st.activity, log.Component("journal"))
	profileUC := usecase.NewProfileUseCase(st.users, st.sales, st.activity)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "StockPro API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		StockUC:     stockUC,
		SaleUC:      saleUC,
		DashboardUC: dashboardUC,
		JournalUC:   journalUC,
		ProfileUC:   profileUC,
		Session: httpRouter.SessionConfig{
			CookieName: cfg.Session.CookieName,
			SignInPath: cfg.Session.SignInPath,
			Secure:     cfg.Session.CookieSecure,
		},
		ServiceName: cfg.App.Name,
		Log:         httpLog,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
