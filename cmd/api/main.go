package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sourcedupays/terrain-api/internal/application/analytics"
	"github.com/sourcedupays/terrain-api/internal/application/auth"
	"github.com/sourcedupays/terrain-api/internal/application/export"
	"github.com/sourcedupays/terrain-api/internal/application/identity"
	"github.com/sourcedupays/terrain-api/internal/application/usecase"
	"github.com/sourcedupays/terrain-api/internal/application/visit"
	infrapdf "github.com/sourcedupays/terrain-api/internal/infrastructure/pdf"
	"github.com/sourcedupays/terrain-api/internal/infrastructure/postgres"
	httpRouter "github.com/sourcedupays/terrain-api/internal/interfaces/http"
	"github.com/sourcedupays/terrain-api/pkg/config"
	"github.com/sourcedupays/terrain-api/pkg/logger"
	"github.com/sourcedupays/terrain-api/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	visitRepo := postgres.NewVisitRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	competitorRepo := postgres.NewCompetitorRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	resolver := identity.NewResolver(userRepo)

	createVisitUC := visit.NewCreateVisitUseCase(txRunner, clientRepo)
	decideVisitUC := visit.NewDecideVisitUseCase(txRunner, visitRepo)
	queryVisitsUC := visit.NewQueryVisitsUseCase(visitRepo)

	userUC := usecase.NewUserUseCase(userRepo, txRunner)
	activityUC := usecase.NewActivityUseCase(activityRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo)
	competitorUC := usecase.NewCompetitorUseCase(competitorRepo)
	dashboardUC := analytics.NewDashboardUseCase(statsRepo, visitRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := export.NewReportUseCase(visitRepo, pdfGenerator)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Terrain API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(
		metrics.Registry, promhttp.HandlerOpts{},
	)))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		Resolver:     resolver,
		CreateVisit:  createVisitUC,
		DecideVisit:  decideVisitUC,
		QueryVisits:  queryVisitsUC,
		UserUC:       userUC,
		ActivityUC:   activityUC,
		ClientUC:     clientUC,
		ProductUC:    productUC,
		CompetitorUC: competitorUC,
		DashboardUC:  dashboardUC,
		ReportUC:     reportUC,
		Metrics:      metrics,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
