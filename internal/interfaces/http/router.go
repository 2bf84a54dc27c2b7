package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sourcedupays/terrain-api/internal/application/analytics"
	"github.com/sourcedupays/terrain-api/internal/application/auth"
	"github.com/sourcedupays/terrain-api/internal/application/export"
	"github.com/sourcedupays/terrain-api/internal/application/identity"
	"github.com/sourcedupays/terrain-api/internal/application/usecase"
	"github.com/sourcedupays/terrain-api/internal/application/visit"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
	"github.com/sourcedupays/terrain-api/pkg/observability"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	Resolver     *identity.Resolver
	CreateVisit  *visit.CreateVisitUseCase
	DecideVisit  *visit.DecideVisitUseCase
	QueryVisits  *visit.QueryVisitsUseCase
	UserUC       *usecase.UserUseCase
	ActivityUC   *usecase.ActivityUseCase
	ClientUC     *usecase.ClientUseCase
	ProductUC    *usecase.ProductUseCase
	CompetitorUC *usecase.CompetitorUseCase
	DashboardUC  *analytics.DashboardUseCase
	ReportUC     *export.ReportUseCase
	Metrics      *observability.Metrics
	JWTSecret    string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public, limité en débit)
	authGroup := api.Group("/auth", limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	}))
	authHandler := NewAuthHandler(deps.AuthUC, deps.Metrics)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées : token valide + acteur résolu à chaque requête
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), ActorMiddleware(deps.Resolver))

	// Identité du compte connecté
	protected.Get("/me", authHandler.Me)

	// Visites (protégé ; l'autorisation fine est dans les cas d'usage)
	visits := protected.Group("/visites")
	visitHandler := NewVisitHandler(deps.CreateVisit, deps.DecideVisit, deps.QueryVisits, deps.Metrics)
	visits.Post("/", visitHandler.Create)
	visits.Get("/en-attente", visitHandler.ListPending)
	visits.Get("/validees", visitHandler.ListValidated)
	visits.Get("/historique", visitHandler.ListHistory)
	visits.Get("/mes-visites", visitHandler.ListMine)
	visits.Get("/:id", visitHandler.GetByID)
	visits.Put("/:id/decision", visitHandler.Decide)

	// Données de référence (protégé ; mutation admin dans les cas d'usage)
	refHandler := NewReferenceHandler(deps.ClientUC, deps.ProductUC, deps.CompetitorUC)
	clients := protected.Group("/clients")
	clients.Post("/", refHandler.CreateClient)
	clients.Get("/", refHandler.ListClients)
	clients.Put("/:id", refHandler.UpdateClient)
	clients.Delete("/:id", refHandler.DeleteClient)

	products := protected.Group("/produits")
	products.Post("/", refHandler.CreateProduct)
	products.Get("/", refHandler.ListProducts)
	products.Put("/:id", refHandler.UpdateProduct)
	products.Delete("/:id", refHandler.DeleteProduct)

	categories := protected.Group("/categories")
	categories.Post("/", refHandler.CreateCategory)
	categories.Get("/", refHandler.ListCategories)

	competitors := protected.Group("/concurrents")
	competitors.Post("/", refHandler.CreateCompetitor)
	competitors.Get("/", refHandler.ListCompetitors)

	// Tableau de bord par rôle (protégé)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Get)

	// Exports (protégé ; merchandisers refusés par les cas d'usage)
	exportHandler := NewExportHandler(deps.ReportUC)
	exports := protected.Group("/exports")
	exports.Get("/visites.csv", exportHandler.CSV)
	exports.Get("/visites.pdf", exportHandler.PDF)

	// Administration (protégé, filtre de rôle + contrôles fins)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdministrateur))
	userHandler := NewUserHandler(deps.UserUC, deps.ActivityUC)
	admin.Post("/utilisateurs", userHandler.Create)
	admin.Get("/utilisateurs", userHandler.List)
	admin.Put("/utilisateurs/:id", userHandler.Update)
	admin.Delete("/utilisateurs/:id", userHandler.Delete)
	admin.Get("/superviseurs", userHandler.ListSupervisors)
	admin.Get("/roles", userHandler.Roles)
	admin.Get("/journal", userHandler.Activity)
}
