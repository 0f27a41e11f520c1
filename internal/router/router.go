package router

import (
	"context"
	"database/sql"

	"gym_backend/internal/config"
	"gym_backend/internal/database"
	"gym_backend/internal/handlers"
	"gym_backend/internal/middleware"
	"gym_backend/internal/repositories"
	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the long-lived objects built by main.
type Dependencies struct {
	DB          *sql.DB
	Config      *config.Config
	Clock       services.Clock
	Credentials services.CredentialStore
	Tokens      *utils.TokenIssuer       // nil disables token issuing
	ClientCache services.ClientListCache // nil disables the list cache
	Gatherer    prometheus.Gatherer      // nil disables /metrics
}

// publicPaths never require a bearer token.
var publicPaths = []string{"/login", "/test-db", "/metrics"}

// NewCORS builds the CORS middleware for the configured origins.
func NewCORS(origins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
		corsConfig.AllowCredentials = true
	}
	return cors.New(corsConfig)
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	rules := services.MembershipRules{
		DiasLista:        cfg.Morosos.DiasLista,
		DiasDashboard:    cfg.Morosos.DiasDashboard,
		DiasAnticipacion: cfg.Recordatorios.DiasAnticipacion,
	}

	// Initialize Repositories
	clientRepo := repositories.NewClientRepository(deps.DB)
	paymentRepo := repositories.NewPaymentRepository(deps.DB)
	reportRepo := repositories.NewReportRepository(deps.DB)

	// Initialize Services
	clientService := services.NewClientService(clientRepo, paymentRepo, deps.DB, deps.Clock, rules, deps.ClientCache)
	paymentService := services.NewPaymentService(paymentRepo, deps.DB, deps.Clock)
	reportService := services.NewReportService(reportRepo, clientRepo, deps.Clock, rules)

	var tokens services.TokenGenerator
	if deps.Tokens != nil {
		tokens = deps.Tokens
	}
	authService := services.NewAuthService(deps.Credentials, tokens)

	// Initialize Handlers
	clientHandler := handlers.NewClientHandler(clientService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reportHandler := handlers.NewReportHandler(reportService, deps.Clock)
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(func(ctx context.Context) error {
		return database.Ping(ctx, deps.DB)
	})

	root := engine.Group("")
	if cfg.Auth.RequireToken && deps.Tokens != nil {
		root.Use(middleware.AuthMiddleware(deps.Tokens, publicPaths...))
	}

	SetupAuthRoutes(root, authHandler)
	SetupHealthRoutes(root, healthHandler)
	SetupClientRoutes(root, clientHandler)
	SetupPaymentRoutes(root, paymentHandler)
	SetupReportRoutes(root, reportHandler)

	if deps.Gatherer != nil {
		root.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}
}
