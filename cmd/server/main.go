package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym_backend/internal/cache"
	"gym_backend/internal/config"
	"gym_backend/internal/database"
	"gym_backend/internal/middleware"
	"gym_backend/internal/repositories"
	"gym_backend/internal/router"
	"gym_backend/internal/services"
	"gym_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to GYM_CONFIG or ./config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		utils.InitLogger("info", true)
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize Logger
	utils.InitLogger(cfg.App.LogLevel, cfg.IsDev())

	if err := utils.InitSentry(cfg.Sentry.DSN, cfg.App.Env, cfg.App.Version); err != nil {
		utils.LogError(err, "Sentry initialization failed, continuing without error reporting")
	}
	defer utils.FlushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	credentials, err := newCredentialStore(ctx, cfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize credential store")
	}

	var tokens *utils.TokenIssuer
	if cfg.Auth.JWTSecret != "" {
		tokens, err = utils.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize token issuer")
		}
	}

	var clientCache services.ClientListCache
	if cfg.Redis.Addr != "" {
		redisCache, err := cache.NewRedisClientListCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL)
		if err != nil {
			utils.LogError(err, "Redis unavailable, client list cache disabled")
		} else {
			defer redisCache.Close()
			clientCache = redisCache
			utils.LogInfo("Client list cache enabled", map[string]interface{}{"addr": cfg.Redis.Addr})
		}
	}

	if !cfg.IsDev() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(router.NewCORS(cfg.HTTP.CORSOrigins))

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		reg.MustRegister(collectors.NewDBStatsCollector(db, "gym"))
		engine.Use(middleware.NewMetrics(reg).Handler())
		gatherer = reg
	}

	router.Setup(engine, router.Dependencies{
		DB:          db,
		Config:      cfg,
		Clock:       services.NewClock(cfg.Location()),
		Credentials: credentials,
		Tokens:      tokens,
		ClientCache: clientCache,
		Gatherer:    gatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.LogInfo("Server starting", map[string]interface{}{
			"port":     cfg.HTTP.Port,
			"env":      cfg.App.Env,
			"timezone": cfg.App.Timezone,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	utils.LogInfo("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.LogError(err, "Server forced to shutdown")
	}
}

func newCredentialStore(ctx context.Context, cfg *config.Config, db *sql.DB) (services.CredentialStore, error) {
	switch cfg.Auth.Store {
	case "db":
		store := services.NewDBCredentialStore(repositories.NewUserRepository(db), db)
		created, err := store.Bootstrap(ctx, cfg.Auth.Usuario, cfg.Auth.Password)
		if err != nil {
			return nil, err
		}
		if created {
			utils.LogInfo("Initial operator account created", map[string]interface{}{"usuario": cfg.Auth.Usuario})
		}
		return store, nil
	default:
		if cfg.Auth.Password == "" {
			return nil, errors.New("auth.password (GYM_AUTH_PASSWORD) must be set for the static credential store")
		}
		return services.NewStaticCredentialStore(cfg.Auth.Usuario, cfg.Auth.Password)
	}
}
