package main

import (
	"context"
	"database/sql"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"addrlease/internal/adapters/api"
	"addrlease/internal/adapters/api/middleware"
	"addrlease/internal/adapters/db/memory"
	pgrepo "addrlease/internal/adapters/db/postgres"
	"addrlease/internal/application/allocator"
	appipam "addrlease/internal/application/ipam"
	appnetwork "addrlease/internal/application/network"
	"addrlease/internal/config"
	"addrlease/internal/domain/deployment"
	domainipam "addrlease/internal/domain/ipam"
	"addrlease/internal/domain/lease"
)

//	@title			Addrlease Server API
//	@version		1.0
//	@description	IP address leasing API for the deployment orchestrator

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and JWT token.

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configuration
	cfg := config.LoadConfig()

	log.Info().
		Str("http_port", cfg.HTTPPort).
		Bool("auth_enabled", cfg.Auth.Enabled).
		Bool("db_enabled", cfg.Database.Enabled).
		Msg("Starting addrlease server")

	// Initialize repositories (choose Postgres or in-memory)
	var networkRepo deployment.Repository
	var leaseRepo lease.Repository
	var ipamRepo domainipam.Repository

	if cfg.Database.Enabled {
		log.Info().Str("dsn", cfg.Database.DSN).Msg("Initializing Postgres repositories")
		db, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open postgres")
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatal().Err(err).Msg("ping postgres")
		}

		// Advisory locks are only used to serialize migrations; the lease
		// path relies on the ip_addresses unique constraint alone.
		pool, err := pgxpool.New(ctx, cfg.Database.DSN)
		if err != nil {
			log.Fatal().Err(err).Msg("open pgx pool")
		}
		locks := pgrepo.NewLockManager(pool)
		if err := pgrepo.RunMigrations(ctx, db, locks, cfg.Database.Migrations); err != nil {
			log.Fatal().Err(err).Msg("run migrations")
		}

		networkRepo = pgrepo.NewNetworkRepository(db)
		leaseRepo = pgrepo.NewLeaseRepository(db)
		ipamRepo, err = pgrepo.NewIPAMRepository(ctx, db)
		if err != nil {
			log.Fatal().Err(err).Msg("init ipam repository")
		}
	} else {
		log.Warn().Msg("DB disabled - using in-memory repositories")
		networkRepo = memory.NewNetworkRepository()
		leaseRepo = memory.NewLeaseRepository()
		ipamRepo = memory.NewIPAMRepository(context.Background())
	}

	// Initialize services
	networkService := appnetwork.NewService(networkRepo, leaseRepo)
	allocatorService := allocator.NewService(leaseRepo)
	ipamService := appipam.NewService(ipamRepo)

	if !cfg.Auth.Enabled {
		log.Warn().Msg("Authentication disabled - running in open mode")
	}

	// Initialize API handler
	handler := api.NewHandler(networkService, allocatorService, ipamService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Task-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// Register routes with middleware
	authMiddleware := middleware.AuthMiddleware(&cfg.Auth)
	handler.RegisterRoutes(r, authMiddleware)

	// Start server
	log.Info().Msgf("Starting addrlease server on port %s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
