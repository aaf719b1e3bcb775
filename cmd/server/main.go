package main

import (
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"addrlease/internal/adapters/api"
	"addrlease/internal/adapters/api/middleware"
	"addrlease/internal/adapters/db/memory"
	"addrlease/internal/application/allocator"
	"addrlease/internal/application/ipam"
	"addrlease/internal/application/network"
	"addrlease/internal/config"
)

//	@title			Addrlease Server API
//	@version		1.0
//	@description	IP address leasing API for the deployment orchestrator

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:8080
//	@BasePath	/api/v1

// Development server: everything in memory, no auth, no database.
func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.LoadConfig()

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = cfg.HTTPPort
		if port == "" {
			port = "8080"
		}
	}

	// Initialize in-memory repositories
	networkRepo := memory.NewNetworkRepository()
	leaseRepo := memory.NewLeaseRepository()
	ipamRepo := memory.NewIPAMRepository(context.Background())

	// Initialize services
	networkService := network.NewService(networkRepo, leaseRepo)
	allocatorService := allocator.NewService(leaseRepo)
	ipamService := ipam.NewService(ipamRepo)

	// Initialize API handler
	handler := api.NewHandler(networkService, allocatorService, ipamService)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Task-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	// No auth in the dev server
	devAuth := config.AuthConfig{Enabled: false}
	handler.RegisterRoutes(r, middleware.AuthMiddleware(&devAuth))

	log.Info().Msgf("Starting addrlease dev server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
