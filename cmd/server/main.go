package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"controle_frete/internal/config"
	"controle_frete/internal/database"
	"controle_frete/internal/handlers"
	"controle_frete/internal/redis"
	"controle_frete/internal/repository"
	"controle_frete/internal/services"
	"controle_frete/pkg/portal"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis (session-verification cache)
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize portal client
	portalClient := portal.NewClient(cfg.PortalURL, cfg.RequestTimeout)

	// Initialize repositories
	freteRepo := repository.NewFreteRepository(db)
	precoRepo := repository.NewPrecoRepository(db)

	// Initialize services
	freteService := services.NewFreteService(freteRepo, time.Now)
	precoService := services.NewPrecoService(precoRepo, time.Now)
	sessionService := services.NewSessionService(portalClient, redisClient, cfg.SessionCacheTTL)

	// Initialize handlers
	freteHandler := handlers.NewFreteHandler(freteService)
	precoHandler := handlers.NewPrecoHandler(precoService)
	healthHandler := handlers.NewHealthHandler(db)

	// Setup routes
	router := gin.Default()

	// Public routes
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	if _, err := os.Stat(cfg.StaticDir); err == nil {
		router.Static("/app", cfg.StaticDir)
	}

	// Authenticated API
	api := router.Group("/api")
	api.Use(handlers.Authenticate(sessionService))
	{
		api.GET("/fretes", freteHandler.List)
		api.GET("/fretes/:id", freteHandler.Get)
		api.POST("/fretes", freteHandler.Create)
		api.PUT("/fretes/:id", freteHandler.Update)
		api.PATCH("/fretes/:id", freteHandler.ToggleStatus)
		api.DELETE("/fretes/:id", freteHandler.Delete)

		api.GET("/precos", precoHandler.List)
		api.POST("/precos", precoHandler.Create)
		api.PUT("/precos/:id", precoHandler.Update)
		api.DELETE("/precos/:id", precoHandler.Delete)
		api.GET("/marcas", precoHandler.Marcas)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "404 - Rota não encontrada",
			"path":  c.Request.URL.Path,
		})
	})

	// Start server
	log.Printf("Controle de Frete API rodando na porta %s", cfg.ServerPort)
	log.Printf("Portal URL: %s", cfg.PortalURL)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
