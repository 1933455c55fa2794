package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"carteira/internal/config"
	"carteira/internal/database"
	"carteira/internal/fetcher"
	"carteira/internal/handlers"
	"carteira/internal/logger"
	"carteira/internal/marketdata"
	"carteira/internal/middleware"
	"carteira/internal/refresh"
	"carteira/internal/selection"
	"carteira/internal/validator"

	_ "carteira/internal/docs" // Import swagger docs
)

// @title           Carteira Market Data API
// @version         1.0
// @description     Carteira aggregates live market data for a personal finance dashboard: quote resolution, curated instrument selections, and orchestrated refresh cycles.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Shared key protecting the aggregation endpoint. Leave AGGREGATOR_API_KEY empty to disable.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Load the persisted selection state and build the store
	repo := selection.NewRepository(dbManager.DB())
	initial, err := repo.Load(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load selection state: %w", err)
	}
	store := selection.NewStore(initial, repo, log)

	// Aggregation: in-process against the quote provider, or delegated
	// to a remote aggregation endpoint when AGGREGATOR_URL is set.
	quoteFetcher := fetcher.New(&http.Client{}, appConfig.QuoteBaseURL, appConfig.FetchTimeout, log)
	service := marketdata.NewService(quoteFetcher, log)

	var aggregator refresh.Aggregator = service
	if appConfig.AggregatorURL != "" {
		log.Infof("Using remote aggregation endpoint at %s", appConfig.AggregatorURL)
		aggregator = marketdata.NewClient(appConfig.AggregatorURL, appConfig.AggregatorAPIKey, &http.Client{})
	}

	cache := marketdata.NewCache()
	orchestrator := refresh.New(store, aggregator, cache,
		appConfig.RefreshInterval, appConfig.BatchTimeout, log)

	// Initialize handlers
	selectionHandler := handlers.NewSelectionHandler(store)
	marketHandler := handlers.NewMarketHandler(orchestrator, cache, service)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Selection routes
	selections := v1.Group("/selections")
	selections.GET("", selectionHandler.GetState)
	selections.PUT("/:category", selectionHandler.SetCategory)
	selections.POST("/:category/symbols", selectionHandler.AddSymbol)
	selections.DELETE("/:category/symbols/:symbol", selectionHandler.RemoveSymbol)
	selections.POST("/indices", selectionHandler.AddCustomIndex)
	selections.PUT("/indices/:symbol", selectionHandler.UpdateCustomIndex)
	selections.DELETE("/indices/:symbol", selectionHandler.RemoveCustomIndex)
	selections.POST("/manual-assets", selectionHandler.AddManualAsset)
	selections.DELETE("/manual-assets/:symbol", selectionHandler.RemoveManualAsset)

	// Market data routes
	market := v1.Group("/market")
	market.GET("/snapshot", marketHandler.GetSnapshot)
	market.POST("/refresh", marketHandler.Refresh)
	market.POST("/activate", marketHandler.Activate)
	market.POST("/deactivate", marketHandler.Deactivate)
	market.POST("/aggregate", middleware.AggregateAuth(appConfig.AggregatorAPIKey), marketHandler.Aggregate)

	log.Infof("Starting Carteira backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
