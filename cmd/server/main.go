package main

import (
	"log"
	"net/http"

	"fx_agenda_backend/internal/config"
	"fx_agenda_backend/internal/database"
	router_pkg "fx_agenda_backend/internal/router"
	"fx_agenda_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// Open the single-file store. Failure here is fatal: nothing works
	// without the database.
	store, err := database.Open(cfg.DBPath)
	if err != nil {
		utils.LogError(err, "Failed to open store")
		log.Fatalf("Failed to open store at %s: %v", cfg.DBPath, err)
	}
	defer store.Close()

	// Schema ensure runs on every start; column drift is logged, never fatal.
	if err := store.EnsureSchema(); err != nil {
		utils.LogError(err, "Failed to ensure schema")
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	utils.LogInfo("Store initialized", map[string]interface{}{"db_path": cfg.DBPath})

	engine := gin.Default()

	// Add GinLogger middleware for request logging
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	router_pkg.Setup(engine, store)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Port})
	if err := engine.Run(":" + cfg.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
