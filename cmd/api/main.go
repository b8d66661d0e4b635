package main

import (
	"fmt"
	"log"
	"os"

	"grid-balance/internal/api/handlers"
	"grid-balance/internal/api/middleware"
	"grid-balance/internal/config"
	"grid-balance/internal/sim"
	"grid-balance/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	defaults := config.Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		defaults = *loaded
		log.Printf("Loaded defaults from %s", path)
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize engine and handlers
	engine := sim.New()
	simulateHandler := handlers.NewSimulateHandler(engine, defaults)
	faultHandler := handlers.NewFaultHandler(defaults.TurbineCount)
	forecastHandler := handlers.NewForecastHandler(defaults)

	// Live mode: periodic full re-simulation broadcast over WebSocket
	hub := ws.NewHub()
	live := ws.NewLive(hub, engine, defaults)
	wsHandler := ws.NewHandler(hub, live)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/simulate", simulateHandler.Run)
		api.GET("/faults", faultHandler.List)
		api.GET("/forecast", forecastHandler.Get)
	}
	router.GET("/ws", gin.WrapH(wsHandler))

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
