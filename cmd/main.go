package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/logger"

	"github.com/ihlicid/rondo-mundi/internal/handlers"
	"github.com/ihlicid/rondo-mundi/internal/services"
)

func main() {
	// 1. Initialize logging
	defer logger.Init("rondo-mundi", true, false, os.Stderr).Close()

	// 2. Initialize the Lottery Registry
	registry := services.NewLotteryRegistry()

	// 3. Initialize the HTTP Handler
	httpHandler := handlers.NewHTTPHandler(registry)

	// 4. Set up the Gin router with permissive CORS for browser clients
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"*"},
	}))

	// 5. Register routes
	httpHandler.RegisterRoutes(r)

	// 6. Run the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting Rondo Mundi backend on 0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
