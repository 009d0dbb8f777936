package main

import (
	"cafeapi/config"
	"cafeapi/database"
	"cafeapi/route"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Release() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in debug mode")
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if cfg.APIKey == "" && cfg.APIKeyHash == "" {
		log.Println("Warning: CAFE_API_KEY is not set, moderator api keys will be rejected")
	}
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET is not set, token login is disabled")
	}

	router := gin.Default()

	// Configure CORS
	origins := append([]string{"http://localhost:3000"}, cfg.AllowedOrigins...)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	log.Println("CORS configured")

	if err := route.CafeRoutes(router, db, cfg); err != nil {
		log.Fatalf("Failed to configure routes: %v", err)
	}
	log.Println("Routes configured successfully")

	log.Printf("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
