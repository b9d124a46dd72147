package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"tripplanner/config"
	"tripplanner/database"
	"tripplanner/handlers"
	"tripplanner/services"
)

func main() {
	// Load .env file (ignored in production where env vars are set directly)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found — using environment variables")
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	store := database.NewStore(db)

	// Provider adapters
	weather := services.NewWeatherService()
	hotels := services.NewHotelService()
	places := services.NewPlacesService(cfg.Places, nil)
	flights := services.NewFlightClient(cfg.Amadeus, nil)
	if cfg.Amadeus.ClientID == "" || cfg.Amadeus.ClientSecret == "" {
		log.Println("⚠️  AMADEUS_CLIENT_ID or AMADEUS_CLIENT_SECRET not set — flight search will use fallback data")
	}

	enricher := services.NewEnricher(store, weather, hotels, places)
	h := handlers.New(store, enricher, flights, places, db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.SetTrustedProxies([]string{"0.0.0.0/0"})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterRoutes(r, h)

	log.Printf("🚀 Trip Planner backend starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
