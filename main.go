package main

import (
	"log"

	"exam-seating-go/config"
	"exam-seating-go/db"
	"exam-seating-go/handlers"
)

func main() {
	cfg := config.Load()

	// Initialize Redis Client
	redisClient, err := db.InitializeRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer redisClient.Close()

	// Create Redis Service
	redisService := db.NewRedisService(redisClient)

	// Create API Handler (injecting the service)
	apiHandler := handlers.NewAPIHandler(redisService, cfg)

	router := handlers.SetupRouter(apiHandler)

	port := ":" + cfg.Port
	log.Printf("Starting seating server on port %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
