package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fleet-route-service/internal/adapters/llm"
	"fleet-route-service/internal/adapters/repositories"
	"fleet-route-service/internal/api"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/services"
)

// main is the application composition root. It wires the training-route
// store and the assignment collaborator behind ports and starts the HTTP
// server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	// The collaborator credential is checked per request, so a missing key
	// surfaces on /optimize-route while /health keeps serving.
	proposer := llm.NewOpenAIProposer(os.Getenv("OPENAI_API_KEY"), cfg.Assignment.Model)
	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("OPENAI_API_KEY not set; /optimize-route will fail until configured")
	}

	store := repositories.NewJSONRouteStore(cfg.Data.TrainingRoutesPath)

	optimizer := &services.Optimizer{
		Store:       store,
		Proposer:    proposer,
		PrimaryBus:  cfg.Assignment.PrimaryBus,
		SampleLimit: cfg.Assignment.SampleLimit,
		MaxExamples: cfg.Assignment.MaxExamples,
	}

	router := api.NewRouter(optimizer)

	port := config.Get("PORT", cfg.Server.Port)

	// The write timeout covers a full collaborator round trip.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
