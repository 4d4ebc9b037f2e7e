package main

import (
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"fleet-route-service/internal/adapters/repositories"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
)

// buildroutes reconstructs training routes from previously normalized legs.
// With file arguments it reads exactly those; without, it merges every
// legs table (Parquet or CSV) in the matched directory.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	inputs := os.Args[1:]
	if len(inputs) == 0 {
		for _, pattern := range []string{"*.parquet", "*.csv"} {
			matches, err := filepath.Glob(filepath.Join(cfg.Data.MatchedDir, pattern))
			if err != nil {
				log.Fatal(err)
			}
			inputs = append(inputs, matches...)
		}
		sort.Strings(inputs)
	}
	if len(inputs) == 0 {
		log.Fatalf("no normalized legs found in %s", cfg.Data.MatchedDir)
	}

	var legs []domain.Leg
	for _, path := range inputs {
		fileLegs, err := repositories.ReadNormalizedLegs(path)
		if err != nil {
			log.Printf("read legs failed file=%s err=%v", path, err)
			continue
		}
		log.Printf("legs loaded file=%s count=%d", filepath.Base(path), len(fileLegs))
		legs = append(legs, fileLegs...)
	}

	routes := services.BuildRoutes(legs)
	log.Printf("routes built count=%d", len(routes))

	store := repositories.NewJSONRouteStore(cfg.Data.TrainingRoutesPath)
	if err := store.Save(routes); err != nil {
		log.Fatal(err)
	}
	log.Printf("written file=%s", cfg.Data.TrainingRoutesPath)
}
