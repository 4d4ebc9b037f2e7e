package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"

	"fleet-route-service/internal/adapters/cache"
	"fleet-route-service/internal/adapters/geocode"
	"fleet-route-service/internal/adapters/repositories"
	"fleet-route-service/internal/config"
	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/tabular"
	"fleet-route-service/internal/services"
)

// convert normalizes raw tracking exports into the legs table and its
// report, one artifact pair per input file. Decode and schema failures are
// fatal per file only; the run continues with the remaining files.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal(err)
	}

	files := collectExports(cfg.Data.ExportDirs)
	if len(files) == 0 {
		log.Fatalf("no export csv files found in %v", cfg.Data.ExportDirs)
	}

	resolver := &geocode.Resolver{
		Static:  loadCustomerIndex(cfg.Data.CustomersPath),
		Cache:   cache.NewFileGeocodeCache(cfg.Data.GeocodeCachePath),
		Lookup:  geocode.NewNominatimLookup(http.DefaultClient, cfg.Geocoding.Endpoint, cfg.Geocoding.UserAgent),
		Enabled: cfg.Geocoding.Enabled,
	}

	ctx := context.Background()
	var written []string
	var reports []services.Report

	for _, path := range files {
		rep, outPath, err := convertOne(ctx, path, cfg, resolver)
		if err != nil {
			log.Printf("convert failed file=%s err=%v", filepath.Base(path), err)
			continue
		}
		if outPath != "" {
			written = append(written, outPath)
		}
		reports = append(reports, rep)
	}

	for _, w := range written {
		log.Printf("written file=%s", w)
	}
	for _, r := range reports {
		log.Printf("report file=%s rows=%d range=%s..%s buses=%v missing_coords=%d",
			r.File, r.Rows, r.DateMin, r.DateMax, r.Buses, r.MissingCoords)
	}
}

func convertOne(ctx context.Context, path string, cfg config.Config, resolver *geocode.Resolver) (services.Report, string, error) {
	tbl, err := tabular.ReadFile(path)
	if err != nil {
		return services.Report{}, "", err
	}

	result, err := services.ConvertExport(ctx, tbl, filepath.Base(path), cfg.BusKeywords, resolver)
	if err != nil {
		return services.Report{}, "", err
	}

	// Zero-row conversions still get a report; they just have no table.
	var outPath string
	if len(result.Legs) > 0 {
		outPath, err = repositories.WriteNormalizedLegs(cfg.Data.MatchedDir, result.Report, result.Legs)
		if err != nil {
			return services.Report{}, "", err
		}
	}

	if _, err := repositories.WriteReport(cfg.Data.ReportsDir, result.Report); err != nil {
		return services.Report{}, "", err
	}

	return result.Report, outPath, nil
}

// loadCustomerIndex reads the customer reference table for address-to-
// coordinate lookups. The table is optional; a missing file just means no
// static coordinates.
func loadCustomerIndex(path string) map[string]domain.Coordinates {
	if path == "" {
		return nil
	}

	tbl, err := tabular.ReadReference(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("customers table unavailable file=%s err=%v", path, err)
		}
		return nil
	}

	index := services.BuildCustomerIndex(tbl)
	log.Printf("customers loaded file=%s entries=%d", path, len(index))
	return index
}

func collectExports(dirs []string) []string {
	var files []string
	for _, d := range dirs {
		matches, err := filepath.Glob(filepath.Join(d, "*.csv"))
		if err != nil {
			continue
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}
