// Package repositories persists pipeline artifacts as flat files.
package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/parquet-go/parquet-go"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/services"
)

// legRecord is the on-disk row shape of the normalized-legs table, shared by
// the Parquet and CSV codecs.
type legRecord struct {
	Date         string   `csv:"date" parquet:"date"`
	RouteID      string   `csv:"route_id" parquet:"route_id"`
	Leg          *int     `csv:"leg" parquet:"leg,optional"`
	StartS       *int     `csv:"start_s" parquet:"start_s,optional"`
	EndS         *int     `csv:"end_s" parquet:"end_s,optional"`
	DurationS    *int     `csv:"duration_s" parquet:"duration_s,optional"`
	DistanceM    *int     `csv:"distance_m" parquet:"distance_m,optional"`
	DeviationPct *float64 `csv:"deviation_pct" parquet:"deviation_pct,optional"`
	FromCity     string   `csv:"from_city" parquet:"from_city"`
	ToCity       string   `csv:"to_city" parquet:"to_city"`
	FromAddress  string   `csv:"from_address" parquet:"from_address"`
	ToAddress    string   `csv:"to_address" parquet:"to_address"`
	FromLat      *float64 `csv:"from_lat" parquet:"from_lat,optional"`
	FromLon      *float64 `csv:"from_lon" parquet:"from_lon,optional"`
	ToLat        *float64 `csv:"to_lat" parquet:"to_lat,optional"`
	ToLon        *float64 `csv:"to_lon" parquet:"to_lon,optional"`
	DriverID     string   `csv:"driver_id" parquet:"driver_id"`
	VehiclePlate string   `csv:"vehicle_plate" parquet:"vehicle_plate"`
	BusName      string   `csv:"bus_name" parquet:"bus_name"`
	Admin        string   `csv:"administration" parquet:"administration"`
	SourceFile   string   `csv:"source_file" parquet:"source_file"`
}

// WriteNormalizedLegs persists a converted export under dir, named after its
// date range. Parquet is preferred; when the Parquet write fails the table
// falls back to CSV. Returns the path actually written.
func WriteNormalizedLegs(dir string, rep services.Report, legs []domain.Leg) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("write legs: %w", err)
	}

	records := make([]legRecord, 0, len(legs))
	for _, l := range legs {
		records = append(records, legRecord{
			Date:         l.DateString(),
			RouteID:      l.RouteID,
			Leg:          l.LegNumber,
			StartS:       l.StartSeconds,
			EndS:         l.EndSeconds,
			DurationS:    l.DurationSeconds,
			DistanceM:    l.DistanceMeters,
			DeviationPct: l.DeviationPct,
			FromCity:     l.FromCity,
			ToCity:       l.ToCity,
			FromAddress:  l.FromAddress,
			ToAddress:    l.ToAddress,
			FromLat:      l.FromCoords.Lat,
			FromLon:      l.FromCoords.Lon,
			ToLat:        l.ToCoords.Lat,
			ToLon:        l.ToCoords.Lon,
			DriverID:     l.DriverID,
			VehiclePlate: l.VehiclePlate,
			BusName:      l.BusName,
			Admin:        l.Administration,
			SourceFile:   l.SourceFile,
		})
	}

	base := fmt.Sprintf("%s_to_%s", rep.DateMin, rep.DateMax)

	parquetPath := filepath.Join(dir, base+".parquet")
	if err := parquet.WriteFile(parquetPath, records); err == nil {
		return parquetPath, nil
	}

	csvPath := filepath.Join(dir, base+".csv")
	data, err := csvutil.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("write legs: marshal csv: %w", err)
	}
	if err := os.WriteFile(csvPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write legs: %w", err)
	}
	return csvPath, nil
}

// WriteReport persists the conversion summary under dir, named after the
// date range (or the source file for zero-row conversions).
func WriteReport(dir string, rep services.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	base := fmt.Sprintf("report_%s_to_%s.json", rep.DateMin, rep.DateMax)
	if rep.Rows == 0 {
		base = fmt.Sprintf("report_%s.json", strings.TrimSuffix(filepath.Base(rep.File), filepath.Ext(rep.File)))
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("write report: marshal: %w", err)
	}

	path := filepath.Join(dir, base)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// csvLegRow is the tolerant read-side shape: everything is text, so tables
// written by other tooling (empty fields, "nan", floats for integers) load
// without erroring.
type csvLegRow struct {
	Date        string `csv:"date"`
	RouteID     string `csv:"route_id"`
	Leg         string `csv:"leg"`
	BusName     string `csv:"bus_name"`
	FromAddress string `csv:"from_address"`
	ToAddress   string `csv:"to_address"`
	DistanceM   string `csv:"distance_m"`
	DurationS   string `csv:"duration_s"`
}

// ReadNormalizedLegs loads the fields route reconstruction needs from a
// normalized-legs table, Parquet or CSV by extension. Rows without a
// parsable date are dropped.
func ReadNormalizedLegs(path string) ([]domain.Leg, error) {
	if filepath.Ext(path) == ".parquet" {
		return readParquetLegs(path)
	}
	return readCSVLegs(path)
}

func readParquetLegs(path string) ([]domain.Leg, error) {
	records, err := parquet.ReadFile[legRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read legs %s: %w", path, err)
	}

	legs := make([]domain.Leg, 0, len(records))
	for _, rec := range records {
		date, err := time.Parse("2006-01-02", rec.Date)
		if err != nil {
			continue
		}
		legs = append(legs, domain.Leg{
			Date:            date,
			RouteID:         rec.RouteID,
			LegNumber:       rec.Leg,
			BusName:         rec.BusName,
			FromAddress:     rec.FromAddress,
			ToAddress:       rec.ToAddress,
			DistanceMeters:  rec.DistanceM,
			DurationSeconds: rec.DurationS,
			SourceFile:      filepath.Base(path),
		})
	}
	return legs, nil
}

func readCSVLegs(path string) ([]domain.Leg, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read legs: %w", err)
	}

	var rows []csvLegRow
	if err := csvutil.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("read legs %s: %w", path, err)
	}

	legs := make([]domain.Leg, 0, len(rows))
	for _, row := range rows {
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row.Date))
		if err != nil {
			continue
		}
		legs = append(legs, domain.Leg{
			Date:            date,
			RouteID:         row.RouteID,
			LegNumber:       looseInt(row.Leg),
			BusName:         row.BusName,
			FromAddress:     row.FromAddress,
			ToAddress:       row.ToAddress,
			DistanceMeters:  looseInt(row.DistanceM),
			DurationSeconds: looseInt(row.DurationS),
			SourceFile:      filepath.Base(path),
		})
	}
	return legs, nil
}

// looseInt parses an integer, tolerating float renderings ("120.0") and
// treating blanks and "nan" as absent.
func looseInt(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}
