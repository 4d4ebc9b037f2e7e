package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jszwec/csvutil"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/obs"
	"fleet-route-service/internal/platform/tabular"
	"fleet-route-service/internal/ports"
)

// SchemaError reports that a raw export is missing required columns. It is
// fatal for the file; the pipeline logs it and continues with the rest.
type SchemaError struct {
	File    string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing columns: %s", e.File, strings.Join(e.Missing, ", "))
}

// requiredColumns is the fixed header set of a FleetGO tracking export.
var requiredColumns = []string{
	"Datum", "Rit", "Start", "Eind", "Duur", "Totale afstand (km)",
	"Afwijking (%)", "Van/naar", "Vertrekadres", "Vertreklocatie",
	"Bezoekadres", "Bezoeklocatie", "Bestuurder", "Administratie",
}

type exportRow struct {
	Datum          string `csv:"Datum"`
	Rit            string `csv:"Rit"`
	Start          string `csv:"Start"`
	Eind           string `csv:"Eind"`
	Duur           string `csv:"Duur"`
	AfstandKM      string `csv:"Totale afstand (km)"`
	AfwijkingPct   string `csv:"Afwijking (%)"`
	VanNaar        string `csv:"Van/naar"`
	Vertrekadres   string `csv:"Vertrekadres"`
	Vertreklocatie string `csv:"Vertreklocatie"`
	Bezoekadres    string `csv:"Bezoekadres"`
	Bezoeklocatie  string `csv:"Bezoeklocatie"`
	Bestuurder     string `csv:"Bestuurder"`
	Administratie  string `csv:"Administratie"`
}

// Report is the per-file conversion summary persisted next to the
// normalized legs. Zero-row conversions still produce a report.
type Report struct {
	File          string   `json:"file"`
	Rows          int      `json:"rows"`
	DateMin       string   `json:"date_min,omitempty"`
	DateMax       string   `json:"date_max,omitempty"`
	Buses         []string `json:"buses,omitempty"`
	MissingCoords int      `json:"missing_coords"`
}

// ConvertResult carries the normalized legs of one export plus its report.
type ConvertResult struct {
	Legs   []domain.Leg
	Report Report
}

// ConvertExport turns one raw tracking export into canonical legs.
//
// Rows whose date fails to parse are skipped entirely. A missing bus name is
// inferred from the source filename by case-insensitive keyword match.
// Output legs are sorted by (date, bus_name, leg) with missing values last.
func ConvertExport(
	ctx context.Context,
	tbl *tabular.Table,
	sourceFile string,
	busKeywords map[string]string,
	resolver ports.CoordinateResolver,
) (_ *ConvertResult, err error) {
	defer obs.Time(obs.WithSource(ctx, sourceFile), "convert.export")(&err)

	var missing []string
	for _, c := range requiredColumns {
		if !tbl.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{File: sourceFile, Missing: missing}
	}

	dec, err := csvutil.NewDecoder(tbl.Reader())
	if err != nil {
		return nil, fmt.Errorf("convert %s: create decoder: %w", sourceFile, err)
	}
	var rows []exportRow
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("convert %s: decode rows: %w", sourceFile, err)
	}

	legs := make([]domain.Leg, 0, len(rows))
	for _, row := range rows {
		date, ok := ParseDutchDate(row.Datum)
		if !ok {
			continue
		}

		var legNum *int
		if n, err := strconv.Atoi(strings.TrimSpace(row.Rit)); err == nil {
			legNum = &n
		}

		fromCity, toCity := SplitCities(row.VanNaar)
		fromAddr := NormalizeAddress(row.Vertrekadres, fromCity, "")
		toAddr := NormalizeAddress(row.Bezoekadres, toCity, "")

		driverID, plate, bus := SplitDriver(row.Bestuurder)
		if bus == "" {
			bus = inferBusFromFilename(sourceFile, busKeywords)
		}

		legs = append(legs, domain.Leg{
			Date:            date,
			RouteID:         domain.RouteIDFor(date, bus),
			LegNumber:       legNum,
			StartSeconds:    ParseTimeOfDay(row.Start),
			EndSeconds:      ParseTimeOfDay(row.Eind),
			DurationSeconds: ParseTimeOfDay(row.Duur),
			DistanceMeters:  ParseKilometers(row.AfstandKM),
			DeviationPct:    ParsePercent(row.AfwijkingPct),
			FromCity:        fromCity,
			ToCity:          toCity,
			FromAddress:     fromAddr,
			ToAddress:       toAddr,
			FromCoords:      resolver.Resolve(ctx, fromAddr),
			ToCoords:        resolver.Resolve(ctx, toAddr),
			DriverID:        driverID,
			VehiclePlate:    plate,
			BusName:         bus,
			Administration:  strings.TrimSpace(row.Administratie),
			SourceFile:      sourceFile,
		})
	}

	if len(legs) == 0 {
		return &ConvertResult{Report: Report{File: sourceFile, Rows: 0}}, nil
	}

	sortLegs(legs)

	rep := Report{
		File:    sourceFile,
		Rows:    len(legs),
		DateMin: legs[0].DateString(),
		DateMax: legs[0].DateString(),
	}
	buses := map[string]struct{}{}
	for _, l := range legs {
		d := l.DateString()
		if d < rep.DateMin {
			rep.DateMin = d
		}
		if d > rep.DateMax {
			rep.DateMax = d
		}
		if l.BusName != "" {
			buses[l.BusName] = struct{}{}
		}
		if !l.FromCoords.Resolved() || !l.ToCoords.Resolved() {
			rep.MissingCoords++
		}
	}
	rep.Buses = sortedKeys(buses)

	return &ConvertResult{Legs: legs, Report: rep}, nil
}

// sortLegs orders by (date, bus_name, leg number) with missing bus names and
// leg numbers sorted after everything else.
func sortLegs(legs []domain.Leg) {
	sort.SliceStable(legs, func(i, j int) bool {
		a, b := legs[i], legs[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.BusName != b.BusName {
			if a.BusName == "" {
				return false
			}
			if b.BusName == "" {
				return true
			}
			return a.BusName < b.BusName
		}
		if a.LegNumber == nil {
			return false
		}
		if b.LegNumber == nil {
			return true
		}
		return *a.LegNumber < *b.LegNumber
	})
}

func inferBusFromFilename(name string, keywords map[string]string) string {
	lower := strings.ToLower(name)
	kws := make([]string, 0, len(keywords))
	for k := range keywords {
		kws = append(kws, k)
	}
	sort.Strings(kws)
	for _, kw := range kws {
		if strings.Contains(lower, kw) {
			return keywords[kw]
		}
	}
	return ""
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
