package services

import (
	"regexp"
	"strconv"
	"strings"

	"fleet-route-service/internal/domain"
	"fleet-route-service/internal/platform/tabular"
)

// Column aliases of the customer reference table, resolved case-insensitively.
var customerAliases = map[string][]string{
	"fulladdress": {"fulladdress", "adres_vol", "adres_full", "address_full"},
	"address":     {"address", "adres", "straat", "street"},
	"nr":          {"nr", "huisnummer", "number", "no"},
	"postcode":    {"postcode", "zip", "postalcode"},
	"city":        {"city", "stad", "plaats", "town"},
	"lat":         {"latitude", "lat"},
	"lon":         {"longitude", "lon", "lng"},
	"name":        {"name", "account name", "account", "klant", "bedrijf"},
}

var nlSuffix = regexp.MustCompile(`(?i),\s*NL$`)

// BuildCustomerIndex maps canonical address strings to the coordinates known
// for them from a customer reference table. Rows without a resolvable
// address key are skipped; coordinates are comma-decimal tolerant and nil
// when absent or malformed.
func BuildCustomerIndex(tbl *tabular.Table) map[string]domain.Coordinates {
	cols := resolveCustomerColumns(tbl.Columns)

	index := make(map[string]domain.Coordinates)
	for _, rec := range tbl.Records {
		get := func(canonical string) string {
			c, ok := cols[canonical]
			if !ok {
				return ""
			}
			return strings.TrimSpace(tbl.Get(rec, c))
		}

		key := customerAddressKey(get)
		if key == "" {
			continue
		}

		index[key] = domain.Coordinates{
			Lat: parseCustomerCoord(get("lat")),
			Lon: parseCustomerCoord(get("lon")),
		}
	}
	return index
}

// customerAddressKey prefers a full-address column (suffixing ", NL" when
// absent) and otherwise composes street + house number with the usual
// address normalization.
func customerAddressKey(get func(string) string) string {
	if full := get("fulladdress"); full != "" && !strings.EqualFold(full, "nan") {
		addr := strings.Join(strings.Fields(full), " ")
		if !nlSuffix.MatchString(addr) {
			addr += ", NL"
		}
		return addr
	}

	base := get("address")
	if nr := get("nr"); nr != "" {
		base = strings.TrimSpace(base + " " + nr)
	}
	return NormalizeAddress(base, get("city"), get("postcode"))
}

func resolveCustomerColumns(columns []string) map[string]string {
	cols := make(map[string]string)
	for _, c := range columns {
		cl := strings.ToLower(strings.TrimSpace(c))
		for canonical, aliases := range customerAliases {
			if _, taken := cols[canonical]; taken {
				continue
			}
			for _, a := range aliases {
				if cl == a {
					cols[canonical] = c
					break
				}
			}
		}
	}
	return cols
}

func parseCustomerCoord(s string) *float64 {
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return nil
	}
	return &f
}
