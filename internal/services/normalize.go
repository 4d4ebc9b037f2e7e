// Package services holds the pure pipeline logic: field normalization, leg
// conversion, route reconstruction and assignment validation.
package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Every normalizer in this file is total: malformed or absent input yields a
// nil/empty sentinel, never an error. The converter decides what a missing
// value means for the row.

var dutchWeekdays = map[string]struct{}{
	"ma": {}, "di": {}, "wo": {}, "do": {}, "vr": {}, "za": {}, "zo": {},
}

var dateLayouts = []string{"2-1-2006", "2/1/2006", "2006-01-02", "2-1-06"}

// ParseDutchDate parses a day-first date, tolerating a two-letter Dutch
// weekday prefix ("ma 3-2-2025"). The zero time and false signal an
// unparsable date; callers must then drop the record.
func ParseDutchDate(val string) (time.Time, bool) {
	s := strings.TrimSpace(val)
	if len(s) >= 2 {
		if _, ok := dutchWeekdays[strings.ToLower(s[:2])]; ok {
			s = strings.TrimSpace(s[2:])
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimeOfDay converts "H:M" or "H:M:S" to seconds since local midnight.
func ParseTimeOfDay(val string) *int {
	s := strings.TrimSpace(val)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return nil
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil
		}
		nums[i] = n
	}
	sec := nums[0]*3600 + nums[1]*60
	if len(nums) == 3 {
		sec += nums[2]
	}
	return &sec
}

// ParseKilometers converts a comma-decimal kilometer value to integer
// meters, truncating toward zero after scaling.
func ParseKilometers(val string) *int {
	s := strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	m := int(f * 1000)
	return &m
}

// ParsePercent parses a comma-decimal number, stripping a trailing "%".
func ParsePercent(val string) *float64 {
	s := strings.ReplaceAll(val, ",", ".")
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if s == "" || strings.EqualFold(s, "nan") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

var driverPattern = regexp.MustCompile(`^\s*(\d+)\s*\(([^)]+)\)`)

// SplitDriver parses the vendor's compound driver descriptor, e.g.
// "2 (V-435-BX Ocho)" -> ("2", "V-435-BX", "Ocho"). The first token inside
// the parentheses is the plate; the remaining tokens joined by spaces are
// the bus name. All three results are empty when the pattern does not match.
func SplitDriver(val string) (driverID, plate, bus string) {
	m := driverPattern.FindStringSubmatch(val)
	if m == nil {
		return "", "", ""
	}
	driverID = m[1]
	parts := strings.Fields(m[2])
	if len(parts) > 0 {
		plate = parts[0]
	}
	if len(parts) > 1 {
		bus = strings.Join(parts[1:], " ")
	}
	return driverID, plate, bus
}

// SplitCities splits a "From - To" pair. Anything but exactly two parts
// yields two empty strings.
func SplitCities(val string) (from, to string) {
	if strings.EqualFold(strings.TrimSpace(val), "nan") {
		return "", ""
	}
	parts := strings.Split(val, "-")
	if len(parts) != 2 {
		return "", ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

var (
	whitespace       = regexp.MustCompile(`\s+`)
	postcodeExact    = regexp.MustCompile(`^(\d{4})([A-Z]{2})$`)
	postcodeEmbedded = regexp.MustCompile(`(\d{4})\s*([A-Z]{2})`)
)

// NormalizePostcode reformats a Dutch postcode to "NNNN LL": four digits,
// one space, two uppercase letters. Returns "" when no 4-digit+2-letter
// pattern occurs anywhere in the input.
func NormalizePostcode(pc string) string {
	s := whitespace.ReplaceAllString(strings.ToUpper(pc), "")
	if s == "" {
		return ""
	}
	m := postcodeExact.FindStringSubmatch(s)
	if m == nil {
		m = postcodeEmbedded.FindStringSubmatch(s)
	}
	if m == nil {
		return ""
	}
	return m[1] + " " + m[2]
}

// NormalizeAddress builds the canonical address string
// "street [, postcode], city, NL". A missing city defaults to Amsterdam.
// Blank, "nan" and "none" inputs yield "".
func NormalizeAddress(addr, cityHint, postcodeHint string) string {
	s := strings.TrimSpace(addr)
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return ""
	}
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")

	parts := []string{s}
	if pc := NormalizePostcode(postcodeHint); pc != "" {
		parts = append(parts, pc)
	}
	city := strings.TrimSpace(cityHint)
	if city == "" {
		city = "Amsterdam"
	}
	parts = append(parts, city, "NL")
	return strings.Join(parts, ", ")
}
