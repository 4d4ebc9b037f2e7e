package services

import (
	"testing"
	"time"
)

func TestParseDutchDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"plain day first", "18-3-2025", "2025-03-18", true},
		{"padded", "03-11-2024", "2024-11-03", true},
		{"weekday prefix", "ma 17-3-2025", "2025-03-17", true},
		{"uppercase weekday", "DI 18-3-2025", "2025-03-18", true},
		{"iso", "2025-03-18", "2025-03-18", true},
		{"slashes", "18/3/2025", "2025-03-18", true},
		{"garbage", "geen datum", "", false},
		{"empty", "", "", false},
		{"weekday only", "ma", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDutchDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.Format("2006-01-02") != tt.want {
				t.Errorf("got %s, want %s", got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{"8:30", intp(8*3600 + 30*60)},
		{"08:30:15", intp(8*3600 + 30*60 + 15)},
		{"0:00", intp(0)},
		{"nan", nil},
		{"", nil},
		{"8", nil},
		{"8:30:15:00", nil},
		{"8:xx", nil},
	}

	for _, tt := range tests {
		got := ParseTimeOfDay(tt.input)
		if !eqIntp(got, tt.want) {
			t.Errorf("ParseTimeOfDay(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseKilometers(t *testing.T) {
	tests := []struct {
		input string
		want  *int
	}{
		{"12,5", intp(12500)},
		{"0,4", intp(400)},
		{"3", intp(3000)},
		// Truncation, not rounding.
		{"1,2345", intp(1234)},
		{"nan", nil},
		{"", nil},
		{"abc", nil},
	}

	for _, tt := range tests {
		got := ParseKilometers(tt.input)
		if !eqIntp(got, tt.want) {
			t.Errorf("ParseKilometers(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParsePercent(t *testing.T) {
	if got := ParsePercent("12,5%"); got == nil || *got != 12.5 {
		t.Errorf("got %v, want 12.5", got)
	}
	if got := ParsePercent("-3,1"); got == nil || *got != -3.1 {
		t.Errorf("got %v, want -3.1", got)
	}
	if got := ParsePercent("nan"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestSplitDriver(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		driver string
		plate  string
		bus    string
	}{
		{"full descriptor", "2 (V-435-BX Ocho)", "2", "V-435-BX", "Ocho"},
		{"multi word bus", "14 (X-001-Y De Rode Rebel)", "14", "X-001-Y", "De Rode Rebel"},
		{"plate only", "7 (V-435-BX)", "7", "V-435-BX", ""},
		{"no match", "Jan Jansen", "", "", ""},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver, plate, bus := SplitDriver(tt.input)
			if driver != tt.driver || plate != tt.plate || bus != tt.bus {
				t.Errorf("got (%q, %q, %q), want (%q, %q, %q)",
					driver, plate, bus, tt.driver, tt.plate, tt.bus)
			}
		})
	}
}

func TestSplitCities(t *testing.T) {
	from, to := SplitCities("Amsterdam - Utrecht")
	if from != "Amsterdam" || to != "Utrecht" {
		t.Errorf("got (%q, %q)", from, to)
	}

	// A hyphenated city name yields three parts and therefore nothing.
	from, to = SplitCities("Etten-Leur - Breda")
	if from != "" || to != "" {
		t.Errorf("got (%q, %q), want empty pair", from, to)
	}

	from, to = SplitCities("Amsterdam")
	if from != "" || to != "" {
		t.Errorf("got (%q, %q), want empty pair", from, to)
	}
}

func TestNormalizePostcode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1234AB", "1234 AB"},
		{"1234 ab", "1234 AB"},
		{" 1234  aB ", "1234 AB"},
		{"NL-1234AB", "1234 AB"},
		{"Keizersgracht 1015CJ Amsterdam", "1015 CJ"},
		{"1234", ""},
		{"AB1234", ""},
		{"", ""},
		// Embedded search latches onto the last four digits.
		{"12345AB", "2345 AB"},
	}

	for _, tt := range tests {
		if got := NormalizePostcode(tt.input); got != tt.want {
			t.Errorf("NormalizePostcode(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name     string
		addr     string
		city     string
		postcode string
		want     string
	}{
		{"city default", "Keizersgracht 516", "", "", "Keizersgracht 516, Amsterdam, NL"},
		{"explicit city", "Willemstraat 9", "Utrecht", "", "Willemstraat 9, Utrecht, NL"},
		{"with postcode", "Bilderdijkstraat 99", "Amsterdam", "1053kv", "Bilderdijkstraat 99, 1053 KV, Amsterdam, NL"},
		{"collapses whitespace", "Keizersgracht\n 516", "", "", "Keizersgracht 516, Amsterdam, NL"},
		{"nan", "nan", "Amsterdam", "", ""},
		{"none", "None", "", "", ""},
		{"blank", "   ", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeAddress(tt.addr, tt.city, tt.postcode); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func intp(n int) *int { return &n }

func eqIntp(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}
