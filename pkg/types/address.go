package types

import "strings"

// Address is a delivery destination. Coordinates are optional; when absent the
// delivery selector estimates distance locally.
type Address struct {
	Line1      string   `json:"line1"`
	Line2      *string  `json:"line2,omitempty"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Lat        *float64 `json:"lat,omitempty"`
	Lng        *float64 `json:"lng,omitempty"`
}

// Formatted renders the address as a single comma-joined line.
func (a Address) Formatted() string {
	parts := make([]string, 0, 5)
	for _, part := range []string{a.Line1, a.City, a.State, a.PostalCode} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if country := strings.TrimSpace(a.Country); country != "" && country != "US" {
		parts = append(parts, country)
	}
	return strings.Join(parts, ", ")
}

// HasCoordinates reports whether both latitude and longitude are present.
func (a Address) HasCoordinates() bool {
	return a.Lat != nil && a.Lng != nil
}
