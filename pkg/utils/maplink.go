package utils

import (
	"net/url"
	"strings"
)

const mapsSearchBase = "https://www.google.com/maps/search/"

// MapSearchQuery joins the non-empty parts with single spaces.
func MapSearchQuery(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// BuildMapLink returns a Google Maps search URL for "name city country".
func BuildMapLink(name, city, country string) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("query", MapSearchQuery(name, city, country))
	return mapsSearchBase + "?" + q.Encode()
}
