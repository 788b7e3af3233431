package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Category string

const (
	CategoryAttractions Category = "attractions"
	CategoryRestaurants Category = "restaurants"
	CategoryActivities  Category = "activities"
)

var Categories = []Category{CategoryAttractions, CategoryRestaurants, CategoryActivities}

// ParseCategory accepts singular or plural names in any case.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attraction", "attractions":
		return CategoryAttractions, nil
	case "restaurant", "restaurants":
		return CategoryRestaurants, nil
	case "activity", "activities":
		return CategoryActivities, nil
	}
	return "", ErrInvalidCategory
}

// Table is the canonical table name for the category.
func (c Category) Table() string { return string(c) }

// TablePrefix is the naming convention shared by the per-city tables.
func (c Category) TablePrefix() string { return string(c) + "_" }

func (c Category) CityTable(citySlug string) string {
	return c.TablePrefix() + NormalizeCitySlug(citySlug)
}

// IsCityTable reports whether table follows the {category}_{city} convention.
func (c Category) IsCityTable(table string) bool {
	return strings.HasPrefix(table, c.TablePrefix()) && len(table) > len(c.TablePrefix())
}

// CategoryOfTable finds the category owning a canonical or per-city table.
func CategoryOfTable(table string) (Category, bool) {
	for _, c := range Categories {
		if table == c.Table() || c.IsCityTable(table) {
			return c, true
		}
	}
	return "", false
}

var slugSeparators = regexp.MustCompile(`[\s\-]+`)

// NormalizeCitySlug turns "Sidi-Bou Said" into "sidi_bou_said", the suffix used by per-city tables.
func NormalizeCitySlug(slug string) string {
	s := strings.ToLower(strings.TrimSpace(slug))
	return slugSeparators.ReplaceAllString(s, "_")
}

// CanonicalCitySlug is the URL form stored in city_slug columns ("Sidi Bou Said" -> "sidi-bou-said").
func CanonicalCitySlug(slug string) string {
	return strings.ReplaceAll(NormalizeCitySlug(slug), "_", "-")
}

// CitySlugFromTable recovers the URL slug from a per-city table name.
func CitySlugFromTable(c Category, table string) string {
	if !c.IsCityTable(table) {
		return ""
	}
	return strings.ReplaceAll(strings.TrimPrefix(table, c.TablePrefix()), "_", "-")
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

func Slugify(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = name
	}
	s = nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return strings.Trim(s, "-")
}
