package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"tunitour/internal/models/db_models"
	"tunitour/internal/models/response_models"
	"tunitour/internal/repositories"
	"tunitour/pkg/utils"
)

// Columns with a dedicated ContentItem field; everything else goes to Attributes.
var knownContentColumns = map[string]bool{
	"id": true, "name": true, "title": true, "description": true,
	"city_slug": true, "city": true, "city_name": true,
	"google_map_link": true, "image_url": true, "image": true,
	"attributes": true, "deleted_at": true,
}

func contentFromModel(category utils.Category, c db_models.Content) response_models.ContentItem {
	return response_models.ContentItem{
		ID:            c.ID.String(),
		Category:      string(category),
		Name:          c.Name,
		Description:   c.Description,
		CitySlug:      c.CitySlug,
		CityName:      c.CityName,
		GoogleMapLink: c.GoogleMapLink,
		ImageURL:      c.ImageURL,
		SourceTable:   category.Table(),
		Attributes:    decodeAttributes(c.Attributes),
	}
}

func contentFromRow(category utils.Category, table string, row repositories.Row) response_models.ContentItem {
	item := response_models.ContentItem{
		ID:            cellString(row["id"]),
		Category:      string(category),
		Name:          firstNonEmpty(cellString(row["name"]), cellString(row["title"])),
		Description:   cellString(row["description"]),
		CitySlug:      cellString(row["city_slug"]),
		CityName:      firstNonEmpty(cellString(row["city_name"]), cellString(row["city"])),
		GoogleMapLink: cellString(row["google_map_link"]),
		ImageURL:      firstNonEmpty(cellString(row["image_url"]), cellString(row["image"])),
		SourceTable:   table,
	}
	if item.CitySlug == "" {
		item.CitySlug = utils.CitySlugFromTable(category, table)
	}

	for k, v := range row {
		if knownContentColumns[k] || v == nil {
			continue
		}
		if item.Attributes == nil {
			item.Attributes = map[string]interface{}{}
		}
		item.Attributes[k] = v
	}
	return item
}

func decodeAttributes(raw datatypes.JSON) map[string]interface{} {
	if len(raw) == 0 {
		return nil
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil || len(out) == 0 {
		return nil
	}
	return out
}

func encodeAttributes(attrs map[string]interface{}) (datatypes.JSON, error) {
	if len(attrs) == 0 {
		return datatypes.JSON("{}"), nil
	}
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// cellString renders a scanned column value as text.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case [16]byte:
		return uuid.UUID(x).String()
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// cityLabel turns "sidi-bou-said" into "sidi bou said" for search strings.
func cityLabel(slug string) string {
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
}

func urlCitySlug(slug string) string {
	return utils.CanonicalCitySlug(slug)
}
