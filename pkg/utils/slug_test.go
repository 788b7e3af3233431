package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"attraction", "Attractions", " ATTRACTIONS "} {
		c, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, CategoryAttractions, c)
	}

	c, err := ParseCategory("activity")
	require.NoError(t, err)
	assert.Equal(t, CategoryActivities, c)

	_, err = ParseCategory("hotels")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestCityTableNaming(t *testing.T) {
	assert.Equal(t, "sidi_bou_said", NormalizeCitySlug(" Sidi-Bou  Said "))
	assert.Equal(t, "sidi-bou-said", CanonicalCitySlug("sidi_bou said"))
	assert.Equal(t, "attractions_sidi_bou_said", CategoryAttractions.CityTable("sidi-bou-said"))
	assert.Equal(t, "restaurants_tunis", CategoryRestaurants.CityTable("Tunis"))
}

func TestCategoryOfTable(t *testing.T) {
	tests := []struct {
		table string
		want  Category
		ok    bool
	}{
		{"attractions", CategoryAttractions, true},
		{"restaurants_tunis", CategoryRestaurants, true},
		{"activities_sidi_bou_said", CategoryActivities, true},
		{"attractions_", "", false},
		{"accounts", "", false},
	}
	for _, tt := range tests {
		got, ok := CategoryOfTable(tt.table)
		assert.Equal(t, tt.ok, ok, tt.table)
		assert.Equal(t, tt.want, got, tt.table)
	}
}

func TestCitySlugFromTable(t *testing.T) {
	assert.Equal(t, "sidi-bou-said", CitySlugFromTable(CategoryAttractions, "attractions_sidi_bou_said"))
	assert.Equal(t, "", CitySlugFromTable(CategoryAttractions, "attractions"))
	assert.Equal(t, "", CitySlugFromTable(CategoryAttractions, "restaurants_tunis"))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sidi-bou-said", Slugify("Sidi Bou Saïd"))
	assert.Equal(t, "el-jem", Slugify("  El Jem!! "))
	assert.Equal(t, "", Slugify("---"))
}
