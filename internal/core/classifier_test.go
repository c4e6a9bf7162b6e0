package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"landuse_service/internal/domain/model"
)

func TestClassify(t *testing.T) {
	var c ZoneClassifier

	tests := []struct {
		name  string
		attrs map[string]string
		want  model.Category
	}{
		{"nil attrs", nil, model.CategoryUnclassified},
		{"empty attrs", map[string]string{}, model.CategoryUnclassified},
		{"explicit english", map[string]string{"category": "residential"}, model.CategoryResidential},
		{"explicit mixed case", map[string]string{"category": "Industrial"}, model.CategoryIndustrial},
		{"explicit padded", map[string]string{"category": "  commercial  "}, model.CategoryCommercial},
		{"zone_type key", map[string]string{"zone_type": "vacant"}, model.CategoryVacant},
		{"russian pzz name", map[string]string{"zone_type": "Жилая зона"}, model.CategoryResidential},
		{"russian industrial", map[string]string{"category": "производственная зона"}, model.CategoryIndustrial},
		{"russian recreation", map[string]string{"zone_type": "рекреационная зона"}, model.CategoryRecreational},
		{"landuse residential", map[string]string{"landuse": "residential"}, model.CategoryResidential},
		{"landuse garages", map[string]string{"landuse": "garages"}, model.CategoryResidential},
		{"landuse farmland", map[string]string{"landuse": "farmland"}, model.CategoryAgriculture},
		{"landuse cemetery", map[string]string{"landuse": "cemetery"}, model.CategorySpecial},
		{"landuse brownfield", map[string]string{"landuse": "brownfield"}, model.CategoryVacant},
		{"landuse unknown", map[string]string{"landuse": "winter_sports"}, model.CategoryUnclassified},
		{"natural fallback", map[string]string{"natural": "wood"}, model.CategoryRecreational},
		{"explicit beats landuse", map[string]string{"category": "transport", "landuse": "residential"}, model.CategoryTransport},
		{"landuse beats natural", map[string]string{"landuse": "industrial", "natural": "wood"}, model.CategoryIndustrial},
		{"unknown attrs", map[string]string{"building": "yes"}, model.CategoryUnclassified},
		{"unknown explicit falls through", map[string]string{"category": "что-то", "landuse": "retail"}, model.CategoryCommercial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.attrs))
		})
	}
}

func TestClassifyTotal(t *testing.T) {
	// Любой вход даёт ровно одну из известных категорий
	var c ZoneClassifier
	known := make(map[model.Category]bool)
	for _, cat := range model.Categories() {
		known[cat] = true
	}

	inputs := []map[string]string{
		nil,
		{"category": ""},
		{"landuse": "!!!"},
		{"natural": "water"},
		{"category": "ЗОНА ЗАСТРОЙКИ ЖИЛЫМИ ДОМАМИ"},
	}
	for _, attrs := range inputs {
		assert.True(t, known[c.Classify(attrs)])
	}
}

func TestClassifyZonesIdempotent(t *testing.T) {
	var c ZoneClassifier
	zones := []model.LandUseZone{
		{ID: 1, Attributes: map[string]string{"landuse": "residential"}},
		{ID: 2, Attributes: map[string]string{"natural": "wood"}},
		{ID: 3, Attributes: nil},
	}

	first := c.ClassifyZones(zones)
	second := c.ClassifyZones(first)

	assert.Equal(t, model.CategoryResidential, second[0].Category)
	assert.Equal(t, model.CategoryRecreational, second[1].Category)
	assert.Equal(t, model.CategoryUnclassified, second[2].Category)
	for i := range first {
		assert.Equal(t, first[i].Category, second[i].Category)
	}
}

func TestCondition(t *testing.T) {
	var c ZoneClassifier

	tests := []struct {
		name  string
		attrs map[string]string
		want  float64
	}{
		{"explicit condition", map[string]string{"condition": "0.8"}, 0.8},
		{"condition clamped high", map[string]string{"condition": "1.7"}, 1},
		{"condition clamped low", map[string]string{"condition": "-0.3"}, 0},
		{"wear inverted", map[string]string{"wear": "0.3"}, 0.7},
		{"wear full", map[string]string{"wear": "1"}, 0},
		{"condition wins over wear", map[string]string{"condition": "0.9", "wear": "0.9"}, 0.9},
		{"garbage ignored", map[string]string{"condition": "good"}, 0.5},
		{"absent", map[string]string{}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, c.Condition(tt.attrs), 1e-9)
		})
	}
}

func TestStoreys(t *testing.T) {
	var c ZoneClassifier

	assert.Equal(t, 5, c.Storeys(map[string]string{"building:levels": "5"}))
	assert.Equal(t, 9, c.Storeys(map[string]string{"storeys": " 9 "}))
	assert.Equal(t, 3, c.Storeys(map[string]string{"building:levels": "3", "storeys": "12"}))
	assert.Equal(t, 0, c.Storeys(map[string]string{"building:levels": "many"}))
	assert.Equal(t, 0, c.Storeys(map[string]string{"storeys": "-2"}))
	assert.Equal(t, 0, c.Storeys(nil))
}

func TestIsWater(t *testing.T) {
	var c ZoneClassifier

	assert.True(t, c.IsWater(map[string]string{"natural": "water"}))
	assert.True(t, c.IsWater(map[string]string{"landuse": "reservoir"}))
	assert.True(t, c.IsWater(map[string]string{"water": "pond"}))
	assert.False(t, c.IsWater(map[string]string{"landuse": "residential"}))
	assert.False(t, c.IsWater(nil))
}

func TestIsGreen(t *testing.T) {
	var c ZoneClassifier

	assert.True(t, c.IsGreen(map[string]string{"landuse": "forest"}))
	assert.True(t, c.IsGreen(map[string]string{"natural": "scrub"}))
	assert.True(t, c.IsGreen(map[string]string{"leisure": "park"}))
	assert.False(t, c.IsGreen(map[string]string{"landuse": "industrial"}))
	assert.False(t, c.IsGreen(nil))
}
