package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landuse_service/internal/domain/model"
)

// sumHundredths суммирует проценты в сотых долях, без плавающей погрешности.
func sumHundredths(p map[model.Category]float64) int64 {
	var sum int64
	for _, v := range p {
		sum += int64(math.Round(v * 100))
	}
	return sum
}

func TestAggregateSumsToHundred(t *testing.T) {
	var agg PercentageAggregator

	tests := []struct {
		name string
		in   map[model.Category]float64
	}{
		{"single category", map[model.Category]float64{model.CategoryResidential: 12345}},
		{"two equal", map[model.Category]float64{
			model.CategoryResidential: 500,
			model.CategoryIndustrial:  500,
		}},
		{"thirds", map[model.Category]float64{
			model.CategoryResidential: 1,
			model.CategoryIndustrial:  1,
			model.CategoryCommercial:  1,
		}},
		{"sevenths", map[model.Category]float64{
			model.CategoryResidential:  1,
			model.CategoryIndustrial:   1,
			model.CategoryCommercial:   1,
			model.CategoryTransport:    1,
			model.CategoryAgriculture:  1,
			model.CategoryRecreational: 1,
			model.CategorySpecial:      1,
		}},
		{"skewed", map[model.Category]float64{
			model.CategoryResidential: 999999,
			model.CategoryVacant:      1,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agg.Aggregate(tt.in)
			// Сумма долей — ровно 100.00
			assert.EqualValues(t, 10000, sumHundredths(got))
			for _, v := range got {
				assert.GreaterOrEqual(t, v, 0.0)
			}
		})
	}
}

func TestAggregateValues(t *testing.T) {
	var agg PercentageAggregator

	got := agg.Aggregate(map[model.Category]float64{
		model.CategoryResidential:  600,
		model.CategoryIndustrial:   250,
		model.CategoryRecreational: 150,
	})

	assert.InDelta(t, 60, got[model.CategoryResidential], 1e-9)
	assert.InDelta(t, 25, got[model.CategoryIndustrial], 1e-9)
	assert.InDelta(t, 15, got[model.CategoryRecreational], 1e-9)
	assert.Zero(t, got[model.CategoryVacant])
}

func TestAggregateResidualToLargest(t *testing.T) {
	var agg PercentageAggregator

	// Каждая из трёх долей округляется до 33.33, остаток 0.01 получает
	// первая по порядку перечисления из равных наибольших
	got := agg.Aggregate(map[model.Category]float64{
		model.CategoryResidential: 1,
		model.CategoryIndustrial:  1,
		model.CategoryCommercial:  1,
	})

	assert.InDelta(t, 33.34, got[model.CategoryResidential], 1e-9)
	assert.InDelta(t, 33.33, got[model.CategoryIndustrial], 1e-9)
	assert.InDelta(t, 33.33, got[model.CategoryCommercial], 1e-9)
}

func TestAggregateResidualTieBreak(t *testing.T) {
	var agg PercentageAggregator

	// Наибольшая доля одна — остаток достаётся ей, а не первой по порядку
	got := agg.Aggregate(map[model.Category]float64{
		model.CategoryResidential:  1,
		model.CategoryIndustrial:   1,
		model.CategoryCommercial:   1,
		model.CategoryRecreational: 3,
	})

	assert.EqualValues(t, 10000, sumHundredths(got))
	assert.Greater(t, got[model.CategoryRecreational], got[model.CategoryResidential])
}

func TestAggregateZeroTotal(t *testing.T) {
	var agg PercentageAggregator

	for _, in := range []map[model.Category]float64{
		nil,
		{},
		{model.CategoryResidential: 0},
		{model.CategoryResidential: -5},
	} {
		got := agg.Aggregate(in)
		require.Len(t, got, len(model.Categories()))
		for _, v := range got {
			assert.Zero(t, v)
		}
	}
}

func TestAggregateNegativeIgnored(t *testing.T) {
	var agg PercentageAggregator

	got := agg.Aggregate(map[model.Category]float64{
		model.CategoryResidential: 100,
		model.CategoryIndustrial:  -50,
	})

	assert.InDelta(t, 100, got[model.CategoryResidential], 1e-9)
	assert.Zero(t, got[model.CategoryIndustrial])
}

func TestAggregateHundredths(t *testing.T) {
	var agg PercentageAggregator

	// Все значения кратны сотой доле процента
	got := agg.Aggregate(map[model.Category]float64{
		model.CategoryResidential: 1,
		model.CategoryIndustrial:  2,
		model.CategoryCommercial:  4,
	})
	for _, v := range got {
		scaled := v * 100
		assert.InDelta(t, math.Round(scaled), scaled, 1e-9)
	}
}
