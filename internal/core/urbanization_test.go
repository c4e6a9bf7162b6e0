package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landuse_service/internal/config"
	"landuse_service/internal/domain/model"
)

func defaultUrbanizationWeights() config.UrbanizationWeights {
	return config.UrbanizationWeights{
		AreaWeight:     0.7,
		DensityWeight:  0.3,
		DensityHalfSat: 25,
	}
}

// breakdown собирает распределение площадей с площадью scope 1 км².
func breakdown(perCategory map[model.Category]float64) *model.AreaBreakdown {
	var classified float64
	for _, v := range perCategory {
		classified += v
	}
	return &model.AreaBreakdown{
		Scope:            testScope(),
		TotalAreaM2:      1e6,
		ClassifiedAreaM2: classified,
		PerCategory:      perCategory,
	}
}

func counts(weighted float64) *model.ServiceCounts {
	return &model.ServiceCounts{Scope: testScope(), WeightedTotal: weighted}
}

func TestUrbanizationCalculate(t *testing.T) {
	calc := NewUrbanizationCalculator(defaultUrbanizationWeights())

	areas := breakdown(map[model.Category]float64{
		model.CategoryResidential:  600000,
		model.CategoryRecreational: 400000,
	})
	got, err := calc.Calculate(areas, counts(0))
	require.NoError(t, err)

	// Урбанизированная доля 0.6, сервисов нет: 0.7 * 0.6
	assert.InDelta(t, 0.6, got.UrbanizedShare, 1e-9)
	assert.Zero(t, got.ServiceDensity)
	assert.InDelta(t, 0.42, got.Score, 1e-9)
	assert.Equal(t, "Средне урбанизированная территория", got.Interpretation)
}

func TestUrbanizationServiceDensity(t *testing.T) {
	calc := NewUrbanizationCalculator(defaultUrbanizationWeights())
	areas := breakdown(map[model.Category]float64{model.CategoryResidential: 500000})

	// 25 взвешенных сервисов на 1 км² — ровно полунасыщение
	got, err := calc.Calculate(areas, counts(25))
	require.NoError(t, err)

	assert.InDelta(t, 25, got.ServiceDensity, 1e-9)
	// 0.7 * 1.0 + 0.3 * 0.5
	assert.InDelta(t, 0.85, got.Score, 1e-9)
}

func TestUrbanizationMonotoneInShare(t *testing.T) {
	calc := NewUrbanizationCalculator(defaultUrbanizationWeights())

	prev := -1.0
	for share := 0.0; share <= 1.0; share += 0.1 {
		areas := breakdown(map[model.Category]float64{
			model.CategoryResidential: share * 1e6,
			model.CategoryAgriculture: (1 - share) * 1e6,
		})
		got, err := calc.Calculate(areas, counts(10))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Score, prev)
		prev = got.Score
	}
}

func TestUrbanizationMonotoneInDensity(t *testing.T) {
	calc := NewUrbanizationCalculator(defaultUrbanizationWeights())
	areas := breakdown(map[model.Category]float64{model.CategoryResidential: 300000})

	prev := -1.0
	for _, weighted := range []float64{0, 1, 5, 25, 100, 1000} {
		got, err := calc.Calculate(areas, counts(weighted))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got.Score, prev)
		prev = got.Score
	}
}

func TestUrbanizationBounded(t *testing.T) {
	calc := NewUrbanizationCalculator(defaultUrbanizationWeights())

	// Полностью урбанизированный scope с плотностью сервисов далеко за насыщением
	areas := breakdown(map[model.Category]float64{model.CategoryMixed: 1e6})
	got, err := calc.Calculate(areas, counts(1e9))
	require.NoError(t, err)

	assert.LessOrEqual(t, got.Score, 1.0)
	assert.Equal(t, "Высоко урбанизированная территория", got.Interpretation)
}

func TestUrbanizationDegenerate(t *testing.T) {
	calc := NewUrbanizationCalculator(defaultUrbanizationWeights())

	_, err := calc.Calculate(&model.AreaBreakdown{Scope: testScope(), TotalAreaM2: 1e6}, counts(0))
	var degenerate *model.DegenerateGeometryError
	require.ErrorAs(t, err, &degenerate)
}

func TestInterpretUrbanization(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0, "Мало урбанизированная территория"},
		{0.09, "Мало урбанизированная территория"},
		{0.1, "Слабо урбанизированная территория"},
		{0.24, "Слабо урбанизированная территория"},
		{0.25, "Средне урбанизированная территория"},
		{0.74, "Средне урбанизированная территория"},
		{0.75, "Хорошо урбанизированная территория"},
		{0.89, "Хорошо урбанизированная территория"},
		{0.9, "Высоко урбанизированная территория"},
		{1, "Высоко урбанизированная территория"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, interpretUrbanization(tt.score))
	}
}
