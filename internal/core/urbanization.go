package core

import (
	"landuse_service/internal/config"
	"landuse_service/internal/domain/model"
)

// UrbanizationCalculator сводит долю урбанизированных категорий и плотность
// сервисов в единый уровень урбанизации в [0,1]. Комбинация монотонна по
// обоим слагаемым: рост доли урбанизированной площади или плотности сервисов
// никогда не уменьшает оценку.
type UrbanizationCalculator struct {
	weights config.UrbanizationWeights
}

func NewUrbanizationCalculator(weights config.UrbanizationWeights) UrbanizationCalculator {
	return UrbanizationCalculator{weights: weights}
}

// Calculate вычисляет уровень урбанизации по распределению площадей и числу
// сервисов одного scope. Вырожденное распределение (нулевая классифицированная
// площадь) даёт ту же ошибку, что и площадной индикатор, а не нулевую оценку.
func (c UrbanizationCalculator) Calculate(
	areas *model.AreaBreakdown,
	services *model.ServiceCounts,
) (*model.UrbanizationResult, error) {
	if areas.TotalAreaM2 <= areaEps || areas.ClassifiedAreaM2 <= areaEps {
		return nil, &model.DegenerateGeometryError{Scope: areas.Scope, Reason: "scope has no classified area"}
	}

	var urbanized float64
	for _, category := range model.UrbanizedCategories() {
		urbanized += areas.PerCategory[category]
	}
	share := urbanized / areas.ClassifiedAreaM2

	// Плотность сервисов на км² площади scope, нормированная насыщением
	density := services.WeightedTotal / (areas.TotalAreaM2 / 1e6)
	densityNorm := 0.0
	if density+c.weights.DensityHalfSat > 0 {
		densityNorm = density / (density + c.weights.DensityHalfSat)
	}

	score := clamp01(c.weights.AreaWeight*share + c.weights.DensityWeight*densityNorm)

	return &model.UrbanizationResult{
		Scope:          areas.Scope,
		Score:          score,
		UrbanizedShare: share,
		ServiceDensity: density,
		Interpretation: interpretUrbanization(score),
	}, nil
}

// interpretUrbanization возвращает текстовую трактовку уровня урбанизации.
func interpretUrbanization(score float64) string {
	percent := score * 100
	switch {
	case percent < 10:
		return "Мало урбанизированная территория"
	case percent < 25:
		return "Слабо урбанизированная территория"
	case percent < 75:
		return "Средне урбанизированная территория"
	case percent < 90:
		return "Хорошо урбанизированная территория"
	default:
		return "Высоко урбанизированная территория"
	}
}
