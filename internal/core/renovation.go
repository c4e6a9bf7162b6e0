package core

import (
	"math"

	"landuse_service/internal/config"
	"landuse_service/internal/domain/model"
)

// Жилые зоны выше этого порога этажности в реновацию не попадают.
const maxRenovationStoreys = 8

// RenovationPotentialCalculator оценивает потенциал реновации scope.
// Потенциал растёт там, где территория урбанизирована, но значительная
// доля площади занята реновационными категориями. Он намеренно немонотонен
// по одной лишь урбанизации: полностью застроенная зона без реновационных
// площадей стремится к нулю при любом уровне урбанизации.
type RenovationPotentialCalculator struct {
	weights config.RenovationWeights
}

func NewRenovationPotentialCalculator(weights config.RenovationWeights) RenovationPotentialCalculator {
	return RenovationPotentialCalculator{weights: weights}
}

// Calculate вычисляет потенциал реновации по распределению площадей,
// уровню урбанизации и состоянию застройки отдельных зон.
func (c RenovationPotentialCalculator) Calculate(
	areas *model.AreaBreakdown,
	urbanization *model.UrbanizationResult,
	zones []ClassifiedZone,
) (*model.RenovationResult, error) {
	if areas.ClassifiedAreaM2 <= areaEps {
		return nil, &model.DegenerateGeometryError{Scope: areas.Scope, Reason: "scope has no classified area"}
	}

	// ZoneAreas хранит суммарную площадь по идентификатору, поэтому части
	// мультиполигонной зоны учитываются один раз
	var eligibleArea, conditionSum float64
	seen := make(map[int64]struct{}, len(zones))
	for _, zone := range zones {
		if _, ok := seen[zone.ID]; ok {
			continue
		}
		seen[zone.ID] = struct{}{}

		area := areas.ZoneAreas[zone.ID]
		if area <= areaEps || !c.eligible(zone) {
			continue
		}
		eligibleArea += area
		conditionSum += zone.Condition * area
	}

	eligibleShare := eligibleArea / areas.ClassifiedAreaM2

	// Средневзвешенное состояние реновационных зон; нейтральная середина,
	// когда таких зон нет
	avgCondition := 0.5
	if eligibleArea > 0 {
		avgCondition = conditionSum / eligibleArea
	}

	score := clamp01(c.weights.BaseWeight*urbanization.Score*eligibleShare +
		c.weights.ConditionWeight*(0.5-avgCondition)*2)

	return &model.RenovationResult{
		Scope:          areas.Scope,
		Score:          score,
		Urbanization:   urbanization.Score,
		EligibleAreaM2: eligibleArea,
		DiscomfortPct:  round2(eligibleShare * 100),
	}, nil
}

// eligible определяет, относится ли зона к реновационным: незастроенные и
// производственные всегда, жилые — только устаревшие малой и средней
// этажности. Рекреационные и специальные зоны реновации не подлежат.
func (c RenovationPotentialCalculator) eligible(zone ClassifiedZone) bool {
	switch zone.Category {
	case model.CategoryVacant, model.CategoryIndustrial:
		return true
	case model.CategoryResidential:
		return zone.Condition < c.weights.AgingThreshold && zone.Storeys <= maxRenovationStoreys
	default:
		return false
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
