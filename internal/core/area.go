package core

import (
	"context"

	polyclip "github.com/akavel/polyclip-go"

	"landuse_service/internal/domain/model"
	"landuse_service/internal/geometry"
)

// Площади меньше areaEps м² считаются нулевыми.
const areaEps = 1e-6

// AreaIndicator вычисляет площадь пересечения каждой зоны с границей scope
// и суммирует её по категориям. Зона, лежащая целиком вне границы, даёт ноль;
// частично перекрывающая — только площадь перекрытия.
type AreaIndicator struct{}

// Calculate возвращает распределение площадей по категориям внутри scope.
// Ошибается DegenerateGeometryError, если площадь границы нулевая либо
// ни одна зона не пересекает границу: нулевой результат всегда означает
// «вычислено и мало», а не «невычислимо».
func (AreaIndicator) Calculate(
	ctx context.Context,
	scope model.ScopeInfo,
	scopePoly polyclip.Polygon,
	zones []ClassifiedZone,
) (*model.AreaBreakdown, error) {
	scopeArea := geometry.Area(scopePoly)
	if scopeArea <= areaEps {
		return nil, &model.DegenerateGeometryError{Scope: scope, Reason: "scope area is zero"}
	}

	perCategory := make(map[model.Category]float64, len(model.Categories()))
	for _, c := range model.Categories() {
		perCategory[c] = 0
	}
	zoneAreas := make(map[int64]float64, len(zones))

	var classified float64
	for _, zone := range zones {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		area := geometry.IntersectionArea(zone.Poly, scopePoly)
		if area <= areaEps {
			continue
		}
		// Мультиполигонная зона приходит несколькими частями с одним
		// идентификатором, их площади складываются
		perCategory[zone.Category] += area
		zoneAreas[zone.ID] += area
		classified += area
	}

	if classified <= areaEps {
		return nil, &model.DegenerateGeometryError{Scope: scope, Reason: "no classified area within scope"}
	}

	return &model.AreaBreakdown{
		Scope:            scope,
		TotalAreaM2:      scopeArea,
		ClassifiedAreaM2: classified,
		PerCategory:      perCategory,
		ZoneAreas:        zoneAreas,
	}, nil
}
