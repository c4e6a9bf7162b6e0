package core

import (
	"context"

	polyclip "github.com/akavel/polyclip-go"

	"landuse_service/internal/domain/model"
	"landuse_service/internal/geometry"
)

// ServiceCountIndicator считает точки сервисов внутри границы scope по типам.
// Точка ровно на границе считается лежащей внутри.
type ServiceCountIndicator struct{}

// Count возвращает число сервисов каждого типа внутри scope и взвешенную
// сумму по заданным весам типов (вес неизвестного типа — 1).
// Единственная ошибка — вырожденная геометрия границы.
func (ServiceCountIndicator) Count(
	ctx context.Context,
	scope model.ScopeInfo,
	scopePoly polyclip.Polygon,
	services []servicePoint,
	weights map[string]float64,
) (*model.ServiceCounts, error) {
	if geometry.Area(scopePoly) <= areaEps {
		return nil, &model.DegenerateGeometryError{Scope: scope, Reason: "scope area is zero"}
	}

	counts := make(map[string]int)
	total := 0
	weighted := 0.0

	for _, s := range services {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !geometry.Contains(scopePoly, s.pt) {
			continue
		}
		counts[s.typ]++
		total++

		w := 1.0
		if weights != nil {
			if v, ok := weights[s.typ]; ok {
				w = v
			}
		}
		weighted += w
	}

	return &model.ServiceCounts{
		Scope:         scope,
		Counts:        counts,
		Total:         total,
		WeightedTotal: weighted,
	}, nil
}
