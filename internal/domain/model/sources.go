package model

import (
	"context"

	"github.com/paulmach/orb"
)

// ScopeSource разрешает идентификатор проекта или территории
// в корневую геометрию WGS84.
type ScopeSource interface {
	ProjectGeometry(ctx context.Context, id int64) (orb.MultiPolygon, error)
	TerritoryGeometry(ctx context.Context, id int64) (orb.MultiPolygon, error)
}

// ZoneSource отдаёт зоны землепользования и точки сервисов
// в ограничивающем прямоугольнике.
type ZoneSource interface {
	ZonesWithin(ctx context.Context, b orb.Bound, src Source) ([]LandUseZone, error)
	ServicesWithin(ctx context.Context, b orb.Bound, serviceType string) ([]ServicePoint, error)
}

// ScenarioSource отдаёт зоны, заданные сценарием.
type ScenarioSource interface {
	ScenarioZones(ctx context.Context, scenarioID int64, src Source) ([]LandUseZone, error)
}

// IndicatorSink сохраняет вычисленные значения индикаторов
// для территорий.
type IndicatorSink interface {
	SaveIndicatorValue(ctx context.Context, territoryID int64, indicatorID int, value float64, comment string) error
}
