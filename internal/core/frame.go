package core

import (
	polyclip "github.com/akavel/polyclip-go"

	"landuse_service/internal/domain/model"
	"landuse_service/internal/geometry"
)

// ClassifiedZone — зона, подготовленная к вычислению: категория присвоена,
// атрибуты разобраны, геометрия проверена и спроецирована в метры.
type ClassifiedZone struct {
	ID        int64
	Category  model.Category
	Condition float64
	Storeys   int
	Water     bool
	Green     bool
	Poly      polyclip.Polygon
}

type servicePoint struct {
	id  int64
	typ string
	pt  polyclip.Point
}

// scopeFrame — спроецированная граница вычисления.
type scopeFrame struct {
	scope model.ScopeInfo
	proj  geometry.Projector
	poly  polyclip.Polygon
}

// prepareZones классифицирует, проверяет и проецирует зоны.
// Зоны с некорректной геометрией пропускаются, их идентификаторы
// возвращаются отдельным списком в исходном порядке. Входной срез
// не изменяется: подготовка безопасна для параллельных запусков
// над одним набором зон.
func prepareZones(c ZoneClassifier, proj geometry.Projector, zones []model.LandUseZone) ([]ClassifiedZone, []int64) {
	prepared := make([]ClassifiedZone, 0, len(zones))
	var skipped []int64

	for _, zone := range zones {
		if err := geometry.ValidatePolygon(zone.Geometry); err != nil {
			skipped = append(skipped, zone.ID)
			continue
		}
		prepared = append(prepared, ClassifiedZone{
			ID:        zone.ID,
			Category:  c.Classify(zone.Attributes),
			Condition: c.Condition(zone.Attributes),
			Storeys:   c.Storeys(zone.Attributes),
			Water:     c.IsWater(zone.Attributes),
			Green:     c.IsGreen(zone.Attributes),
			Poly:      proj.Polygon(zone.Geometry),
		})
	}
	return prepared, skipped
}

func prepareServices(proj geometry.Projector, services []model.ServicePoint) []servicePoint {
	prepared := make([]servicePoint, 0, len(services))
	for _, s := range services {
		prepared = append(prepared, servicePoint{
			id:  s.ID,
			typ: s.Type,
			pt:  proj.Point(s.Location),
		})
	}
	return prepared
}
