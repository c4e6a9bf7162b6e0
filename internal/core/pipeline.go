package core

import (
	"context"

	"golang.org/x/sync/errgroup"

	"landuse_service/internal/config"
	"landuse_service/internal/domain/model"
	"landuse_service/internal/geometry"
)

// Pipeline — вычислительный конвейер движка: классификация зон, площадная
// агрегация, подсчёт сервисов, уровень урбанизации, потенциал реновации и
// проценты землепользования. Конвейер не обращается к источникам данных
// и не хранит состояния между вызовами: каждый вызов — чистая функция
// своих аргументов.
type Pipeline struct {
	classifier   ZoneClassifier
	area         AreaIndicator
	services     ServiceCountIndicator
	urbanization UrbanizationCalculator
	renovation   RenovationPotentialCalculator
	percentages  PercentageAggregator

	serviceWeights map[string]float64
	bufferSegments int
}

// NewPipeline собирает конвейер с весами и параметрами из конфигурации.
func NewPipeline(cfg *config.Config) *Pipeline {
	return &Pipeline{
		urbanization:   NewUrbanizationCalculator(cfg.Urbanization),
		renovation:     NewRenovationPotentialCalculator(cfg.Renovation),
		serviceWeights: cfg.ServiceWeights,
		bufferSegments: cfg.BufferSegments,
	}
}

// ScoreBundle — результаты полного прогона конвейера над одним scope.
type ScoreBundle struct {
	Areas        *model.AreaBreakdown      `json:"areas"`
	Services     *model.ServiceCounts      `json:"services"`
	Urbanization *model.UrbanizationResult `json:"urbanization"`
	Renovation   *model.RenovationResult   `json:"renovation"`
}

// prepareScope проверяет геометрию границы и проецирует её в метры,
// при необходимости расширяя буфером.
func (p *Pipeline) prepareScope(scope model.Scope, bufferM float64) (*scopeFrame, error) {
	if err := geometry.ValidateMultiPolygon(scope.Geometry); err != nil {
		return nil, &model.DegenerateGeometryError{Scope: scope.Info(), Reason: err.Error()}
	}

	proj := geometry.NewProjector(scope.Geometry.Bound().Center())
	poly := proj.MultiPolygon(scope.Geometry)
	if bufferM > 0 {
		poly = geometry.Buffer(poly, bufferM, p.bufferSegments)
	}
	if geometry.Area(poly) <= areaEps {
		return nil, &model.DegenerateGeometryError{Scope: scope.Info(), Reason: "scope area is zero"}
	}

	return &scopeFrame{scope: scope.Info(), proj: proj, poly: poly}, nil
}

// Areas вычисляет площадное распределение категорий внутри scope.
func (p *Pipeline) Areas(
	ctx context.Context,
	scope model.Scope,
	bufferM float64,
	zones []model.LandUseZone,
) (*model.AreaBreakdown, error) {
	frame, err := p.prepareScope(scope, bufferM)
	if err != nil {
		return nil, err
	}

	prepared, skipped := prepareZones(p.classifier, frame.proj, zones)
	breakdown, err := p.area.Calculate(ctx, frame.scope, frame.poly, prepared)
	if err != nil {
		return nil, err
	}
	breakdown.Degraded = len(skipped) > 0
	breakdown.SkippedZones = skipped
	return breakdown, nil
}

// Services считает сервисы внутри scope по типам.
func (p *Pipeline) Services(
	ctx context.Context,
	scope model.Scope,
	bufferM float64,
	services []model.ServicePoint,
) (*model.ServiceCounts, error) {
	frame, err := p.prepareScope(scope, bufferM)
	if err != nil {
		return nil, err
	}
	return p.services.Count(ctx, frame.scope, frame.poly, prepareServices(frame.proj, services), p.serviceWeights)
}

// Scores выполняет полный конвейер над scope: площадной и сервисный
// индикаторы считаются параллельно, затем последовательно — урбанизация
// и потенциал реновации. Отмена контекста прерывает вычисление.
func (p *Pipeline) Scores(
	ctx context.Context,
	scope model.Scope,
	bufferM float64,
	zones []model.LandUseZone,
	services []model.ServicePoint,
) (*ScoreBundle, error) {
	frame, err := p.prepareScope(scope, bufferM)
	if err != nil {
		return nil, err
	}

	preparedZones, skipped := prepareZones(p.classifier, frame.proj, zones)
	preparedServices := prepareServices(frame.proj, services)

	var (
		areas  *model.AreaBreakdown
		counts *model.ServiceCounts
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		areas, err = p.area.Calculate(gctx, frame.scope, frame.poly, preparedZones)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = p.services.Count(gctx, frame.scope, frame.poly, preparedServices, p.serviceWeights)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	urbanization, err := p.urbanization.Calculate(areas, counts)
	if err != nil {
		return nil, err
	}
	renovation, err := p.renovation.Calculate(areas, urbanization, preparedZones)
	if err != nil {
		return nil, err
	}

	if len(skipped) > 0 {
		areas.Degraded = true
		areas.SkippedZones = skipped
		urbanization.Degraded = true
		urbanization.SkippedZones = skipped
		renovation.Degraded = true
		renovation.SkippedZones = skipped
	}

	return &ScoreBundle{
		Areas:        areas,
		Services:     counts,
		Urbanization: urbanization,
		Renovation:   renovation,
	}, nil
}

// Percentages вычисляет распределение землепользования по полным площадям
// зон, без отсечения границей: сценарий задаёт зоны сам. Нулевая суммарная
// площадь даёт нулевое распределение, а не ошибку.
func (p *Pipeline) Percentages(
	ctx context.Context,
	scope model.ScopeInfo,
	zones []model.LandUseZone,
) (*model.PercentagesResult, error) {
	perCategory := make(map[model.Category]float64, len(model.Categories()))
	for _, c := range model.Categories() {
		perCategory[c] = 0
	}

	result := &model.PercentagesResult{Scope: scope}
	if len(zones) == 0 {
		result.Percentages = p.percentages.Aggregate(perCategory)
		return result, nil
	}

	bound := zones[0].Geometry.Bound()
	for _, z := range zones[1:] {
		bound = bound.Union(z.Geometry.Bound())
	}
	proj := geometry.NewProjector(bound.Center())

	prepared, skipped := prepareZones(p.classifier, proj, zones)

	var total, water, green float64
	for _, zone := range prepared {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		area := geometry.Area(zone.Poly)
		if area <= areaEps {
			continue
		}
		perCategory[zone.Category] += area
		total += area
		if zone.Water {
			water += area
		}
		if zone.Green {
			green += area
		}
	}

	result.Percentages = p.percentages.Aggregate(perCategory)
	if total > 0 {
		result.WaterPct = round2(water / total * 100)
		result.GreenPct = round2(green / total * 100)
	}
	result.Degraded = len(skipped) > 0
	result.SkippedZones = skipped
	return result, nil
}
