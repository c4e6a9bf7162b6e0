package core

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/paulmach/orb"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"landuse_service/internal/cache"
	"landuse_service/internal/config"
	"landuse_service/internal/domain/model"
	"landuse_service/internal/geometry"
	"landuse_service/internal/metrics"
)

// Engine связывает источники данных с конвейером вычислений: разрешает
// scope, забирает зоны и сервисы, считает индикаторы, кэширует готовые
// ответы и передаёт значения территориальных индикаторов на сохранение.
type Engine struct {
	scopes    model.ScopeSource
	pzz       model.ZoneSource
	osm       model.ZoneSource
	scenarios model.ScenarioSource
	sinks     []model.IndicatorSink

	cache      cache.Cache
	pipeline   *Pipeline
	contextAgg ContextAggregator
	cfg        *config.Config
	log        *zap.Logger
}

func NewEngine(
	scopes model.ScopeSource,
	pzz model.ZoneSource,
	osm model.ZoneSource,
	scenarios model.ScenarioSource,
	sinks []model.IndicatorSink,
	cch cache.Cache,
	cfg *config.Config,
	log *zap.Logger,
) *Engine {
	pipeline := NewPipeline(cfg)
	return &Engine{
		scopes:     scopes,
		pzz:        pzz,
		osm:        osm,
		scenarios:  scenarios,
		sinks:      sinks,
		cache:      cch,
		pipeline:   pipeline,
		contextAgg: NewContextAggregator(pipeline, cfg.ContextBufferM),
		cfg:        cfg,
		log:        log,
	}
}

// contextBundles — кэшируемая пара результатов проектного и контекстного scope.
type contextBundles struct {
	Project *ScoreBundle `json:"project"`
	Context *ScoreBundle `json:"context"`
}

// ProjectUrbanization считает уровень урбанизации проекта.
func (e *Engine) ProjectUrbanization(ctx context.Context, projectID int64, src model.Source, force bool) (*model.UrbanizationResult, error) {
	bundle, err := e.scopeScores(ctx, model.ScopeProject, projectID, src, force)
	if err != nil {
		return nil, err
	}
	return bundle.Urbanization, nil
}

// ProjectRenovation считает потенциал реновации проекта.
func (e *Engine) ProjectRenovation(ctx context.Context, projectID int64, src model.Source, force bool) (*model.RenovationResult, error) {
	bundle, err := e.scopeScores(ctx, model.ScopeProject, projectID, src, force)
	if err != nil {
		return nil, err
	}
	return bundle.Renovation, nil
}

// ContextUrbanization считает уровень урбанизации проекта и его контекста.
func (e *Engine) ContextUrbanization(ctx context.Context, projectID int64, src model.Source, force bool) (*model.UrbanizationWithContext, error) {
	bundles, err := e.contextScores(ctx, projectID, src, force)
	if err != nil {
		return nil, err
	}
	return &model.UrbanizationWithContext{
		Project: bundles.Project.Urbanization,
		Context: bundles.Context.Urbanization,
	}, nil
}

// ContextRenovation считает потенциал реновации проекта и его контекста.
func (e *Engine) ContextRenovation(ctx context.Context, projectID int64, src model.Source, force bool) (*model.RenovationWithContext, error) {
	bundles, err := e.contextScores(ctx, projectID, src, force)
	if err != nil {
		return nil, err
	}
	return &model.RenovationWithContext{
		Project: bundles.Project.Renovation,
		Context: bundles.Context.Renovation,
	}, nil
}

// TerritoryUrbanization считает уровень урбанизации территории и передаёт
// значение индикатора на сохранение.
func (e *Engine) TerritoryUrbanization(ctx context.Context, territoryID int64, src model.Source, force bool) (*model.UrbanizationResult, error) {
	bundle, err := e.scopeScores(ctx, model.ScopeTerritory, territoryID, src, force)
	if err != nil {
		return nil, err
	}
	e.saveIndicator(ctx, territoryID, model.IndicatorUrbanization, bundle.Urbanization.Score, bundle.Urbanization.Interpretation)
	return bundle.Urbanization, nil
}

// TerritoryArea считает площадной индикатор территории и передаёт
// площадь в км² на сохранение.
func (e *Engine) TerritoryArea(ctx context.Context, territoryID int64, src model.Source, force bool) (*model.AreaResult, error) {
	result, err := e.scopeArea(ctx, model.ScopeTerritory, territoryID, src, force)
	if err != nil {
		return nil, err
	}
	e.saveIndicator(ctx, territoryID, model.IndicatorTerritoryArea, result.TotalAreaKm2, "")
	return result, nil
}

// ProjectArea считает площадной индикатор проекта.
func (e *Engine) ProjectArea(ctx context.Context, projectID int64, src model.Source, force bool) (*model.AreaResult, error) {
	return e.scopeArea(ctx, model.ScopeProject, projectID, src, force)
}

// TerritoryServices считает сервисы внутри территории, опционально
// ограничивая подсчёт одним типом.
func (e *Engine) TerritoryServices(ctx context.Context, territoryID int64, serviceType string, src model.Source, force bool) (*model.ServiceCounts, error) {
	scope, err := e.resolveScope(ctx, model.ScopeTerritory, territoryID)
	if err != nil {
		return nil, err
	}

	key := e.cacheKey(fmt.Sprintf("services:%s", serviceType), scope, src)
	var cached model.ServiceCounts
	if !force && e.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	services, err := e.zoneSource(src).ServicesWithin(ctx, scope.Geometry.Bound(), serviceType)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}

	timer := prometheus.NewTimer(metrics.CalculationDuration.WithLabelValues("services"))
	counts, err := e.pipeline.Services(ctx, scope, 0, services)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	e.cachePut(ctx, key, counts)
	return counts, nil
}

// ScenarioPercentages считает распределение землепользования по зонам сценария.
func (e *Engine) ScenarioPercentages(ctx context.Context, scenarioID int64, src model.Source, force bool) (*model.PercentagesResult, error) {
	zones, err := e.scenarios.ScenarioZones(ctx, scenarioID, src)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scenario zones: %w", err)
	}

	scope := model.ScopeInfo{ID: scenarioID, Kind: model.ScopeScenario}
	key := fmt.Sprintf("landuse:percentages:%s:%d:%s:%x", scope.Kind, scope.ID, src, zonesVersion(zones))
	var cached model.PercentagesResult
	if !force && e.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	timer := prometheus.NewTimer(metrics.CalculationDuration.WithLabelValues("percentages"))
	result, err := e.pipeline.Percentages(ctx, scope, zones)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	e.observeQuality(scope, result.SkippedZones)
	e.cachePut(ctx, key, result)
	return result, nil
}

// scopeScores выполняет полный конвейер над scope с кэшированием результата.
func (e *Engine) scopeScores(ctx context.Context, kind model.ScopeKind, id int64, src model.Source, force bool) (*ScoreBundle, error) {
	scope, err := e.resolveScope(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	key := e.cacheKey("scores", scope, src)
	var cached ScoreBundle
	if !force && e.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	zones, services, err := e.fetchInputs(ctx, scope, src, 0)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(metrics.CalculationDuration.WithLabelValues("scores"))
	bundle, err := e.pipeline.Scores(ctx, scope, 0, zones, services)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	e.observeQuality(bundle.Areas.Scope, bundle.Areas.SkippedZones)
	e.cachePut(ctx, key, bundle)
	return bundle, nil
}

// contextScores выполняет конвейер над проектом и его контекстом.
func (e *Engine) contextScores(ctx context.Context, projectID int64, src model.Source, force bool) (*contextBundles, error) {
	scope, err := e.resolveScope(ctx, model.ScopeProject, projectID)
	if err != nil {
		return nil, err
	}

	key := e.cacheKey("context", scope, src)
	var cached contextBundles
	if !force && e.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	// Зоны и сервисы забираются с запасом на контекстный буфер,
	// оба прогона конвейера делят один набор входных данных.
	zones, services, err := e.fetchInputs(ctx, scope, src, e.cfg.ContextBufferM)
	if err != nil {
		return nil, err
	}

	timer := prometheus.NewTimer(metrics.CalculationDuration.WithLabelValues("context"))
	project, buffered, err := e.contextAgg.Run(ctx, scope, zones, services)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	e.observeQuality(project.Areas.Scope, project.Areas.SkippedZones)
	bundles := &contextBundles{Project: project, Context: buffered}
	e.cachePut(ctx, key, bundles)
	return bundles, nil
}

// scopeArea выполняет площадной индикатор над scope с кэшированием результата.
func (e *Engine) scopeArea(ctx context.Context, kind model.ScopeKind, id int64, src model.Source, force bool) (*model.AreaResult, error) {
	scope, err := e.resolveScope(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	key := e.cacheKey("area", scope, src)
	var cached model.AreaResult
	if !force && e.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	zones, err := e.zoneSource(src).ZonesWithin(ctx, scope.Geometry.Bound(), src)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch zones: %w", err)
	}

	timer := prometheus.NewTimer(metrics.CalculationDuration.WithLabelValues("area"))
	breakdown, err := e.pipeline.Areas(ctx, scope, 0, zones)
	timer.ObserveDuration()
	if err != nil {
		return nil, err
	}

	result := &model.AreaResult{
		Scope:            breakdown.Scope,
		TotalAreaM2:      breakdown.TotalAreaM2,
		TotalAreaKm2:     math.Ceil(breakdown.TotalAreaM2 / 1e6),
		ClassifiedAreaM2: breakdown.ClassifiedAreaM2,
		PerCategory:      breakdown.PerCategory,
		Degraded:         breakdown.Degraded,
		SkippedZones:     breakdown.SkippedZones,
	}
	e.observeQuality(result.Scope, result.SkippedZones)
	e.cachePut(ctx, key, result)
	return result, nil
}

func (e *Engine) resolveScope(ctx context.Context, kind model.ScopeKind, id int64) (model.Scope, error) {
	var (
		geom orb.MultiPolygon
		err  error
	)
	switch kind {
	case model.ScopeTerritory:
		geom, err = e.scopes.TerritoryGeometry(ctx, id)
	default:
		geom, err = e.scopes.ProjectGeometry(ctx, id)
	}
	if err != nil {
		return model.Scope{}, err
	}
	return model.Scope{ID: id, Kind: kind, Geometry: geom}, nil
}

func (e *Engine) zoneSource(src model.Source) model.ZoneSource {
	if src == model.SourceOSM {
		return e.osm
	}
	return e.pzz
}

// fetchInputs забирает зоны и сервисы в ограничивающем прямоугольнике scope,
// расширенном на marginM метров.
func (e *Engine) fetchInputs(
	ctx context.Context,
	scope model.Scope,
	src model.Source,
	marginM float64,
) ([]model.LandUseZone, []model.ServicePoint, error) {
	bound := scope.Geometry.Bound()
	if marginM > 0 {
		bound = geometry.NewProjector(bound.Center()).ExpandBound(bound, marginM)
	}

	source := e.zoneSource(src)
	zones, err := source.ZonesWithin(ctx, bound, src)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch zones: %w", err)
	}
	services, err := source.ServicesWithin(ctx, bound, "")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	return zones, services, nil
}

// saveIndicator передаёт значение всем приёмникам. Ошибка сохранения не
// отменяет уже вычисленный результат и только логируется.
func (e *Engine) saveIndicator(ctx context.Context, territoryID int64, indicatorID int, value float64, comment string) {
	if !e.cfg.SaveIndicators {
		return
	}
	for _, sink := range e.sinks {
		if err := sink.SaveIndicatorValue(ctx, territoryID, indicatorID, value, comment); err != nil {
			e.log.Warn("failed to save indicator value",
				zap.Int64("territory_id", territoryID),
				zap.Int("indicator_id", indicatorID),
				zap.Error(err))
		}
	}
}

func (e *Engine) observeQuality(scope model.ScopeInfo, skipped []int64) {
	if len(skipped) == 0 {
		return
	}
	metrics.DegradedResults.Inc()
	metrics.SkippedZones.Add(float64(len(skipped)))
	e.log.Warn("zones skipped due to malformed geometry",
		zap.Int64("scope_id", scope.ID),
		zap.String("scope_kind", string(scope.Kind)),
		zap.Int64s("zone_ids", skipped))
}

func (e *Engine) cacheKey(op string, scope model.Scope, src model.Source) string {
	return fmt.Sprintf("landuse:%s:%s:%d:%s:%x", op, scope.Kind, scope.ID, src, geometryVersion(scope.Geometry))
}

func (e *Engine) cacheGet(ctx context.Context, key string, out any) bool {
	if e.cache == nil {
		return false
	}
	data, ok := e.cache.Get(ctx, key)
	if !ok {
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		e.log.Warn("failed to decode cached result", zap.String("key", key), zap.Error(err))
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

func (e *Engine) cachePut(ctx context.Context, key string, value any) {
	if e.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		e.log.Warn("failed to encode result for cache", zap.String("key", key), zap.Error(err))
		return
	}
	e.cache.Set(ctx, key, data)
}

// geometryVersion хеширует координаты границы: смена геометрии проекта
// на платформе инвалидирует кэш без явного сброса.
func geometryVersion(mp orb.MultiPolygon) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, poly := range mp {
		for _, ring := range poly {
			for _, pt := range ring {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(pt[0]))
				h.Write(buf[:])
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(pt[1]))
				h.Write(buf[:])
			}
		}
	}
	return h.Sum64()
}

func zonesVersion(zones []model.LandUseZone) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, z := range zones {
		binary.LittleEndian.PutUint64(buf[:], uint64(z.ID))
		h.Write(buf[:])
		for _, ring := range z.Geometry {
			for _, pt := range ring {
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(pt[0]))
				h.Write(buf[:])
				binary.LittleEndian.PutUint64(buf[:], math.Float64bits(pt[1]))
				h.Write(buf[:])
			}
		}
	}
	return h.Sum64()
}
