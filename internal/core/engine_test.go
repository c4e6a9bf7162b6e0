package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"landuse_service/internal/cache"
	"landuse_service/internal/config"
	"landuse_service/internal/domain/model"
)

// stubScopes отдаёт заранее заданные геометрии проектов и территорий.
type stubScopes struct {
	projects    map[int64]orb.MultiPolygon
	territories map[int64]orb.MultiPolygon
}

func (s *stubScopes) ProjectGeometry(_ context.Context, id int64) (orb.MultiPolygon, error) {
	geom, ok := s.projects[id]
	if !ok {
		return nil, &model.UnresolvedScopeError{Kind: model.ScopeProject, ID: id}
	}
	return geom, nil
}

func (s *stubScopes) TerritoryGeometry(_ context.Context, id int64) (orb.MultiPolygon, error) {
	geom, ok := s.territories[id]
	if !ok {
		return nil, &model.UnresolvedScopeError{Kind: model.ScopeTerritory, ID: id}
	}
	return geom, nil
}

// stubZones считает обращения, чтобы проверять работу кэша.
type stubZones struct {
	zones    []model.LandUseZone
	services []model.ServicePoint
	err      error

	zoneCalls     int
	serviceCalls  int
	lastType      string
	lastZoneBound orb.Bound
}

func (s *stubZones) ZonesWithin(_ context.Context, b orb.Bound, _ model.Source) ([]model.LandUseZone, error) {
	s.zoneCalls++
	s.lastZoneBound = b
	return s.zones, s.err
}

func (s *stubZones) ServicesWithin(_ context.Context, _ orb.Bound, serviceType string) ([]model.ServicePoint, error) {
	s.serviceCalls++
	s.lastType = serviceType
	return s.services, s.err
}

type stubScenarios struct {
	zones []model.LandUseZone
	err   error
	calls int
}

func (s *stubScenarios) ScenarioZones(_ context.Context, _ int64, _ model.Source) ([]model.LandUseZone, error) {
	s.calls++
	return s.zones, s.err
}

type savedIndicator struct {
	territoryID int64
	indicatorID int
	value       float64
	comment     string
}

type stubSink struct {
	saved []savedIndicator
	err   error
}

func (s *stubSink) SaveIndicatorValue(_ context.Context, territoryID int64, indicatorID int, value float64, comment string) error {
	s.saved = append(s.saved, savedIndicator{territoryID, indicatorID, value, comment})
	return s.err
}

type engineFixture struct {
	engine    *Engine
	pzz       *stubZones
	osm       *stubZones
	scenarios *stubScenarios
	sink      *stubSink
}

func newEngineFixture(cfg *config.Config, cch cache.Cache) *engineFixture {
	scopes := &stubScopes{
		projects:    map[int64]orb.MultiPolygon{1: projectScope().Geometry},
		territories: map[int64]orb.MultiPolygon{2: projectScope().Geometry},
	}
	pzz := &stubZones{zones: halfAndHalfZones(), services: insideServices()}
	osm := &stubZones{zones: halfAndHalfZones(), services: insideServices()}
	scenarios := &stubScenarios{zones: halfAndHalfZones()}
	sink := &stubSink{}

	engine := NewEngine(scopes, pzz, osm, scenarios, []model.IndicatorSink{sink}, cch, cfg, zap.NewNop())
	return &engineFixture{engine: engine, pzz: pzz, osm: osm, scenarios: scenarios, sink: sink}
}

func TestEngineProjectUrbanization(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	got, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, got.UrbanizedShare, 1e-6)
	assert.Equal(t, model.ScopeProject, got.Scope.Kind)
	assert.Equal(t, 1, f.pzz.zoneCalls)
	assert.Zero(t, f.osm.zoneCalls)
}

func TestEngineUnknownProject(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	_, err := f.engine.ProjectUrbanization(context.Background(), 777, model.SourcePZZ, false)

	var unresolved *model.UnresolvedScopeError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, int64(777), unresolved.ID)
	// До источников зон дело не дошло
	assert.Zero(t, f.pzz.zoneCalls)
}

func TestEngineCache(t *testing.T) {
	f := newEngineFixture(testConfig(), cache.NewMemory(16, time.Hour))

	first, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)
	second, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	// Повторный запрос отдан из кэша без обращения к источникам
	assert.Equal(t, 1, f.pzz.zoneCalls)
	require.Equal(t, first, second)

	// force пересчитывает и обновляет кэш
	_, err = f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, true)
	require.NoError(t, err)
	assert.Equal(t, 2, f.pzz.zoneCalls)
}

func TestEngineCacheDistinguishesSources(t *testing.T) {
	f := newEngineFixture(testConfig(), cache.NewMemory(16, time.Hour))

	_, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)
	_, err = f.engine.ProjectUrbanization(context.Background(), 1, model.SourceOSM, false)
	require.NoError(t, err)

	assert.Equal(t, 1, f.pzz.zoneCalls)
	assert.Equal(t, 1, f.osm.zoneCalls)
}

func TestEngineCacheDistinguishesOperations(t *testing.T) {
	f := newEngineFixture(testConfig(), cache.NewMemory(16, time.Hour))

	_, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)
	// Площадной индикатор не берёт чужой кэш, но делает свою выборку
	_, err = f.engine.ProjectArea(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	assert.Equal(t, 2, f.pzz.zoneCalls)
}

func TestEngineProjectRenovationSharesBundle(t *testing.T) {
	f := newEngineFixture(testConfig(), cache.NewMemory(16, time.Hour))

	urb, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)
	ren, err := f.engine.ProjectRenovation(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	// Обе оценки из одного прогона конвейера, источники опрошены один раз
	assert.Equal(t, 1, f.pzz.zoneCalls)
	assert.Equal(t, urb.Score, ren.Urbanization)
}

func TestEngineContextUrbanization(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	got, err := f.engine.ContextUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	require.NotNil(t, got.Project)
	require.NotNil(t, got.Context)
	assert.Equal(t, model.ScopeProject, got.Project.Scope.Kind)
	assert.Equal(t, model.ScopeContext, got.Context.Scope.Kind)

	// Оба scope посчитаны по одной выборке
	assert.Equal(t, 1, f.pzz.zoneCalls)
	assert.Equal(t, 1, f.pzz.serviceCalls)
}

func TestEngineContextFetchesWithMargin(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	_, err := f.engine.ContextUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	// Выборка расширена запасом на контекстный буфер
	scopeBound := projectScope().Geometry.Bound()
	assert.Less(t, f.pzz.lastZoneBound.Min.Lon(), scopeBound.Min.Lon())
	assert.Greater(t, f.pzz.lastZoneBound.Max.Lat(), scopeBound.Max.Lat())
}

func TestEngineTerritoryUrbanizationSavesIndicator(t *testing.T) {
	cfg := testConfig()
	cfg.SaveIndicators = true
	f := newEngineFixture(cfg, nil)

	got, err := f.engine.TerritoryUrbanization(context.Background(), 2, model.SourcePZZ, false)
	require.NoError(t, err)

	require.Len(t, f.sink.saved, 1)
	saved := f.sink.saved[0]
	assert.Equal(t, int64(2), saved.territoryID)
	assert.Equal(t, model.IndicatorUrbanization, saved.indicatorID)
	assert.Equal(t, got.Score, saved.value)
	assert.Equal(t, got.Interpretation, saved.comment)
}

func TestEngineTerritoryAreaSavesCeiledKm2(t *testing.T) {
	cfg := testConfig()
	cfg.SaveIndicators = true
	f := newEngineFixture(cfg, nil)

	got, err := f.engine.TerritoryArea(context.Background(), 2, model.SourcePZZ, false)
	require.NoError(t, err)

	// Площадь 0.62 км² округляется вверх до 1
	assert.InDelta(t, 1, got.TotalAreaKm2, 1e-9)

	require.Len(t, f.sink.saved, 1)
	assert.Equal(t, model.IndicatorTerritoryArea, f.sink.saved[0].indicatorID)
	assert.InDelta(t, 1, f.sink.saved[0].value, 1e-9)
	assert.Empty(t, f.sink.saved[0].comment)
}

func TestEngineSaveDisabled(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	_, err := f.engine.TerritoryUrbanization(context.Background(), 2, model.SourcePZZ, false)
	require.NoError(t, err)

	assert.Empty(t, f.sink.saved)
}

func TestEngineSinkFailureDoesNotFailRequest(t *testing.T) {
	cfg := testConfig()
	cfg.SaveIndicators = true
	f := newEngineFixture(cfg, nil)
	f.sink.err = errors.New("platform unavailable")

	_, err := f.engine.TerritoryUrbanization(context.Background(), 2, model.SourcePZZ, false)
	require.NoError(t, err)
	assert.Len(t, f.sink.saved, 1)
}

func TestEngineProjectArea(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	got, err := f.engine.ProjectArea(context.Background(), 1, model.SourcePZZ, false)
	require.NoError(t, err)

	assert.InEpsilon(t, 620000, got.TotalAreaM2, 0.02)
	assert.InDelta(t, 1, got.TotalAreaKm2, 1e-9)
	// Сервисы для площадного индикатора не выбираются
	assert.Zero(t, f.pzz.serviceCalls)
	assert.Empty(t, f.sink.saved)
}

func TestEngineTerritoryServices(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	got, err := f.engine.TerritoryServices(context.Background(), 2, "school", model.SourcePZZ, false)
	require.NoError(t, err)

	assert.Equal(t, "school", f.pzz.lastType)
	assert.Equal(t, 3, got.Total)
	assert.Zero(t, f.pzz.zoneCalls)
}

func TestEngineTerritoryServicesCachedPerType(t *testing.T) {
	f := newEngineFixture(testConfig(), cache.NewMemory(16, time.Hour))

	_, err := f.engine.TerritoryServices(context.Background(), 2, "school", model.SourcePZZ, false)
	require.NoError(t, err)
	_, err = f.engine.TerritoryServices(context.Background(), 2, "school", model.SourcePZZ, false)
	require.NoError(t, err)
	_, err = f.engine.TerritoryServices(context.Background(), 2, "clinic", model.SourcePZZ, false)
	require.NoError(t, err)

	// Один промах на каждый тип
	assert.Equal(t, 2, f.pzz.serviceCalls)
}

func TestEngineScenarioPercentages(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)

	got, err := f.engine.ScenarioPercentages(context.Background(), 5, model.SourceUser, false)
	require.NoError(t, err)

	assert.Equal(t, model.ScopeScenario, got.Scope.Kind)
	assert.Equal(t, int64(5), got.Scope.ID)
	assert.EqualValues(t, 10000, sumHundredths(got.Percentages))
	assert.Equal(t, 1, f.scenarios.calls)
}

func TestEngineScenarioPercentagesEmpty(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)
	f.scenarios.zones = nil

	got, err := f.engine.ScenarioPercentages(context.Background(), 5, model.SourceOSM, false)
	require.NoError(t, err)

	// Сценарий без зон — нулевое распределение, не ошибка
	for _, v := range got.Percentages {
		assert.Zero(t, v)
	}
}

func TestEngineScenarioCacheInvalidatedByZones(t *testing.T) {
	f := newEngineFixture(testConfig(), cache.NewMemory(16, time.Hour))

	first, err := f.engine.ScenarioPercentages(context.Background(), 5, model.SourceUser, false)
	require.NoError(t, err)

	// Набор зон сценария изменился: ключ кэша другой, результат пересчитан
	f.scenarios.zones = []model.LandUseZone{
		{ID: 8, Geometry: degreeRect(30, 60, 0.01, 0.01), Attributes: map[string]string{"landuse": "farmland"}},
	}
	second, err := f.engine.ScenarioPercentages(context.Background(), 5, model.SourceUser, false)
	require.NoError(t, err)

	assert.NotEqual(t, first.Percentages, second.Percentages)
	assert.InDelta(t, 100, second.Percentages[model.CategoryAgriculture], 1e-9)
}

func TestEngineZoneFetchFailure(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)
	f.pzz.err = errors.New("connection refused")

	_, err := f.engine.ProjectUrbanization(context.Background(), 1, model.SourcePZZ, false)
	require.Error(t, err)

	var degenerate *model.DegenerateGeometryError
	assert.False(t, errors.As(err, &degenerate))
}

func TestEngineDegenerateProject(t *testing.T) {
	f := newEngineFixture(testConfig(), nil)
	f.engine.scopes.(*stubScopes).projects[9] = orb.MultiPolygon{}

	_, err := f.engine.ProjectUrbanization(context.Background(), 9, model.SourcePZZ, false)

	var degenerate *model.DegenerateGeometryError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, int64(9), degenerate.Scope.ID)
}
