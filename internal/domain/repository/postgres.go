package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"landuse_service/internal/domain/model"
)

// PostGISRepository читает геометрии проектов и территорий, зоны
// землепользования, зоны сценариев и точки сервисов из PostGIS.
// Геометрия ходит через ST_AsGeoJSON: драйвер не обязан понимать WKB.
type PostGISRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPostgresRepository(connStr string, log *zap.Logger) *PostGISRepository {
	db := sqlx.MustConnect("postgres", connStr)
	return &PostGISRepository{db: db, log: log}
}

// DB отдаёт соединение для переиспользования другими компонентами.
func (r *PostGISRepository) DB() *sqlx.DB {
	return r.db
}

func (r *PostGISRepository) Close() error {
	return r.db.Close()
}

// ProjectGeometry возвращает корневую геометрию проекта.
func (r *PostGISRepository) ProjectGeometry(ctx context.Context, id int64) (orb.MultiPolygon, error) {
	return r.scopeGeometry(ctx, model.ScopeProject, id)
}

// TerritoryGeometry возвращает корневую геометрию территории.
func (r *PostGISRepository) TerritoryGeometry(ctx context.Context, id int64) (orb.MultiPolygon, error) {
	return r.scopeGeometry(ctx, model.ScopeTerritory, id)
}

func (r *PostGISRepository) scopeGeometry(ctx context.Context, kind model.ScopeKind, id int64) (orb.MultiPolygon, error) {
	table := "projects"
	if kind == model.ScopeTerritory {
		table = "territories"
	}
	query := fmt.Sprintf(`SELECT ST_AsGeoJSON(geometry) FROM %s WHERE id = $1`, table)

	var raw []byte
	if err := r.db.GetContext(ctx, &raw, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &model.UnresolvedScopeError{Kind: kind, ID: id}
		}
		return nil, fmt.Errorf("failed to query %s geometry: %w", kind, err)
	}

	geom, err := decodeMultiPolygon(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s %d geometry: %w", kind, id, err)
	}
	return geom, nil
}

type zoneRow struct {
	ID         int64  `db:"id"`
	Geometry   []byte `db:"geometry"`
	Properties []byte `db:"properties"`
}

// ZonesWithin возвращает зоны, пересекающие ограничивающий прямоугольник.
// Источник PZZ читает официальные функциональные зоны, User — загруженные
// пользователем. Зона с нечитаемой геометрией возвращается без геометрии
// и отбраковывается на валидации в конвейере.
func (r *PostGISRepository) ZonesWithin(ctx context.Context, b orb.Bound, src model.Source) ([]model.LandUseZone, error) {
	if err := validateBound(b); err != nil {
		return nil, fmt.Errorf("invalid bound: %w", err)
	}

	table := "functional_zones"
	if src == model.SourceUser {
		table = "user_zones"
	}
	query := fmt.Sprintf(`
		SELECT id, ST_AsGeoJSON(geometry) AS geometry, properties
		FROM %s
		WHERE ST_Intersects(geometry, ST_MakeEnvelope($1, $2, $3, $4, 4326))
		ORDER BY id`, table)

	var rows []zoneRow
	err := r.db.SelectContext(ctx, &rows, query,
		b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query zones: %w", err)
	}
	return r.convertZoneRows(rows), nil
}

// ScenarioZones возвращает зоны сценария. Источник выбирает вариант
// зонирования: PZZ — официальное, загруженное вместе со сценарием,
// User — пользовательскую правку.
func (r *PostGISRepository) ScenarioZones(ctx context.Context, scenarioID int64, src model.Source) ([]model.LandUseZone, error) {
	const query = `
		SELECT id, ST_AsGeoJSON(geometry) AS geometry, properties
		FROM scenario_zones
		WHERE scenario_id = $1 AND source = $2
		ORDER BY id`

	var rows []zoneRow
	if err := r.db.SelectContext(ctx, &rows, query, scenarioID, string(src)); err != nil {
		return nil, fmt.Errorf("failed to query scenario zones: %w", err)
	}
	return r.convertZoneRows(rows), nil
}

type serviceRow struct {
	ID          int64  `db:"id"`
	ServiceType string `db:"service_type"`
	Geometry    []byte `db:"geometry"`
}

// ServicesWithin возвращает точки сервисов внутри ограничивающего
// прямоугольника, опционально одного типа.
func (r *PostGISRepository) ServicesWithin(ctx context.Context, b orb.Bound, serviceType string) ([]model.ServicePoint, error) {
	if err := validateBound(b); err != nil {
		return nil, fmt.Errorf("invalid bound: %w", err)
	}

	query := `
		SELECT id, service_type, ST_AsGeoJSON(geometry) AS geometry
		FROM services
		WHERE ST_Intersects(geometry, ST_MakeEnvelope($1, $2, $3, $4, 4326))`
	args := []any{b.Min.Lon(), b.Min.Lat(), b.Max.Lon(), b.Max.Lat()}
	if serviceType != "" {
		query += ` AND service_type = $5`
		args = append(args, serviceType)
	}
	query += ` ORDER BY id`

	var rows []serviceRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}

	services := make([]model.ServicePoint, 0, len(rows))
	for _, row := range rows {
		pt, err := decodePoint(row.Geometry)
		if err != nil {
			r.log.Warn("service geometry rejected",
				zap.Int64("service_id", row.ID), zap.Error(err))
			continue
		}
		services = append(services, model.ServicePoint{
			ID:       row.ID,
			Type:     row.ServiceType,
			Location: pt,
		})
	}
	return services, nil
}

// convertZoneRows разбирает строки зон. Мультиполигонная зона раскрывается
// в несколько зон с одним идентификатором.
func (r *PostGISRepository) convertZoneRows(rows []zoneRow) []model.LandUseZone {
	zones := make([]model.LandUseZone, 0, len(rows))
	for _, row := range rows {
		attrs, err := attributesFromJSON(row.Properties)
		if err != nil {
			r.log.Warn("zone properties rejected",
				zap.Int64("zone_id", row.ID), zap.Error(err))
			attrs = map[string]string{}
		}

		polys, err := decodePolygons(row.Geometry)
		if err != nil {
			zoneErr := &model.MalformedZoneError{ZoneID: row.ID, Reason: err.Error()}
			r.log.Warn("zone geometry rejected", zap.Error(zoneErr))
			zones = append(zones, model.LandUseZone{ID: row.ID, Attributes: attrs})
			continue
		}
		for _, poly := range polys {
			zones = append(zones, model.LandUseZone{
				ID:         row.ID,
				Geometry:   poly,
				Attributes: attrs,
			})
		}
	}
	return zones
}

// attributesFromJSON переводит jsonb-атрибуты в плоскую строковую карту.
// Числа и булевы значения приводятся к строкам, null пропускается.
func attributesFromJSON(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return map[string]string{}, nil
	}
	var props map[string]any
	if err := json.Unmarshal(raw, &props); err != nil {
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	attrs := make(map[string]string, len(props))
	for k, v := range props {
		switch val := v.(type) {
		case string:
			attrs[k] = val
		case float64:
			attrs[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			attrs[k] = strconv.FormatBool(val)
		case nil:
		default:
			b, err := json.Marshal(val)
			if err != nil {
				continue
			}
			attrs[k] = string(b)
		}
	}
	return attrs, nil
}

func decodeMultiPolygon(raw []byte) (orb.MultiPolygon, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode geometry: %w", err)
	}
	switch geom := g.Geometry().(type) {
	case orb.Polygon:
		return orb.MultiPolygon{geom}, nil
	case orb.MultiPolygon:
		return geom, nil
	default:
		return nil, fmt.Errorf("unexpected geometry type %T", geom)
	}
}

func decodePolygons(raw []byte) ([]orb.Polygon, error) {
	mp, err := decodeMultiPolygon(raw)
	if err != nil {
		return nil, err
	}
	return []orb.Polygon(mp), nil
}

func decodePoint(raw []byte) (orb.Point, error) {
	g, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return orb.Point{}, fmt.Errorf("failed to decode geometry: %w", err)
	}
	pt, ok := g.Geometry().(orb.Point)
	if !ok {
		return orb.Point{}, fmt.Errorf("unexpected geometry type %T", g.Geometry())
	}
	return pt, nil
}

// validateBound проверяет, что прямоугольник лежит в допустимых границах WGS84.
func validateBound(b orb.Bound) error {
	if b.Min.Lat() < -90 || b.Min.Lat() > 90 || b.Max.Lat() < -90 || b.Max.Lat() > 90 {
		return fmt.Errorf("latitude out of range [-90, 90]")
	}
	if b.Min.Lon() < -180 || b.Min.Lon() > 180 || b.Max.Lon() < -180 || b.Max.Lon() > 180 {
		return fmt.Errorf("longitude out of range [-180, 180]")
	}
	if b.Min.Lat() > b.Max.Lat() || b.Min.Lon() > b.Max.Lon() {
		return fmt.Errorf("min corner must not exceed max corner")
	}
	return nil
}
