package repository

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/paulmach/orb"
	overpass "github.com/serjvanilla/go-overpass"
	"go.uber.org/zap"

	"landuse_service/internal/domain/model"
)

// OverpassRepository читает зоны землепользования и точки сервисов из OSM
// через Overpass API. Зоны строятся из замкнутых way с тегами landuse и
// natural; мультиполигонные relation не разворачиваются. Сервисы берутся
// из node и way с тегом amenity, way сводится к центроиду.
type OverpassRepository struct {
	client  *overpass.Client
	timeout time.Duration
	log     *zap.Logger
}

func NewOverpassRepository(endpoint string, timeout time.Duration, log *zap.Logger) *OverpassRepository {
	httpClient := &http.Client{
		Timeout: timeout,
	}
	client := overpass.NewWithSettings(endpoint, 2, httpClient)
	return &OverpassRepository{
		client:  &client,
		timeout: timeout,
		log:     log,
	}
}

// ZonesWithin возвращает зоны землепользования в ограничивающем
// прямоугольнике. Параметр src не используется: Overpass всегда отдаёт OSM.
func (r *OverpassRepository) ZonesWithin(ctx context.Context, b orb.Bound, _ model.Source) ([]model.LandUseZone, error) {
	if err := validateBound(b); err != nil {
		return nil, fmt.Errorf("invalid bound: %w", err)
	}

	bbox := formatBBox(b)
	query := fmt.Sprintf(`
		[out:json];
		(
			way["landuse"](%s);
			way["natural"](%s);
		);
		out body;
		>;
		out skel qt;
	`, bbox, bbox)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute landuse query: %w", err)
	}

	return r.convertToZones(result), nil
}

// ServicesWithin возвращает точки сервисов в ограничивающем прямоугольнике,
// опционально одного типа.
func (r *OverpassRepository) ServicesWithin(ctx context.Context, b orb.Bound, serviceType string) ([]model.ServicePoint, error) {
	if err := validateBound(b); err != nil {
		return nil, fmt.Errorf("invalid bound: %w", err)
	}

	bbox := formatBBox(b)
	filter := serviceTypeFilter(serviceType)
	query := fmt.Sprintf(`
		[out:json];
		(
			node["amenity"~"%s"](%s);
			way["amenity"~"%s"](%s);
		);
		out body;
		>;
		out skel qt;
	`,
		filter, bbox,
		filter, bbox)

	result, err := r.executeQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute services query: %w", err)
	}

	return convertToServices(result), nil
}

func (r *OverpassRepository) executeQuery(ctx context.Context, query string) (*overpass.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.client.Query(query)
	if err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return &result, nil
}

// convertToZones собирает полигоны из замкнутых way. Way, не образующий
// кольцо, отбраковывается с предупреждением. Обход в порядке возрастания
// идентификаторов: Overpass отдаёт элементы картой.
func (r *OverpassRepository) convertToZones(result *overpass.Result) []model.LandUseZone {
	ids := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	zones := make([]model.LandUseZone, 0, len(ids))
	for _, id := range ids {
		way := result.Ways[id]
		ring, err := wayRing(way)
		if err != nil {
			zoneErr := &model.MalformedZoneError{ZoneID: id, Reason: err.Error()}
			r.log.Warn("osm way rejected", zap.Error(zoneErr))
			continue
		}
		zones = append(zones, model.LandUseZone{
			ID:         id,
			Geometry:   orb.Polygon{ring},
			Attributes: way.Tags,
		})
	}
	return zones
}

// wayRing строит замкнутое кольцо из узлов way.
func wayRing(way *overpass.Way) (orb.Ring, error) {
	if len(way.Nodes) < 3 {
		return nil, fmt.Errorf("way has %d nodes, need at least 3", len(way.Nodes))
	}

	ring := make(orb.Ring, 0, len(way.Nodes)+1)
	for _, node := range way.Nodes {
		if node == nil {
			return nil, fmt.Errorf("way references unresolved node")
		}
		ring = append(ring, orb.Point{node.Lon, node.Lat})
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	if len(ring) < 4 {
		return nil, fmt.Errorf("way does not form a closed ring")
	}
	return ring, nil
}

func convertToServices(result *overpass.Result) []model.ServicePoint {
	var services []model.ServicePoint

	nodeIDs := make([]int64, 0, len(result.Nodes))
	for id := range result.Nodes {
		nodeIDs = append(nodeIDs, id)
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })

	for _, id := range nodeIDs {
		node := result.Nodes[id]
		amenity := node.Tags["amenity"]
		if amenity == "" {
			// скелетные узлы way приходят без тегов
			continue
		}
		services = append(services, model.ServicePoint{
			ID:       id,
			Type:     amenity,
			Location: orb.Point{node.Lon, node.Lat},
		})
	}

	wayIDs := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		wayIDs = append(wayIDs, id)
	}
	sort.Slice(wayIDs, func(i, j int) bool { return wayIDs[i] < wayIDs[j] })

	for _, id := range wayIDs {
		way := result.Ways[id]
		amenity := way.Tags["amenity"]
		if amenity == "" || len(way.Nodes) == 0 {
			continue
		}

		var lat, lon float64
		count := 0
		for _, node := range way.Nodes {
			if node == nil {
				continue
			}
			lat += node.Lat
			lon += node.Lon
			count++
		}
		if count == 0 {
			continue
		}
		services = append(services, model.ServicePoint{
			ID:       id,
			Type:     amenity,
			Location: orb.Point{lon / float64(count), lat / float64(count)},
		})
	}

	return services
}

// serviceTypeFilter переводит тип сервиса в фильтр по тегу amenity.
func serviceTypeFilter(serviceType string) string {
	switch serviceType {
	case "":
		return ".*"
	case "school":
		return "school"
	case "kindergarten":
		return "kindergarten"
	case "clinic":
		return "clinic|doctors"
	case "hospital":
		return "hospital"
	case "pharmacy":
		return "pharmacy"
	case "shop":
		return "marketplace"
	default:
		return serviceType
	}
}

// formatBBox переводит прямоугольник в формат Overpass (юг,запад,север,восток).
func formatBBox(b orb.Bound) string {
	return fmt.Sprintf("%f,%f,%f,%f", b.Min.Lat(), b.Min.Lon(), b.Max.Lat(), b.Max.Lon())
}
