package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"landuse_service/internal/config"
	"landuse_service/internal/core"
	"landuse_service/internal/domain/model"
)

// Входной файл — FeatureCollection: полигон со свойством "scope": true задаёт
// границу вычисления, остальные полигоны — зоны, точки — сервисы.

func runScores(path string, bufferM float64) error {
	scopeGeom, zones, services, err := loadInputs(path)
	if err != nil {
		return err
	}
	if scopeGeom == nil {
		return fmt.Errorf("no feature with \"scope\": true in %s", path)
	}

	pipeline := core.NewPipeline(config.Load())
	scope := model.Scope{ID: 1, Kind: model.ScopeProject, Geometry: scopeGeom}
	bundle, err := pipeline.Scores(context.Background(), scope, bufferM, zones, services)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(bundle)
}

func runPercentages(path string) error {
	_, zones, _, err := loadInputs(path)
	if err != nil {
		return err
	}
	if len(zones) == 0 {
		return fmt.Errorf("no zone features in %s", path)
	}

	pipeline := core.NewPipeline(config.Load())
	scope := model.ScopeInfo{ID: 1, Kind: model.ScopeScenario}
	result, err := pipeline.Percentages(context.Background(), scope, zones)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func loadInputs(path string) (orb.MultiPolygon, []model.LandUseZone, []model.ServicePoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading input: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("decoding feature collection: %w", err)
	}

	var (
		scopeGeom orb.MultiPolygon
		zones     []model.LandUseZone
		services  []model.ServicePoint
	)
	nextID := int64(1)

	for _, f := range fc.Features {
		switch geom := f.Geometry.(type) {
		case orb.Point:
			services = append(services, model.ServicePoint{
				ID:       nextID,
				Type:     serviceType(f),
				Location: geom,
			})
			nextID++
		case orb.Polygon:
			if isScope(f) && scopeGeom == nil {
				scopeGeom = orb.MultiPolygon{geom}
				continue
			}
			zones = append(zones, model.LandUseZone{
				ID:         nextID,
				Geometry:   geom,
				Attributes: featureAttributes(f),
			})
			nextID++
		case orb.MultiPolygon:
			if isScope(f) && scopeGeom == nil {
				scopeGeom = geom
				continue
			}
			attrs := featureAttributes(f)
			for _, poly := range geom {
				zones = append(zones, model.LandUseZone{
					ID:         nextID,
					Geometry:   poly,
					Attributes: attrs,
				})
			}
			nextID++
		}
	}

	return scopeGeom, zones, services, nil
}

func isScope(f *geojson.Feature) bool {
	b, _ := f.Properties["scope"].(bool)
	return b
}

func serviceType(f *geojson.Feature) string {
	if t, ok := f.Properties["service_type"].(string); ok && t != "" {
		return t
	}
	if t, ok := f.Properties["amenity"].(string); ok && t != "" {
		return t
	}
	return "unknown"
}

func featureAttributes(f *geojson.Feature) map[string]string {
	attrs := make(map[string]string, len(f.Properties))
	for k, v := range f.Properties {
		switch val := v.(type) {
		case string:
			attrs[k] = val
		case float64:
			attrs[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			attrs[k] = strconv.FormatBool(val)
		}
	}
	return attrs
}
