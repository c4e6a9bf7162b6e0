// Package urbanapi — клиент градостроительной платформы: разрешение
// геометрий проектов и территорий, сохранение значений индикаторов.
package urbanapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"landuse_service/internal/domain/model"
)

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ProjectGeometry возвращает корневую геометрию проекта с платформы.
func (c *Client) ProjectGeometry(ctx context.Context, id int64) (orb.MultiPolygon, error) {
	return c.scopeGeometry(ctx, model.ScopeProject, id,
		fmt.Sprintf("%s/api/projects/%d/geometry", c.baseURL, id))
}

// TerritoryGeometry возвращает корневую геометрию территории с платформы.
func (c *Client) TerritoryGeometry(ctx context.Context, id int64) (orb.MultiPolygon, error) {
	return c.scopeGeometry(ctx, model.ScopeTerritory, id,
		fmt.Sprintf("%s/api/territories/%d/geometry", c.baseURL, id))
}

func (c *Client) scopeGeometry(ctx context.Context, kind model.ScopeKind, id int64, url string) (orb.MultiPolygon, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("urban platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, &model.UnresolvedScopeError{Kind: kind, ID: id}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("urban platform returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	g, err := geojson.UnmarshalGeometry(body)
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

type indicatorValueRequest struct {
	IndicatorID int     `json:"indicator_id"`
	TerritoryID int64   `json:"territory_id"`
	Value       float64 `json:"value"`
	Comment     string  `json:"comment,omitempty"`
}

// SaveIndicatorValue передаёт вычисленное значение индикатора на платформу.
func (c *Client) SaveIndicatorValue(ctx context.Context, territoryID int64, indicatorID int, value float64, comment string) error {
	body, err := json.Marshal(indicatorValueRequest{
		IndicatorID: indicatorID,
		TerritoryID: territoryID,
		Value:       value,
		Comment:     comment,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal indicator value: %w", err)
	}

	url := fmt.Sprintf("%s/api/indicators/values", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("urban platform request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("urban platform returned status: %d", resp.StatusCode)
	}
	return nil
}
