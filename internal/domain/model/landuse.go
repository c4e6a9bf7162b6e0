package model

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"
)

// Category — каноническая категория землепользования.
// Каждой зоне присваивается ровно одна категория; нераспознанные
// атрибуты дают CategoryUnclassified, а не ошибку.
type Category string

const (
	CategoryResidential  Category = "residential"
	CategoryIndustrial   Category = "industrial"
	CategoryCommercial   Category = "commercial"
	CategoryTransport    Category = "transport"
	CategoryAgriculture  Category = "agriculture"
	CategoryRecreational Category = "recreational"
	CategorySpecial      Category = "special"
	CategoryVacant       Category = "vacant"
	CategoryMixed        Category = "mixed"
	CategoryUnclassified Category = "unclassified"
)

// Categories возвращает все категории в фиксированном порядке.
// Порядок значим: он же служит tie-break при распределении остатка
// процентов между равными по площади категориями.
func Categories() []Category {
	return []Category{
		CategoryResidential,
		CategoryIndustrial,
		CategoryCommercial,
		CategoryTransport,
		CategoryAgriculture,
		CategoryRecreational,
		CategorySpecial,
		CategoryVacant,
		CategoryMixed,
		CategoryUnclassified,
	}
}

// UrbanizedCategories — категории, считающиеся урбанизированными
// при расчёте уровня урбанизации.
func UrbanizedCategories() []Category {
	return []Category{CategoryResidential, CategoryIndustrial, CategoryCommercial, CategoryMixed}
}

// LandUseZone — зона землепользования: геометрия плюс исходный набор
// атрибутов источника. Category заполняется классификатором.
type LandUseZone struct {
	ID         int64             `json:"id"`
	Geometry   orb.Polygon       `json:"geometry"`
	Attributes map[string]string `json:"attributes"`
	Category   Category          `json:"category"`
}

// ServicePoint — точка сервиса с типом. Используется только для подсчёта
// попаданий в границы scope, не изменяется движком.
type ServicePoint struct {
	ID       int64     `json:"id"`
	Type     string    `json:"type"`
	Location orb.Point `json:"location"`
}

// ScopeKind — вид границы вычисления.
type ScopeKind string

const (
	ScopeProject   ScopeKind = "project"
	ScopeTerritory ScopeKind = "territory"
	ScopeScenario  ScopeKind = "scenario"
	ScopeContext   ScopeKind = "context"
)

// Scope — разрешённая граница вычисления: идентификатор, вид и корневая
// геометрия WGS84. Контекстный scope несёт ту же корневую геометрию,
// буфер применяется конвейером уже в метрической проекции.
type Scope struct {
	ID       int64
	Kind     ScopeKind
	Geometry orb.MultiPolygon
}

// Info возвращает идентифицирующую часть scope для результатов и ошибок.
func (s Scope) Info() ScopeInfo {
	return ScopeInfo{ID: s.ID, Kind: s.Kind}
}

// Source — источник данных о зонах и сервисах.
type Source string

const (
	SourcePZZ  Source = "PZZ"  // зоны ПЗЗ из PostGIS
	SourceOSM  Source = "OSM"  // зоны и сервисы из Overpass
	SourceUser Source = "User" // загруженные пользователем зоны сценария
)

// ParseSource валидирует строковое значение источника.
// Пустая строка означает источник по умолчанию (PZZ).
func ParseSource(value string) (Source, error) {
	switch strings.TrimSpace(value) {
	case "":
		return SourcePZZ, nil
	case string(SourcePZZ):
		return SourcePZZ, nil
	case string(SourceOSM):
		return SourceOSM, nil
	case string(SourceUser):
		return SourceUser, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSource, value)
	}
}
