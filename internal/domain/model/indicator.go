package model

// ScopeInfo идентифицирует scope, для которого вычислен результат.
type ScopeInfo struct {
	ID   int64     `json:"id"`
	Kind ScopeKind `json:"kind"`
}

// AreaBreakdown — сырой результат площадной агрегации по scope:
// площадь пересечения каждой зоны с границей, просуммированная по категориям.
type AreaBreakdown struct {
	Scope            ScopeInfo            `json:"scope"`
	TotalAreaM2      float64              `json:"total_area_m2"`      // площадь самой границы
	ClassifiedAreaM2 float64              `json:"classified_area_m2"` // сумма пересечений всех зон
	PerCategory      map[Category]float64 `json:"per_category_m2"`
	ZoneAreas        map[int64]float64    `json:"-"` // площадь пересечения по зонам, для расчёта реновации
	Degraded         bool                 `json:"degraded"`
	SkippedZones     []int64              `json:"skipped_zones,omitempty"`
}

// AreaResult — ответ площадного индикатора.
// TotalAreaKm2 округлена вверх до целого, как того требует индикатор площади территории.
type AreaResult struct {
	Scope            ScopeInfo            `json:"scope"`
	TotalAreaM2      float64              `json:"total_area_m2"`
	TotalAreaKm2     float64              `json:"total_area_km2"`
	ClassifiedAreaM2 float64              `json:"classified_area_m2"`
	PerCategory      map[Category]float64 `json:"per_category_m2"`
	Degraded         bool                 `json:"degraded"`
	SkippedZones     []int64              `json:"skipped_zones,omitempty"`
}

// ServiceCounts — число сервисов внутри scope по типам.
type ServiceCounts struct {
	Scope         ScopeInfo      `json:"scope"`
	Counts        map[string]int `json:"counts"`
	Total         int            `json:"total"`
	WeightedTotal float64        `json:"weighted_total"`
	Degraded      bool           `json:"degraded"`
	SkippedZones  []int64        `json:"skipped_zones,omitempty"`
}

// UrbanizationResult — уровень урбанизации scope.
type UrbanizationResult struct {
	Scope          ScopeInfo `json:"scope"`
	Score          float64   `json:"score"`           // [0,1]
	UrbanizedShare float64   `json:"urbanized_share"` // доля урбанизированных категорий в классифицированной площади
	ServiceDensity float64   `json:"service_density"` // взвешенных сервисов на км²
	Interpretation string    `json:"interpretation"`
	Degraded       bool      `json:"degraded"`
	SkippedZones   []int64   `json:"skipped_zones,omitempty"`
}

// RenovationResult — потенциал реновации scope.
// Urbanization — подслагаемое урбанизации, использованное в расчёте.
type RenovationResult struct {
	Scope          ScopeInfo `json:"scope"`
	Score          float64   `json:"score"` // [0,1]
	Urbanization   float64   `json:"urbanization"`
	EligibleAreaM2 float64   `json:"renovation_area_m2"`
	DiscomfortPct  float64   `json:"discomfort_pct"` // «Неудобия», % классифицированной площади
	Degraded       bool      `json:"degraded"`
	SkippedZones   []int64   `json:"skipped_zones,omitempty"`
}

// PercentagesResult — распределение категорий землепользования в процентах.
// Сумма значений Percentages равна ровно 100 при ненулевой площади.
type PercentagesResult struct {
	Scope        ScopeInfo            `json:"scope"`
	Percentages  map[Category]float64 `json:"percentages"`
	WaterPct     float64              `json:"water_pct"`
	GreenPct     float64              `json:"green_pct"`
	Degraded     bool                 `json:"degraded"`
	SkippedZones []int64              `json:"skipped_zones,omitempty"`
}

// UrbanizationWithContext — пара результатов проектного и контекстного scope.
// Результаты не сливаются в одно число: вызывающая сторона выбирает нужный.
type UrbanizationWithContext struct {
	Project *UrbanizationResult `json:"project"`
	Context *UrbanizationResult `json:"context"`
}

// RenovationWithContext — пара результатов потенциала реновации.
type RenovationWithContext struct {
	Project *RenovationResult `json:"project"`
	Context *RenovationResult `json:"context"`
}

// Идентификаторы индикаторов градостроительной платформы.
const (
	IndicatorTerritoryArea = 4  // площадь территории, км²
	IndicatorUrbanization  = 16 // уровень урбанизации
)
