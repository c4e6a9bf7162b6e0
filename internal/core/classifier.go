package core

import (
	"strconv"
	"strings"

	"landuse_service/internal/domain/model"
)

// ZoneClassifier присваивает зоне каноническую категорию землепользования
// по разнородным исходным атрибутам. Классификация тотальна и детерминирована:
// любой набор атрибутов, включая пустой, даёт ровно одну категорию,
// в худшем случае — unclassified.
type ZoneClassifier struct{}

// Русские наименования зон ПЗЗ и их категории.
var zoneNames = map[string]model.Category{
	"жилая зона":                               model.CategoryResidential,
	"зона застройки жилыми домами":             model.CategoryResidential,
	"производственная зона":                    model.CategoryIndustrial,
	"промышленная зона":                        model.CategoryIndustrial,
	"общественно-деловая зона":                 model.CategoryCommercial,
	"деловая зона":                             model.CategoryCommercial,
	"зона транспортной инфраструктуры":         model.CategoryTransport,
	"транспортная зона":                        model.CategoryTransport,
	"зона сельскохозяйственного использования": model.CategoryAgriculture,
	"сельскохозяйственная зона":                model.CategoryAgriculture,
	"рекреационная зона":                       model.CategoryRecreational,
	"зона рекреационного назначения":           model.CategoryRecreational,
	"зона специального назначения":             model.CategorySpecial,
	"специальная зона":                         model.CategorySpecial,
	"незастроенная территория":                 model.CategoryVacant,
	"свободная территория":                     model.CategoryVacant,
	"смешанная зона":                           model.CategoryMixed,
}

// Теги OSM landuse и их категории.
var landuseTags = map[string]model.Category{
	"industrial": model.CategoryIndustrial,
	"quarry":     model.CategoryIndustrial,

	"residential":  model.CategoryResidential,
	"apartments":   model.CategoryResidential,
	"detached":     model.CategoryResidential,
	"construction": model.CategoryResidential,
	"allotments":   model.CategoryResidential,
	"garages":      model.CategoryResidential,

	"commercial": model.CategoryCommercial,
	"retail":     model.CategoryCommercial,
	"fairground": model.CategoryCommercial,

	"railway": model.CategoryTransport,
	"port":    model.CategoryTransport,
	"depot":   model.CategoryTransport,

	"farmland":                model.CategoryAgriculture,
	"farmyard":                model.CategoryAgriculture,
	"orchard":                 model.CategoryAgriculture,
	"vineyard":                model.CategoryAgriculture,
	"greenhouse_horticulture": model.CategoryAgriculture,
	"meadow":                  model.CategoryAgriculture,
	"plant_nursery":           model.CategoryAgriculture,

	"military": model.CategorySpecial,
	"cemetery": model.CategorySpecial,
	"landfill": model.CategorySpecial,

	"grass":             model.CategoryRecreational,
	"forest":            model.CategoryRecreational,
	"recreation_ground": model.CategoryRecreational,
	"village_green":     model.CategoryRecreational,
	"basin":             model.CategoryRecreational,
	"reservoir":         model.CategoryRecreational,
	"salt_pond":         model.CategoryRecreational,

	// Неосвоенные и заброшенные земли — резерв для редевелопмента
	"greenfield": model.CategoryVacant,
	"brownfield": model.CategoryVacant,
}

var englishNames = func() map[string]model.Category {
	names := make(map[string]model.Category, len(model.Categories()))
	for _, c := range model.Categories() {
		names[string(c)] = c
	}
	return names
}()

// Classify возвращает категорию по атрибутам зоны. Порядок распознавания:
// явная категория (category/zone_type, английское имя или русское
// наименование зоны), затем тег landuse, затем natural. Всё прочее —
// unclassified.
func (ZoneClassifier) Classify(attrs map[string]string) model.Category {
	if len(attrs) == 0 {
		return model.CategoryUnclassified
	}

	for _, key := range []string{"category", "zone_type"} {
		value := strings.ToLower(strings.TrimSpace(attrs[key]))
		if value == "" {
			continue
		}
		if c, ok := englishNames[value]; ok {
			return c
		}
		if c, ok := zoneNames[value]; ok {
			return c
		}
	}

	if tag := strings.ToLower(strings.TrimSpace(attrs["landuse"])); tag != "" {
		if c, ok := landuseTags[tag]; ok {
			return c
		}
	}

	if strings.TrimSpace(attrs["natural"]) != "" {
		return model.CategoryRecreational
	}

	return model.CategoryUnclassified
}

// ClassifyZones присваивает категорию каждой зоне списка.
// Повторная классификация уже размеченной зоны даёт ту же категорию.
func (c ZoneClassifier) ClassifyZones(zones []model.LandUseZone) []model.LandUseZone {
	for i := range zones {
		zones[i].Category = c.Classify(zones[i].Attributes)
	}
	return zones
}

// Condition возвращает состояние застройки зоны в [0,1]: 1 — исправное,
// 0 — ветхое. Принимает атрибут condition либо обратный ему wear.
// При отсутствии атрибутов — нейтральная середина 0.5.
func (ZoneClassifier) Condition(attrs map[string]string) float64 {
	if raw, ok := attrs["condition"]; ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return clamp01(v)
		}
	}
	if raw, ok := attrs["wear"]; ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return clamp01(1 - v)
		}
	}
	return 0.5
}

// Storeys возвращает этажность зоны по атрибутам building:levels или storeys,
// 0 — если этажность не указана или не разбирается.
func (ZoneClassifier) Storeys(attrs map[string]string) int {
	for _, key := range []string{"building:levels", "storeys"} {
		if raw, ok := attrs[key]; ok {
			if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && v > 0 {
				return v
			}
		}
	}
	return 0
}

// IsWater сообщает, относится ли зона к водным объектам.
func (ZoneClassifier) IsWater(attrs map[string]string) bool {
	switch strings.ToLower(strings.TrimSpace(attrs["landuse"])) {
	case "basin", "reservoir", "salt_pond":
		return true
	}
	switch strings.ToLower(strings.TrimSpace(attrs["natural"])) {
	case "water", "bay", "wetland":
		return true
	}
	return strings.TrimSpace(attrs["water"]) != ""
}

// IsGreen сообщает, относится ли зона к озеленённым территориям.
func (ZoneClassifier) IsGreen(attrs map[string]string) bool {
	switch strings.ToLower(strings.TrimSpace(attrs["landuse"])) {
	case "grass", "forest", "meadow", "recreation_ground", "village_green", "orchard":
		return true
	}
	switch strings.ToLower(strings.TrimSpace(attrs["natural"])) {
	case "wood", "scrub", "grassland", "heath":
		return true
	}
	switch strings.ToLower(strings.TrimSpace(attrs["leisure"])) {
	case "park", "garden":
		return true
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
