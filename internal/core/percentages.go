package core

import (
	"math"

	"landuse_service/internal/domain/model"
)

// PercentageAggregator переводит сырые площади категорий в проценты от
// классифицированной площади. Сумма результата — ровно 100.00 при ненулевой
// входной площади.
type PercentageAggregator struct{}

// Aggregate возвращает процент каждой категории с точностью до сотых.
// Каждая доля округляется до двух знаков, затем знаковый остаток до 100
// прибавляется к наибольшей доле; при равенстве наибольших остаток получает
// категория, стоящая раньше в фиксированном порядке перечисления.
// Нулевая суммарная площадь даёт нулевые проценты для всех категорий.
func (PercentageAggregator) Aggregate(perCategory map[model.Category]float64) map[model.Category]float64 {
	categories := model.Categories()
	out := make(map[model.Category]float64, len(categories))

	var total float64
	for _, c := range categories {
		if v := perCategory[c]; v > 0 {
			total += v
		}
	}
	if total <= 0 {
		for _, c := range categories {
			out[c] = 0
		}
		return out
	}

	// Сотые доли процента в целых числах, чтобы остаток распределялся точно
	hundredths := make([]int64, len(categories))
	var sum int64
	for i, c := range categories {
		v := perCategory[c]
		if v < 0 {
			v = 0
		}
		hundredths[i] = int64(math.Round(v / total * 10000))
		sum += hundredths[i]
	}

	residual := int64(10000) - sum
	if residual != 0 {
		largest := 0
		for i := 1; i < len(hundredths); i++ {
			if hundredths[i] > hundredths[largest] {
				largest = i
			}
		}
		hundredths[largest] += residual
	}

	for i, c := range categories {
		out[c] = float64(hundredths[i]) / 100
	}
	return out
}
