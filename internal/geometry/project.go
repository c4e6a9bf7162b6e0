// Package geometry содержит плоскую геометрию движка: локальную проекцию
// градусов в метры, площади, пересечения, буферы и проверки корректности.
//
// Все вычисления площадей и расстояний выполняются в локальной
// равнопромежуточной проекции с центром в опорной точке scope, поэтому
// результаты — в метрах и квадратных метрах.
package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/paulmach/orb"
)

// Projector переводит координаты WGS84 (градусы) в локальную плоскость (метры)
// относительно опорной точки.
type Projector struct {
	lon0, lat0 float64
	kx, ky     float64
}

// NewProjector строит проекцию с центром в опорной точке.
func NewProjector(ref orb.Point) Projector {
	latMid := ref.Lat() * math.Pi / 180

	// Коэффициенты перевода градусов в метры
	kx := 111132.92 - 559.82*math.Cos(2*latMid)
	ky := 111412.84 * math.Cos(latMid)

	return Projector{
		lon0: ref.Lon(),
		lat0: ref.Lat(),
		kx:   kx,
		ky:   ky,
	}
}

// Point проецирует точку в метры.
func (p Projector) Point(pt orb.Point) polyclip.Point {
	return polyclip.Point{
		X: (pt.Lon() - p.lon0) * p.ky,
		Y: (pt.Lat() - p.lat0) * p.kx,
	}
}

// Unproject возвращает точку из метров обратно в градусы.
func (p Projector) Unproject(pt polyclip.Point) orb.Point {
	return orb.Point{pt.X/p.ky + p.lon0, pt.Y/p.kx + p.lat0}
}

// Ring проецирует кольцо. Замыкающая точка orb-кольца опускается:
// контур polyclip замкнут неявно.
func (p Projector) Ring(r orb.Ring) polyclip.Contour {
	n := len(r)
	if n > 1 && r[0] == r[n-1] {
		n--
	}
	contour := make(polyclip.Contour, 0, n)
	for i := 0; i < n; i++ {
		contour = append(contour, p.Point(r[i]))
	}
	return contour
}

// Polygon проецирует полигон, приводя ориентацию колец к канонической:
// внешнее кольцо против часовой стрелки, отверстия — по часовой.
func (p Projector) Polygon(poly orb.Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(poly))
	for i, ring := range poly {
		contour := p.Ring(ring)
		signed := SignedArea(contour)
		if i == 0 && signed < 0 || i > 0 && signed > 0 {
			reverse(contour)
		}
		out = append(out, contour)
	}
	return out
}

// MultiPolygon проецирует мультиполигон в единый набор контуров.
func (p Projector) MultiPolygon(mp orb.MultiPolygon) polyclip.Polygon {
	var out polyclip.Polygon
	for _, poly := range mp {
		out = append(out, p.Polygon(poly)...)
	}
	return out
}

// ExpandBound расширяет ограничивающий прямоугольник на meters метров
// в каждую сторону. Используется для выборки зон и сервисов вокруг scope.
func (p Projector) ExpandBound(b orb.Bound, meters float64) orb.Bound {
	dLat := meters / p.kx
	dLon := meters / p.ky
	return orb.Bound{
		Min: orb.Point{b.Min.Lon() - dLon, b.Min.Lat() - dLat},
		Max: orb.Point{b.Max.Lon() + dLon, b.Max.Lat() + dLat},
	}
}

func reverse(c polyclip.Contour) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}
