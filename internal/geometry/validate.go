package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

var (
	errEmptyPolygon  = errors.New("empty polygon")
	errShortRing     = errors.New("ring has fewer than 3 distinct vertices")
	errNonFinite     = errors.New("non-finite coordinate")
	errSelfIntersect = errors.New("self-intersecting ring")
)

// ValidatePolygon выполняет базовую проверку корректности полигона в градусах:
// непустота, минимум три различных вершины, конечные координаты,
// отсутствие самопересечений внешнего кольца и отверстий.
func ValidatePolygon(poly orb.Polygon) error {
	if len(poly) == 0 {
		return errEmptyPolygon
	}
	for i, ring := range poly {
		if err := validateRing(ring); err != nil {
			if i == 0 {
				return err
			}
			return fmt.Errorf("hole %d: %w", i, err)
		}
	}
	return nil
}

// ValidateMultiPolygon проверяет каждый полигон мультиполигона.
func ValidateMultiPolygon(mp orb.MultiPolygon) error {
	if len(mp) == 0 {
		return errEmptyPolygon
	}
	for i, poly := range mp {
		if err := ValidatePolygon(poly); err != nil {
			return fmt.Errorf("polygon %d: %w", i, err)
		}
	}
	return nil
}

func validateRing(ring orb.Ring) error {
	pts := ring
	if n := len(pts); n > 1 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	if len(pts) < 3 {
		return errShortRing
	}
	for _, pt := range pts {
		if !isFinite(pt.Lon()) || !isFinite(pt.Lat()) {
			return errNonFinite
		}
	}
	if ringSelfIntersects(pts) {
		return errSelfIntersect
	}
	return nil
}

// ringSelfIntersects перебором проверяет пары несмежных рёбер кольца.
func ringSelfIntersects(pts []orb.Point) bool {
	n := len(pts)
	for i := 0; i < n; i++ {
		a1 := pts[i]
		a2 := pts[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Смежные рёбра делят вершину, их пересечение не считается
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			b1 := pts[j]
			b2 := pts[(j+1)%n]
			if segmentsIntersect(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsIntersect(a1, a2, b1, b2 orb.Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Коллинеарные касания
	if d1 == 0 && onSegment(b1, b2, a1) {
		return true
	}
	if d2 == 0 && onSegment(b1, b2, a2) {
		return true
	}
	if d3 == 0 && onSegment(a1, a2, b1) {
		return true
	}
	if d4 == 0 && onSegment(a1, a2, b2) {
		return true
	}
	return false
}

func cross(o, a, b orb.Point) float64 {
	return (a.Lon()-o.Lon())*(b.Lat()-o.Lat()) - (a.Lat()-o.Lat())*(b.Lon()-o.Lon())
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a.Lon(), b.Lon()) <= p.Lon() && p.Lon() <= math.Max(a.Lon(), b.Lon()) &&
		math.Min(a.Lat(), b.Lat()) <= p.Lat() && p.Lat() <= math.Max(a.Lat(), b.Lat())
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
