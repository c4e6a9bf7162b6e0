package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

// Точка ближе boundaryEps метров к границе считается лежащей на ней.
const boundaryEps = 1e-7

// SignedArea возвращает ориентированную площадь контура по формуле шнуровки.
// Положительная — обход против часовой стрелки.
func SignedArea(c polyclip.Contour) float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return sum / 2
}

// Area возвращает площадь полигона в м². Отверстия, ориентированные
// противоположно внешним кольцам, вычитаются.
func Area(p polyclip.Polygon) float64 {
	var sum float64
	for _, c := range p {
		sum += SignedArea(c)
	}
	return math.Abs(sum)
}

// Intersection возвращает пересечение двух полигонов.
func Intersection(subject, clip polyclip.Polygon) polyclip.Polygon {
	if len(subject) == 0 || len(clip) == 0 {
		return nil
	}
	return subject.Construct(polyclip.INTERSECTION, clip)
}

// IntersectionArea возвращает площадь пересечения двух полигонов в м².
func IntersectionArea(subject, clip polyclip.Polygon) float64 {
	return Area(Intersection(subject, clip))
}

// Contains сообщает, лежит ли точка внутри полигона.
// Граница считается принадлежащей полигону: точка ровно на ребре — внутри.
// Отверстия учитываются чётностью пересечений.
func Contains(p polyclip.Polygon, pt polyclip.Point) bool {
	for _, c := range p {
		if onContour(c, pt) {
			return true
		}
	}

	inside := false
	for _, c := range p {
		if rayCrossings(c, pt)%2 == 1 {
			inside = !inside
		}
	}
	return inside
}

// onContour проверяет попадание точки на ребро контура.
func onContour(c polyclip.Contour, pt polyclip.Point) bool {
	n := len(c)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		if distToSegment(pt, c[i], c[j]) <= boundaryEps {
			return true
		}
	}
	return false
}

// rayCrossings считает пересечения горизонтального луча из точки с рёбрами контура.
func rayCrossings(c polyclip.Contour, pt polyclip.Point) int {
	n := len(c)
	if n < 3 {
		return 0
	}
	crossings := 0
	for i := 0; i < n; i++ {
		a := c[i]
		b := c[(i+1)%n]
		if (a.Y > pt.Y) == (b.Y > pt.Y) {
			continue
		}
		x := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
		if x > pt.X {
			crossings++
		}
	}
	return crossings
}

func distToSegment(pt, a, b polyclip.Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(pt.X-a.X, pt.Y-a.Y)
	}
	t := ((pt.X-a.X)*dx + (pt.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(pt.X-(a.X+t*dx), pt.Y-(a.Y+t*dy))
}
