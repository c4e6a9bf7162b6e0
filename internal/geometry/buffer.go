package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
)

// Buffer расширяет полигон на dist метров. Результат — объединение исходного
// полигона с прямоугольниками вдоль каждого ребра и аппроксимированными
// кругами в каждой вершине, поэтому он всегда содержит исходную геометрию.
// Полосы вдоль рёбер отверстий сужают отверстия на ту же величину.
// segments — число сегментов аппроксимации круга.
func Buffer(p polyclip.Polygon, dist float64, segments int) polyclip.Polygon {
	if dist <= 0 || len(p) == 0 {
		return clonePolygon(p)
	}
	if segments < 4 {
		segments = 4
	}

	result := clonePolygon(p)
	for _, c := range p {
		n := len(c)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := c[i]
			b := c[(i+1)%n]
			if quad := edgeBand(a, b, dist); quad != nil {
				result = result.Construct(polyclip.UNION, polyclip.Polygon{quad})
			}
			circle := ApproximateCircle(a, dist, segments)
			result = result.Construct(polyclip.UNION, polyclip.Polygon{circle})
		}
	}
	return result
}

// edgeBand строит прямоугольник ширины 2·dist с осью вдоль ребра.
// Возвращает nil для вырожденного ребра.
func edgeBand(a, b polyclip.Point, dist float64) polyclip.Contour {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	// Единичная нормаль к ребру
	nx := -dy / length * dist
	ny := dx / length * dist
	return polyclip.Contour{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
}

// ApproximateCircle строит правильный многоугольник, аппроксимирующий круг
// заданного радиуса вокруг центра.
func ApproximateCircle(center polyclip.Point, radius float64, segments int) polyclip.Contour {
	contour := make(polyclip.Contour, 0, segments)
	for i := 0; i < segments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		contour = append(contour, polyclip.Point{
			X: center.X + radius*math.Cos(angle),
			Y: center.Y + radius*math.Sin(angle),
		})
	}
	return contour
}

func clonePolygon(p polyclip.Polygon) polyclip.Polygon {
	out := make(polyclip.Polygon, 0, len(p))
	for _, c := range p {
		contour := make(polyclip.Contour, len(c))
		copy(contour, c)
		out = append(out, contour)
	}
	return out
}
