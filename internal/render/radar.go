package render

import (
	"fmt"
	"math"
	"strings"
)

// Point is a position in SVG user space.
type Point struct {
	X, Y float64
}

// RadarPoints places one vertex per score on evenly spaced axes, starting
// at twelve o'clock and going clockwise. Scores are clamped to [0, max] so
// out-of-range values stay inside the chart.
func RadarPoints(scores []int, max, cx, cy, radius float64) []Point {
	pts := make([]Point, len(scores))
	if len(scores) == 0 || max <= 0 {
		return pts
	}
	for i, s := range scores {
		v := math.Min(math.Max(float64(s), 0), max)
		pts[i] = axisPoint(i, len(scores), cx, cy, radius*v/max)
	}
	return pts
}

func axisPoint(i, n int, cx, cy, r float64) Point {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	return Point{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
}

// polygon formats points for an SVG points attribute.
func polygon(pts []Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = fmt.Sprintf("%.1f,%.1f", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}

type radarAxis struct {
	X, Y           float64
	LabelX, LabelY float64
	Anchor         string
	Label          string
	Score          int
}

type radarTick struct {
	Y     float64
	Label int
}

type radarView struct {
	Size     float64
	Center   float64
	Rings    []string
	Axes     []radarAxis
	Ticks    []radarTick
	Polygon  string
	Vertices []Point
}

const (
	radarSize   = 420.0
	radarRadius = 150.0
)

// buildRadar lays out the chart: one ring per scale step, one axis per
// indicator and the score polygon.
func buildRadar(labels []string, scores []int, max int) radarView {
	c := radarSize / 2
	v := radarView{Size: radarSize, Center: c}
	n := len(scores)
	if n == 0 || max <= 0 {
		return v
	}

	for step := 1; step <= max; step++ {
		r := radarRadius * float64(step) / float64(max)
		ring := make([]Point, n)
		for i := range ring {
			ring[i] = axisPoint(i, n, c, c, r)
		}
		v.Rings = append(v.Rings, polygon(ring))
		v.Ticks = append(v.Ticks, radarTick{Y: c - r, Label: step})
	}

	for i := 0; i < n; i++ {
		end := axisPoint(i, n, c, c, radarRadius)
		lbl := axisPoint(i, n, c, c, radarRadius+24)
		anchor := "middle"
		switch {
		case lbl.X < c-1:
			anchor = "end"
		case lbl.X > c+1:
			anchor = "start"
		}
		v.Axes = append(v.Axes, radarAxis{
			X: end.X, Y: end.Y,
			LabelX: lbl.X, LabelY: lbl.Y + 5,
			Anchor: anchor,
			Label:  labels[i],
			Score:  scores[i],
		})
	}

	v.Vertices = RadarPoints(scores, float64(max), c, c, radarRadius)
	v.Polygon = polygon(v.Vertices)
	return v
}
