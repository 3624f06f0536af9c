// Package regression fits ordinary-least-squares lines for the scatter view.
package regression

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Point is one (x, y) sample.
type Point struct {
	X, Y float64
}

// Line is a fitted y = Slope·x + Intercept over the sampled x range.
type Line struct {
	Group     string  `json:"group,omitempty"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	MinX      float64 `json:"min_x"`
	MaxX      float64 `json:"max_x"`
	N         int     `json:"n"`
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Fit returns the least-squares line through points. It reports false when
// no line is defined: fewer than two points, or every x identical.
func Fit(points []Point) (Line, bool) {
	if len(points) < 2 {
		return Line{}, false
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return Line{}, false
		}
		xs[i], ys[i] = p.X, p.Y
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}
	// Compare exact extremes rather than a computed variance, which can come
	// out as a tiny non-zero for identical inputs.
	if minX == maxX {
		return Line{}, false
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsInf(slope, 0) || math.IsNaN(intercept) {
		return Line{}, false
	}

	return Line{
		Slope:     slope,
		Intercept: intercept,
		MinX:      minX,
		MaxX:      maxX,
		N:         len(points),
	}, true
}

// FitGroups fits each group independently and returns the lines sorted by
// group name. Groups without a defined line are omitted.
func FitGroups(groups map[string][]Point) []Line {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	var lines []Line
	for _, name := range names {
		line, ok := Fit(groups[name])
		if !ok {
			continue
		}
		line.Group = name
		lines = append(lines, line)
	}
	return lines
}
