package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit_ExactLine(t *testing.T) {
	var pts []Point
	for _, x := range []float64{-3, 0, 1.5, 4, 10} {
		pts = append(pts, Point{X: x, Y: 2*x + 3})
	}

	line, ok := Fit(pts)
	require.True(t, ok)
	assert.InDelta(t, 2.0, line.Slope, 1e-9)
	assert.InDelta(t, 3.0, line.Intercept, 1e-9)
	assert.Equal(t, -3.0, line.MinX)
	assert.Equal(t, 10.0, line.MaxX)
	assert.Equal(t, 5, line.N)
	assert.InDelta(t, 23.0, line.At(10), 1e-9)
}

func TestFit_NoisyMatchesClosedForm(t *testing.T) {
	pts := []Point{{1, 2}, {2, 3.9}, {3, 6.2}, {4, 7.8}, {5, 10.1}}

	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	mx, my := sx/5, sy/5
	var cov, vx float64
	for _, p := range pts {
		cov += (p.X - mx) * (p.Y - my)
		vx += (p.X - mx) * (p.X - mx)
	}
	wantSlope := cov / vx

	line, ok := Fit(pts)
	require.True(t, ok)
	assert.InDelta(t, wantSlope, line.Slope, 1e-9)
	assert.InDelta(t, my-wantSlope*mx, line.Intercept, 1e-9)
}

func TestFit_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
	}{
		{"nil", nil},
		{"single point", []Point{{7.25, 4.1}}},
		{"identical x", []Point{{7.25, 3.1}, {7.25, 5.9}, {7.25, 4.0}}},
		{"identical fractional x", []Point{{0.1, 1}, {0.1, 2}, {0.1, 3}}},
		{"nan input", []Point{{1, 2}, {math.NaN(), 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := Fit(tt.pts)
			assert.False(t, ok)
			assert.Equal(t, Line{}, line)
		})
	}
}

func TestFit_FlatLine(t *testing.T) {
	line, ok := Fit([]Point{{1, 5}, {2, 5}, {3, 5}})
	require.True(t, ok)
	assert.InDelta(t, 0.0, line.Slope, 1e-12)
	assert.InDelta(t, 5.0, line.Intercept, 1e-12)
}

func TestFitGroups(t *testing.T) {
	lines := FitGroups(map[string][]Point{
		"White":    {{7.25, 3.0}, {8.25, 4.0}, {9.25, 5.0}},
		"Black":    {{7.25, 6.0}, {8.25, 5.0}},
		"Asian":    {{7.25, 2.0}},
		"Hispanic": {{7.25, 4.0}, {7.25, 4.5}},
	})

	require.Len(t, lines, 2)
	assert.Equal(t, "Black", lines[0].Group)
	assert.InDelta(t, -1.0, lines[0].Slope, 1e-9)
	assert.Equal(t, "White", lines[1].Group)
	assert.InDelta(t, 1.0, lines[1].Slope, 1e-9)
	assert.InDelta(t, -4.25, lines[1].Intercept, 1e-9)
}

func TestFitGroups_Empty(t *testing.T) {
	assert.Empty(t, FitGroups(nil))
}
