package render

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/labormap/internal/boundary"
	"github.com/sells-group/labormap/internal/chart"
	"github.com/sells-group/labormap/internal/join"
	"github.com/sells-group/labormap/internal/metric"
)

func square(x, y, size float64) *geom.MultiPolygon {
	p := geom.NewPolygonFlat(geom.XY,
		[]float64{x, y, x, y + size, x + size, y + size, x + size, y, x, y}, []int{10})
	mp := geom.NewMultiPolygon(geom.XY)
	_ = mp.Push(p)
	return mp
}

func heatmapSpec(t *testing.T, withValues bool) *chart.Spec {
	t.Helper()
	regions := []boundary.Region{
		{ID: "06", Name: "California", Geometry: square(-124, 32, 8)},
		{ID: "48", Name: "Texas", Geometry: square(-106, 26, 10)},
		{ID: "56", Name: "Wyoming", Geometry: square(-111, 41, 5)},
	}
	var obs []metric.Observation
	if withValues {
		obs = []metric.Observation{
			{State: "California", Year: 2020, Values: map[string]float64{metric.UnemploymentRate: 10.1}},
			{State: "Texas", Year: 2020, Values: map[string]float64{metric.UnemploymentRate: 7.6}},
		}
	}
	res := join.Join(regions, obs)
	return chart.Heatmap(res.Records, metric.UnemploymentRate, 2020, chart.Options{Density: chart.Compact})
}

func scatterSpec() *chart.Spec {
	mk := func(year int, group string, wage, rate float64) metric.Observation {
		return metric.Observation{
			State: "Texas", Year: year, Group: group,
			Values: map[string]float64{metric.MinWage: wage, metric.UnemploymentRate: rate},
		}
	}
	return chart.Scatter([]metric.Observation{
		mk(2018, "White", 7.25, 3.1),
		mk(2019, "White", 7.50, 3.4),
		mk(2018, "Black", 7.25, 6.9),
		mk(2019, "Black", 7.50, 6.0),
	}, "Texas", chart.Options{Density: chart.Compact})
}

func decodePNG(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestPNG_Heatmap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, heatmapSpec(t, true)))

	w, h := decodePNG(t, buf.Bytes())
	assert.Equal(t, 500, w)
	assert.Equal(t, 300, h)
}

func TestPNG_HeatmapWithoutValues(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, heatmapSpec(t, false)))
	assert.NotZero(t, buf.Len())
}

func TestPNG_Scatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PNG(&buf, scatterSpec()))

	w, h := decodePNG(t, buf.Bytes())
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
}

func TestPNG_EmptyScatter(t *testing.T) {
	var buf bytes.Buffer
	spec := chart.Scatter(nil, "Nowhere", chart.Options{})
	require.NoError(t, PNG(&buf, spec))
}

func TestPNG_NoDrawableLayer(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(&buf, &chart.Spec{Title: "blank", Width: 10, Height: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no drawable layer")
}

func TestGroupXYs(t *testing.T) {
	rows := []chart.Row{
		{"x": 1.0, "y": 2.0, "g": "a"},
		{"x": 2.0, "y": 3.0, "g": "a"},
		{"x": 5.0, "g": "b"},
		{"x": 4.0, "y": 1.0, "g": "b"},
	}
	got := groupXYs(rows, "x", "y", "g")
	require.Len(t, got, 2)
	assert.Len(t, got["a"], 2)
	assert.Len(t, got["b"], 1)
}

func TestHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, "Labor <Map>", heatmapSpec(t, true), nil, scatterSpec()))

	out := buf.String()
	assert.Contains(t, out, "<title>Labor &lt;Map&gt;</title>")
	assert.Contains(t, out, "vega-embed@6")
	assert.Contains(t, out, `id="chart-0"`)
	assert.Contains(t, out, `id="chart-1"`)
	assert.NotContains(t, out, `id="chart-2"`)
	assert.Contains(t, out, chart.Schema)
	assert.Contains(t, out, "Unemployment Rate vs Minimum Wage for Texas")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, scatterSpec()))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, chart.Schema, doc["$schema"])
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  "))
}
