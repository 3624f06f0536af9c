package render

import (
	"image/color"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sells-group/labormap/internal/chart"
)

var (
	outlineColor = color.Gray{Y: 0x99}
	borderColor  = color.White
)

// PNG draws spec as a static image at the spec's pixel size. Choropleths are
// drawn in plain longitude/latitude; regions without a value are left
// unfilled.
func PNG(w io.Writer, spec *chart.Spec) error {
	var (
		p   *plot.Plot
		err error
	)
	switch {
	case spec.LayerByName(chart.LayerChoropleth) != nil:
		p, err = choroplethPlot(spec)
	case spec.LayerByName(chart.LayerPoints) != nil:
		p, err = scatterPlot(spec)
	default:
		return eris.Errorf("render: spec %q has no drawable layer", spec.Title)
	}
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(pixels(spec.Width), pixels(spec.Height), "png")
	if err != nil {
		return eris.Wrap(err, "render: create png canvas")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return eris.Wrap(err, "render: write png")
	}
	return nil
}

// pixels converts a pixel count at the default image DPI to a plot length.
func pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / 96
}

func choroplethPlot(spec *chart.Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.HideAxes()

	if spec.Data == nil {
		return nil, eris.New("render: heatmap has no data")
	}
	fc, ok := spec.Data.Values.(*geojson.FeatureCollection)
	if !ok {
		return nil, eris.Errorf("render: heatmap data is %T, want feature collection", spec.Data.Values)
	}
	metricName := strings.TrimPrefix(spec.LayerByName(chart.LayerChoropleth).Encoding.Color.Field, chart.FieldPath(""))

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, f := range fc.Features {
		if v, ok := f.Properties[metricName].(float64); ok {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	cm := moreland.SmoothBlueRed()
	if lo <= hi {
		if lo == hi {
			hi = lo + 1
		}
		cm.SetMin(lo)
		cm.SetMax(hi)
	}

	for _, f := range fc.Features {
		mp, ok := f.Geometry.(*geom.MultiPolygon)
		if !ok {
			continue
		}
		var fill color.Color
		if v, ok := f.Properties[metricName].(float64); ok {
			c, err := cm.At(v)
			if err != nil {
				return nil, eris.Wrapf(err, "render: color for %v", f.Properties[chart.PropName])
			}
			fill = c
		}
		for i := 0; i < mp.NumPolygons(); i++ {
			poly, err := polygon(mp.Polygon(i))
			if err != nil {
				return nil, err
			}
			poly.Color = fill
			poly.LineStyle.Width = vg.Points(0.5)
			poly.LineStyle.Color = borderColor
			if fill == nil {
				poly.LineStyle.Color = outlineColor
			}
			p.Add(poly)
		}
	}

	if lo <= hi {
		p.Legend.Add(chart.Label(metricName) + " " + rangeLabel(lo, hi))
	}
	return p, nil
}

func polygon(pg *geom.Polygon) (*plotter.Polygon, error) {
	rings := make([]plotter.XYer, 0, pg.NumLinearRings())
	for i := 0; i < pg.NumLinearRings(); i++ {
		coords := pg.LinearRing(i).Coords()
		xys := make(plotter.XYs, len(coords))
		for j, c := range coords {
			xys[j] = plotter.XY{X: c.X(), Y: c.Y()}
		}
		rings = append(rings, xys)
	}
	poly, err := plotter.NewPolygon(rings...)
	if err != nil {
		return nil, eris.Wrap(err, "render: build polygon")
	}
	return poly, nil
}

func rangeLabel(lo, hi float64) string {
	return "[" + strconv.FormatFloat(lo, 'g', 4, 64) + ", " + strconv.FormatFloat(hi, 'g', 4, 64) + "]"
}

func scatterPlot(spec *chart.Spec) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.Add(plotter.NewGrid())

	points := spec.LayerByName(chart.LayerPoints)
	enc := points.Encoding
	if enc.X == nil || enc.Y == nil || enc.Color == nil {
		return nil, eris.New("render: scatter layer lacks x, y or color")
	}
	p.X.Label.Text = enc.X.Title
	p.Y.Label.Text = enc.Y.Title
	p.Legend.Top = true

	byGroup := groupXYs(points.Rows(), enc.X.Field, enc.Y.Field, enc.Color.Field)
	lines := groupXYs(spec.LayerByName(chart.LayerRegression).Rows(), enc.X.Field, enc.Y.Field, enc.Color.Field)

	groups := make([]string, 0, len(byGroup))
	for g := range byGroup {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	for i, g := range groups {
		c := plotutil.Color(i)

		s, err := plotter.NewScatter(byGroup[g])
		if err != nil {
			return nil, eris.Wrapf(err, "render: scatter for group %s", g)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Color = c
		p.Add(s)
		p.Legend.Add(g, s)

		if xys, ok := lines[g]; ok && len(xys) >= 2 {
			l, err := plotter.NewLine(xys)
			if err != nil {
				return nil, eris.Wrapf(err, "render: regression line for group %s", g)
			}
			l.LineStyle.Width = vg.Points(2)
			l.LineStyle.Color = c
			p.Add(l)
		}
	}
	return p, nil
}

func groupXYs(rows []chart.Row, xField, yField, groupField string) map[string]plotter.XYs {
	out := make(map[string]plotter.XYs)
	for _, r := range rows {
		x, okX := r[xField].(float64)
		y, okY := r[yField].(float64)
		if !okX || !okY {
			continue
		}
		g, _ := r[groupField].(string)
		out[g] = append(out[g], plotter.XY{X: x, Y: y})
	}
	return out
}
