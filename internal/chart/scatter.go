package chart

import (
	"fmt"

	"github.com/sells-group/labormap/internal/metric"
	"github.com/sells-group/labormap/internal/regression"
)

// Scatter row field names.
const (
	FieldYear  = "Year"
	FieldGroup = "Group"
	// DefaultGroup labels rows from a table without a Group column.
	DefaultGroup = "All"
)

// Scatter builds the minimum wage vs. unemployment scatter plot for one
// state's observations, with an independent regression line per group.
// Rows missing either metric are not plotted.
func Scatter(obs []metric.Observation, state string, opts Options) *Spec {
	size := opts.ScatterSize()

	x := FieldDef{
		Field: metric.MinWage,
		Type:  Quantitative,
		Title: axisTitle(metric.MinWage),
		Scale: &Scale{Zero: boolPtr(false)},
	}
	y := FieldDef{Field: metric.UnemploymentRate, Type: Quantitative, Title: axisTitle(metric.UnemploymentRate)}
	color := FieldDef{Field: FieldGroup, Type: Nominal, Title: "Race", Legend: opts.legend("Race")}

	rows := []Row{}
	for _, o := range obs {
		xv, okX := o.Value(metric.MinWage)
		yv, okY := o.Value(metric.UnemploymentRate)
		if !okX || !okY {
			continue
		}
		rows = append(rows, Row{
			FieldYear:               o.Year,
			metric.MinWage:          xv,
			metric.UnemploymentRate: yv,
			FieldGroup:              groupOf(o),
		})
	}

	spec := &Spec{
		Schema: Schema,
		Title:  fmt.Sprintf("Unemployment Rate vs Minimum Wage for %s", state),
		Width:  size.Width,
		Height: size.Height,
		Layer: []Layer{{
			Name: LayerPoints,
			Mark: Mark{Type: MarkPoint, Filled: true, Size: 100},
			Data: &Data{Values: rows},
			Encoding: Encoding{
				X:     &x,
				Y:     &y,
				Color: &color,
				Tooltip: []FieldDef{
					{Field: FieldYear, Type: Ordinal},
					{Field: metric.UnemploymentRate, Type: Quantitative},
					{Field: metric.MinWage, Type: Quantitative},
					{Field: FieldGroup, Type: Nominal},
				},
			},
		}},
	}

	lines := Regressions(obs)
	if len(lines) == 0 {
		return spec
	}

	lineRows := make([]Row, 0, 2*len(lines))
	for _, l := range lines {
		for _, xv := range []float64{l.MinX, l.MaxX} {
			lineRows = append(lineRows, Row{
				metric.MinWage:          xv,
				metric.UnemploymentRate: l.At(xv),
				FieldGroup:              l.Group,
			})
		}
	}
	lineColor := FieldDef{Field: FieldGroup, Type: Nominal, Title: "Race"}
	spec.Layer = append(spec.Layer, Layer{
		Name: LayerRegression,
		Mark: Mark{Type: MarkLine},
		Data: &Data{Values: lineRows},
		Encoding: Encoding{
			X:     &x,
			Y:     &y,
			Color: &lineColor,
		},
	})
	return spec
}

// Regressions fits Unemployment_Rate on Min_Wage for each group present in
// obs. Groups with fewer than two points or a single distinct wage have no
// line and are left out.
func Regressions(obs []metric.Observation) []regression.Line {
	groups := make(map[string][]regression.Point)
	for _, o := range obs {
		xv, okX := o.Value(metric.MinWage)
		yv, okY := o.Value(metric.UnemploymentRate)
		if !okX || !okY {
			continue
		}
		g := groupOf(o)
		groups[g] = append(groups[g], regression.Point{X: xv, Y: yv})
	}
	return regression.FitGroups(groups)
}

func groupOf(o metric.Observation) string {
	if o.Group == "" {
		return DefaultGroup
	}
	return o.Group
}
