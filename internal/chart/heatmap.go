package chart

import (
	"fmt"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/labormap/internal/join"
)

// Feature property names on heatmap data.
const (
	PropName     = "NAME"
	PropRegionID = "region_id"
)

// FieldPath is how a Vega-Lite field reaches into a GeoJSON feature property.
func FieldPath(prop string) string {
	return "properties." + prop
}

// Heatmap builds the choropleth for metricName in year. Every record becomes
// a feature; records without an observation carry a null metric, so the
// outline layer still draws the region while the choropleth layer skips it.
func Heatmap(records []join.Record, metricName string, year int, opts Options) *Spec {
	size := opts.HeatmapSize()
	label := Label(metricName)

	nameField := FieldDef{Field: FieldPath(PropName), Type: Nominal, Title: "State"}
	metricField := FieldDef{Field: FieldPath(metricName), Type: Quantitative, Title: label}
	colorField := metricField
	colorField.Legend = opts.legend(label)

	return &Spec{
		Schema: Schema,
		Title:  fmt.Sprintf("%s (%d)", label, year),
		Width:  size.Width,
		Height: size.Height,
		Data: &Data{
			Values: Features(records, metricName),
			Format: &Format{Type: "json", Property: "features"},
		},
		Projection: &Projection{Type: opts.projection()},
		Layer: []Layer{
			{
				Name:     LayerOutline,
				Mark:     Mark{Type: MarkGeoshape, Fill: "#eeeeee", Stroke: "white", StrokeWidth: 0.5},
				Encoding: Encoding{Tooltip: []FieldDef{nameField}},
			},
			{
				Name: LayerChoropleth,
				Mark: Mark{Type: MarkGeoshape, Stroke: "white", StrokeWidth: 0.5},
				Encoding: Encoding{
					Color:   &colorField,
					Tooltip: []FieldDef{nameField, metricField},
				},
			},
		},
	}
}

// Features converts joined records to GeoJSON features carrying the region
// name, region ID and the metric value (nil when absent).
func Features(records []join.Record, metricName string) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(records))}
	for _, rec := range records {
		props := map[string]interface{}{
			PropName:     rec.Region.Name,
			PropRegionID: rec.Region.ID,
			metricName:   nil,
		}
		if rec.Observation != nil {
			if v, ok := rec.Observation.Value(metricName); ok {
				props[metricName] = v
			}
		}

		f := &geojson.Feature{ID: rec.Region.ID, Properties: props}
		// A typed nil inside geom.T would panic in the encoder.
		if rec.Region.Geometry != nil {
			f.Geometry = rec.Region.Geometry
		}
		fc.Features = append(fc.Features, f)
	}
	return fc
}

// FeatureValue returns the metric value carried by the feature for region
// name, and whether the region is present with a non-null value.
func FeatureValue(fc *geojson.FeatureCollection, name, metricName string) (float64, bool) {
	if fc == nil {
		return 0, false
	}
	for _, f := range fc.Features {
		if f.Properties[PropName] != name {
			continue
		}
		v, ok := f.Properties[metricName].(float64)
		return v, ok
	}
	return 0, false
}
