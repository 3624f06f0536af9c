// Package chart builds declarative Vega-Lite chart specifications for the
// heatmap and scatter views.
package chart

// Schema is the Vega-Lite schema every Spec declares.
const Schema = "https://vega.github.io/schema/vega-lite/v5.json"

// MarkType is a Vega-Lite mark.
type MarkType string

// Marks used by the views.
const (
	MarkGeoshape MarkType = "geoshape"
	MarkPoint    MarkType = "point"
	MarkLine     MarkType = "line"
)

// FieldType is a Vega-Lite measurement type.
type FieldType string

// Measurement types used by the views.
const (
	Quantitative FieldType = "quantitative"
	Nominal      FieldType = "nominal"
	Ordinal      FieldType = "ordinal"
)

// Layer names, so renderers and tests can find a layer without relying on order.
const (
	LayerOutline    = "outline"
	LayerChoropleth = "choropleth"
	LayerPoints     = "points"
	LayerRegression = "regression"
)

// Spec is a complete chart. Layers share Data and Projection unless they
// carry their own.
type Spec struct {
	Schema     string      `json:"$schema"`
	Title      string      `json:"title"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Data       *Data       `json:"data,omitempty"`
	Projection *Projection `json:"projection,omitempty"`
	Layer      []Layer     `json:"layer"`
}

// Layer is one mark with its encodings.
type Layer struct {
	Name     string   `json:"name,omitempty"`
	Mark     Mark     `json:"mark"`
	Data     *Data    `json:"data,omitempty"`
	Encoding Encoding `json:"encoding,omitempty"`
}

// Mark carries the mark type and static properties.
type Mark struct {
	Type        MarkType `json:"type"`
	Filled      bool     `json:"filled,omitempty"`
	Size        float64  `json:"size,omitempty"`
	Fill        string   `json:"fill,omitempty"`
	Stroke      string   `json:"stroke,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
}

// Encoding maps visual channels to fields.
type Encoding struct {
	X       *FieldDef  `json:"x,omitempty"`
	Y       *FieldDef  `json:"y,omitempty"`
	Color   *FieldDef  `json:"color,omitempty"`
	Detail  *FieldDef  `json:"detail,omitempty"`
	Tooltip []FieldDef `json:"tooltip,omitempty"`
}

// FieldDef binds a channel to a data field.
type FieldDef struct {
	Field  string    `json:"field"`
	Type   FieldType `json:"type"`
	Title  string    `json:"title,omitempty"`
	Scale  *Scale    `json:"scale,omitempty"`
	Legend *Legend   `json:"legend,omitempty"`
}

// Scale holds scale options. Zero is a pointer so an explicit false is emitted.
type Scale struct {
	Zero   *bool  `json:"zero,omitempty"`
	Scheme string `json:"scheme,omitempty"`
}

// Legend holds legend options.
type Legend struct {
	Title         string  `json:"title,omitempty"`
	LabelFontSize float64 `json:"labelFontSize,omitempty"`
	TitleFontSize float64 `json:"titleFontSize,omitempty"`
}

// Data is inline data. Values is either a GeoJSON FeatureCollection (with
// Format selecting its features) or a slice of Row.
type Data struct {
	Values any     `json:"values"`
	Format *Format `json:"format,omitempty"`
}

// Format tells Vega-Lite how to parse inline values.
type Format struct {
	Type     string `json:"type"`
	Property string `json:"property,omitempty"`
}

// Projection is a cartographic projection.
type Projection struct {
	Type string `json:"type"`
}

// Row is one tabular datum. A nil value renders as missing.
type Row map[string]any

// LayerByName returns the named layer or nil.
func (s *Spec) LayerByName(name string) *Layer {
	for i := range s.Layer {
		if s.Layer[i].Name == name {
			return &s.Layer[i]
		}
	}
	return nil
}

// Rows returns the layer's tabular values, or nil when the layer carries
// none.
func (l *Layer) Rows() []Row {
	if l == nil || l.Data == nil {
		return nil
	}
	rows, _ := l.Data.Values.([]Row)
	return rows
}

func boolPtr(b bool) *bool { return &b }
