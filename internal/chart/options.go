package chart

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sells-group/labormap/internal/metric"
)

// Size is a chart size in pixels.
type Size struct {
	Width  int
	Height int
}

// Density presets.
const (
	Compact  = "compact"
	Expanded = "expanded"
)

var (
	heatmapPresets = map[string]Size{
		Compact:  {Width: 500, Height: 300},
		Expanded: {Width: 800, Height: 600},
	}
	scatterPresets = map[string]Size{
		Compact:  {Width: 400, Height: 300},
		Expanded: {Width: 800, Height: 600},
	}
)

// DefaultProjection keeps the contiguous states compact.
const DefaultProjection = "albersUsa"

// Options controls presentation. The zero value uses the expanded preset and
// the default projection.
type Options struct {
	Density string
	// Width and Height override the preset when positive.
	Width      int
	Height     int
	Projection string
}

// HeatmapSize resolves the heatmap size for o.
func (o Options) HeatmapSize() Size {
	return o.resolve(heatmapPresets)
}

// ScatterSize resolves the scatter size for o.
func (o Options) ScatterSize() Size {
	return o.resolve(scatterPresets)
}

func (o Options) resolve(presets map[string]Size) Size {
	size, ok := presets[o.Density]
	if !ok {
		size = presets[Expanded]
	}
	if o.Width > 0 {
		size.Width = o.Width
	}
	if o.Height > 0 {
		size.Height = o.Height
	}
	return size
}

func (o Options) projection() string {
	if o.Projection == "" {
		return DefaultProjection
	}
	return o.Projection
}

// legend font sizes for the expanded preset
func (o Options) legend(title string) *Legend {
	l := &Legend{Title: title}
	if o.Density != Compact {
		l.LabelFontSize = 14
		l.TitleFontSize = 16
	}
	return l
}

var knownLabels = map[string]string{
	metric.UnemploymentRate: "Unemployment Rate",
	metric.MinWage:          "Minimum Wage",
}

var axisTitles = map[string]string{
	metric.UnemploymentRate: "Unemployment Rate (%)",
	metric.MinWage:          "Minimum Wage ($)",
}

// Label returns the human label for a metric column: a fixed label for the
// known metrics, otherwise the column name title-cased with underscores as
// spaces.
func Label(name string) string {
	if l, ok := knownLabels[name]; ok {
		return l
	}
	// Casers are stateful and must not be shared between goroutines.
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

func axisTitle(name string) string {
	if t, ok := axisTitles[name]; ok {
		return t
	}
	return Label(name)
}
