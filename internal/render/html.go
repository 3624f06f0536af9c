// Package render writes chart specs as standalone HTML pages or PNG images.
package render

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"

	"github.com/rotisserie/eris"

	"github.com/sells-group/labormap/internal/chart"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

type page struct {
	Title  string
	Charts []template.JS
}

// HTML writes a page that embeds each spec with vega-embed. Nil specs are
// skipped.
func HTML(w io.Writer, title string, specs ...*chart.Spec) error {
	p := page{Title: title}
	for _, s := range specs {
		if s == nil {
			continue
		}
		data, err := json.Marshal(s)
		if err != nil {
			return eris.Wrap(err, "render: marshal spec")
		}
		// encoding/json escapes <, > and &, so the literal is safe in a script.
		p.Charts = append(p.Charts, template.JS(data)) //nolint:gosec
	}

	if err := pageTemplate.Execute(w, p); err != nil {
		return eris.Wrap(err, "render: execute page template")
	}
	return nil
}

// JSON writes spec as indented Vega-Lite JSON.
func JSON(w io.Writer, spec *chart.Spec) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(spec); err != nil {
		return eris.Wrap(err, "render: encode spec")
	}
	return nil
}
