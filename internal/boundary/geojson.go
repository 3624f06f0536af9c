package boundary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// loadGeoJSON reads a FeatureCollection whose features carry the identity
// fields as properties.
func loadGeoJSON(path string, fields Fields) ([]Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: read %s", path)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrapf(err, "boundary: decode geojson %s", path)
	}

	var regions []Region
	var skipped int
	for i, f := range fc.Features {
		mp := toMultiPolygon(f.Geometry)
		if mp == nil {
			skipped++
			continue
		}

		name := property(f.Properties, fields.Name)
		if name == "" {
			zap.L().Debug("boundary: feature without name", zap.Int("feature", i))
		}
		abbr := property(f.Properties, fields.Abbr)
		id := property(f.Properties, fields.ID)
		if id == "" {
			id = f.ID
		}

		regions = append(regions, Region{
			ID:       resolveID(id, name, abbr),
			Name:     name,
			Abbr:     abbr,
			Geometry: mp,
		})
	}

	if skipped > 0 {
		zap.L().Debug("boundary: skipped non-polygon features",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	return regions, nil
}

// toMultiPolygon normalises polygonal geometry to an XY multipolygon. Z and M
// ordinates are dropped.
func toMultiPolygon(g geom.T) *geom.MultiPolygon {
	switch t := g.(type) {
	case *geom.MultiPolygon:
		if t.NumPolygons() == 0 {
			return nil
		}
		return projectXY(t)
	case *geom.Polygon:
		mp := geom.NewMultiPolygon(t.Layout())
		if err := mp.Push(t); err != nil {
			zap.L().Warn("boundary: skipping malformed polygon", zap.Error(err))
			return nil
		}
		return projectXY(mp)
	default:
		return nil
	}
}

// projectXY returns mp in the XY layout with SRID 4326.
func projectXY(mp *geom.MultiPolygon) *geom.MultiPolygon {
	if mp.Layout() == geom.XY {
		return mp.SetSRID(4326)
	}

	stride := mp.Stride()
	flat := mp.FlatCoords()
	xy := make([]float64, 0, len(flat)/stride*2)
	for i := 0; i+1 < len(flat); i += stride {
		xy = append(xy, flat[i], flat[i+1])
	}

	endss := mp.Endss()
	out := make([][]int, len(endss))
	for i, ends := range endss {
		out[i] = make([]int, len(ends))
		for j, e := range ends {
			out[i][j] = e / stride * 2
		}
	}
	return geom.NewMultiPolygonFlat(geom.XY, xy, out).SetSRID(4326)
}

// property reads a property by case-insensitive key and renders it as a string.
func property(props map[string]interface{}, key string) string {
	if key == "" {
		return ""
	}
	for k, v := range props {
		if !strings.EqualFold(k, key) || v == nil {
			continue
		}
		switch val := v.(type) {
		case string:
			return strings.TrimSpace(val)
		case float64:
			return strings.TrimSpace(fmt.Sprintf("%g", val))
		default:
			return strings.TrimSpace(fmt.Sprint(val))
		}
	}
	return ""
}
