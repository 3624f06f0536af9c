package boundary

import (
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"
)

// loadShapefile reads polygon records and the identity attributes named by fields.
func loadShapefile(shpPath string, fields Fields) ([]Region, error) {
	reader, err := shp.Open(shpPath)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", shpPath)
	}
	defer func() { _ = reader.Close() }()

	// Build field name → index map.
	fieldIdx := make(map[string]int)
	for i, f := range reader.Fields() {
		name := strings.TrimRight(f.String(), "\x00")
		fieldIdx[strings.ToLower(name)] = i
	}

	nameIdx, ok := fieldIdx[strings.ToLower(fields.Name)]
	if !ok {
		return nil, eris.Errorf("boundary: shapefile %s has no %s field", shpPath, fields.Name)
	}
	idIdx, hasID := fieldIdx[strings.ToLower(fields.ID)]
	abbrIdx, hasAbbr := fieldIdx[strings.ToLower(fields.Abbr)]
	if !hasID {
		zap.L().Warn("boundary: no id field; resolving FIPS from abbreviation or name",
			zap.String("path", shpPath),
			zap.String("field", fields.ID),
		)
	}

	attr := func(idx int) string {
		return strings.TrimSpace(strings.TrimRight(reader.Attribute(idx), "\x00"))
	}

	var regions []Region
	var skipped int

	for reader.Next() {
		n, shape := reader.Shape()

		var mp *geom.MultiPolygon
		switch s := shape.(type) {
		case *shp.Polygon:
			mp = polygonToMultiPolygon(s)
		case *shp.PolygonZ:
			mp = partsToMultiPolygon(s.NumParts, s.Parts, s.Points)
		case *shp.PolygonM:
			mp = partsToMultiPolygon(s.NumParts, s.Parts, s.Points)
		default:
			skipped++
			continue
		}

		r := Region{Name: attr(nameIdx), Geometry: mp}
		var id string
		if hasID {
			id = attr(idIdx)
		}
		if hasAbbr {
			r.Abbr = attr(abbrIdx)
		}
		r.ID = resolveID(id, r.Name, r.Abbr)
		if mp == nil {
			zap.L().Warn("boundary: record has no usable rings; drawn blank",
				zap.Int("record", n),
				zap.String("name", r.Name),
			)
		}
		if r.Name == "" {
			zap.L().Debug("boundary: record without name", zap.Int("record", n))
		}
		regions = append(regions, r)
	}

	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "boundary: read shapefile %s", shpPath)
	}

	if skipped > 0 {
		zap.L().Debug("boundary: skipped shapefile records",
			zap.String("path", shpPath),
			zap.Int("skipped", skipped),
		)
	}

	return regions, nil
}

// polygonToMultiPolygon converts a shapefile Polygon to a geom.MultiPolygon.
// Shapefile outer rings wind clockwise; a counter-clockwise part is a hole
// in the polygon started by the preceding outer ring.
func polygonToMultiPolygon(p *shp.Polygon) *geom.MultiPolygon {
	if p == nil {
		return nil
	}
	return partsToMultiPolygon(p.NumParts, p.Parts, p.Points)
}

// partsToMultiPolygon assembles rings from part offsets into points. Z and M
// values of PolygonZ/PolygonM records are dropped.
func partsToMultiPolygon(numParts int32, parts []int32, points []shp.Point) *geom.MultiPolygon {
	if numParts == 0 || len(points) == 0 || int(numParts) > len(parts) {
		return nil
	}

	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)
	var current *geom.Polygon

	flush := func() {
		if current == nil {
			return
		}
		if err := mp.Push(current); err != nil {
			zap.L().Debug("boundary: skipping malformed polygon", zap.Error(err))
		}
		current = nil
	}

	for i := int32(0); i < numParts; i++ {
		start := parts[i]
		end := int32(len(points))
		if i+1 < numParts {
			end = parts[i+1]
		}
		if start < 0 || end > int32(len(points)) || end-start < 4 {
			zap.L().Debug("boundary: skipping short ring", zap.Int32("part", i))
			continue
		}

		flat := make([]float64, 0, (end-start)*2)
		for j := start; j < end; j++ {
			flat = append(flat, points[j].X, points[j].Y)
		}
		ring := geom.NewLinearRingFlat(geom.XY, flat)

		if signedArea(flat) > 0 && current != nil {
			if err := current.Push(ring); err != nil {
				zap.L().Debug("boundary: skipping malformed hole", zap.Int32("part", i), zap.Error(err))
			}
			continue
		}

		flush()
		current = geom.NewPolygon(geom.XY)
		if err := current.Push(ring); err != nil {
			zap.L().Debug("boundary: skipping malformed ring", zap.Int32("part", i), zap.Error(err))
			current = nil
		}
	}
	flush()

	if mp.NumPolygons() == 0 {
		return nil
	}
	return mp
}

// signedArea is the shoelace sum over flat XY coordinates; positive means
// counter-clockwise.
func signedArea(flat []float64) float64 {
	var sum float64
	n := len(flat) / 2
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += flat[2*i]*flat[2*j+1] - flat[2*j]*flat[2*i+1]
	}
	return sum / 2
}
