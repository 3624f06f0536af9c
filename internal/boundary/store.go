package boundary

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Store holds the immutable region set. It is safe for concurrent readers
// because nothing mutates it after construction.
type Store struct {
	regions []Region
	byID    map[string]int
}

// NewStore builds a store from regions in order, dropping excluded regions
// and later duplicates of an ID already seen. Whole-number IDs are
// zero-padded to two digits.
func NewStore(regions []Region) *Store {
	s := &Store{
		regions: make([]Region, 0, len(regions)),
		byID:    make(map[string]int, len(regions)),
	}

	var excluded, dupes int
	for _, r := range regions {
		r.ID = canonicalID(r.ID)
		if excludedRegion(r) {
			excluded++
			continue
		}
		if _, ok := s.byID[r.ID]; ok {
			dupes++
			continue
		}
		s.byID[r.ID] = len(s.regions)
		s.regions = append(s.regions, r)
	}

	if dupes > 0 {
		zap.L().Warn("boundary: dropped duplicate region ids", zap.Int("duplicates", dupes))
	}
	zap.L().Debug("boundary: store built",
		zap.Int("regions", len(s.regions)),
		zap.Int("excluded", excluded),
	)
	return s
}

// Load reads regions from a shapefile, a zipped shapefile or a GeoJSON
// feature collection, chosen by file extension.
func Load(path string, fields Fields) (*Store, error) {
	var (
		regions []Region
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		regions, err = loadShapefile(path, fields)
	case ".zip":
		regions, err = loadZippedShapefile(path, fields)
	case ".geojson", ".json":
		regions, err = loadGeoJSON(path, fields)
	default:
		return nil, eris.Errorf("boundary: unsupported source %s", path)
	}
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, eris.Errorf("boundary: no regions in %s", path)
	}

	zap.L().Info("boundary: loaded regions",
		zap.String("path", path),
		zap.Int("records", len(regions)),
	)
	return NewStore(regions), nil
}

// Regions returns the regions in load order. The slice is a copy; the
// geometries are shared and must not be modified.
func (s *Store) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Len returns the number of regions in scope.
func (s *Store) Len() int {
	return len(s.regions)
}

// Lookup returns the region with the given ID.
func (s *Store) Lookup(id string) (Region, bool) {
	i, ok := s.byID[canonicalID(id)]
	if !ok {
		return Region{}, false
	}
	return s.regions[i], true
}
