// Package boundary loads U.S. state boundary polygons and applies the
// contiguous-states exclusion policy.
package boundary

import (
	"github.com/twpayne/go-geom"
)

// Region is one state boundary with its identifying fields.
type Region struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Abbr     string             `json:"abbr,omitempty"`
	Geometry *geom.MultiPolygon `json:"-"`
}

// Fields names the attribute columns that carry region identity.
type Fields struct {
	ID   string
	Name string
	Abbr string
}

// DefaultFields matches the Census cartographic boundary files (cb_*_us_state_*).
var DefaultFields = Fields{ID: "STATEFP", Name: "NAME", Abbr: "STUSPS"}

// excludedIDs are Alaska, Hawaii and Puerto Rico. Dropping them keeps the
// contiguous-states projection compact. Not configurable.
var excludedIDs = map[string]bool{
	"02": true,
	"15": true,
	"72": true,
}

// IsExcluded reports whether the region ID is removed by the exclusion policy.
func IsExcluded(id string) bool {
	return excludedIDs[id]
}
