// Package selector narrows observations to the active UI selection.
package selector

import (
	"github.com/sells-group/labormap/internal/metric"
)

// Year bounds offered by the year control.
const (
	MinYear = 2014
	MaxYear = 2024
)

// Selection is the state of the UI controls for one interaction. Year and
// ShowMinWage drive the maps; State drives the scatter plot.
type Selection struct {
	Year        int    `json:"year"`
	ShowMinWage bool   `json:"show_min_wage"`
	State       string `json:"state,omitempty"`
}

// YearInRange reports whether year is selectable.
func YearInRange(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// ByYear returns the rows for year, across all states. Years outside the
// selectable range yield an empty result.
func ByYear(obs []metric.Observation, year int) []metric.Observation {
	if !YearInRange(year) {
		return []metric.Observation{}
	}
	return filter(obs, func(o metric.Observation) bool { return o.Year == year })
}

// ByState returns every year and group recorded for state. Matching is exact.
func ByState(obs []metric.Observation, state string) []metric.Observation {
	if state == "" {
		return []metric.Observation{}
	}
	return filter(obs, func(o metric.Observation) bool { return o.State == state })
}

func filter(obs []metric.Observation, keep func(metric.Observation) bool) []metric.Observation {
	out := []metric.Observation{}
	for _, o := range obs {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
