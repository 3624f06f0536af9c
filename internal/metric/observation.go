// Package metric holds the state-level labor-economics observations.
package metric

// Metric column names used by the charts.
const (
	UnemploymentRate = "Unemployment_Rate"
	MinWage          = "Min_Wage"
)

// Observation is one data row keyed by (State, Year[, Group]). A metric that
// is blank in the source is absent from Values.
type Observation struct {
	State  string             `json:"state"`
	Year   int                `json:"year"`
	Group  string             `json:"group,omitempty"`
	Values map[string]float64 `json:"values"`
}

// Value returns the named metric and whether it is present.
func (o Observation) Value(name string) (float64, bool) {
	v, ok := o.Values[name]
	return v, ok
}

type key struct {
	state string
	year  int
	group string
}

func (o Observation) key() key {
	return key{state: o.State, year: o.Year, group: o.Group}
}
