// Package view turns a Selection into the chart outputs shown to the user.
// Every output is a pure function of the selection and the stores loaded at
// startup.
package view

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/labormap/internal/boundary"
	"github.com/sells-group/labormap/internal/chart"
	"github.com/sells-group/labormap/internal/join"
	"github.com/sells-group/labormap/internal/metric"
	"github.com/sells-group/labormap/internal/selector"
)

// Mode controls how the min-wage toggle maps onto output slots.
type Mode string

// Modes.
const (
	// Split renders the unemployment map in its own slot always, and the
	// minimum wage map in a second slot only while the toggle is on.
	Split Mode = "split"
	// Merged renders a single map slot showing whichever metric the toggle
	// selects.
	Merged Mode = "merged"
)

// Output slots.
const (
	SlotUnemployment = "unemployment_map"
	SlotMinWage      = "min_wage_map"
	SlotMap          = "map"
)

// DefaultYear is the year control's initial value.
const DefaultYear = selector.MinYear

// ParseMode validates a configured mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Split, Merged:
		return Mode(s), nil
	}
	return "", eris.Errorf("view: unknown mode %q", s)
}

// Panel is one output slot. Spec is nil when the slot is empty.
type Panel struct {
	Slot string      `json:"slot"`
	Spec *chart.Spec `json:"spec"`
}

// Viewer builds outputs over immutable stores.
type Viewer struct {
	regions []boundary.Region
	heatmap *metric.Table
	scatter *metric.Table
	joiner  *join.Joiner
	opts    chart.Options
	mode    Mode
}

// New builds a Viewer. heatmap backs the maps and scatter backs the scatter
// plot; they may be the same table. A nil joiner joins without aliases.
func New(store *boundary.Store, heatmap, scatter *metric.Table, joiner *join.Joiner, opts chart.Options, mode Mode) *Viewer {
	if joiner == nil {
		joiner = join.New(nil)
	}
	if mode == "" {
		mode = Merged
	}
	return &Viewer{
		regions: store.Regions(),
		heatmap: heatmap,
		scatter: scatter,
		joiner:  joiner,
		opts:    opts,
		mode:    mode,
	}
}

// Mode returns the configured mode.
func (v *Viewer) Mode() Mode { return v.mode }

// Heatmaps returns the map slots for sel according to the mode. Only the
// maps that are shown are built.
func (v *Viewer) Heatmaps(sel selector.Selection) []Panel {
	if v.mode == Split {
		panels := []Panel{
			{Slot: SlotUnemployment, Spec: v.Heatmap(metric.UnemploymentRate, sel.Year)},
			{Slot: SlotMinWage},
		}
		if sel.ShowMinWage {
			panels[1].Spec = v.Heatmap(metric.MinWage, sel.Year)
		}
		return panels
	}

	name := metric.UnemploymentRate
	if sel.ShowMinWage {
		name = metric.MinWage
	}
	return []Panel{{Slot: SlotMap, Spec: v.Heatmap(name, sel.Year)}}
}

// Heatmap builds the map of metricName for year.
func (v *Viewer) Heatmap(metricName string, year int) *chart.Spec {
	res := v.join(year)
	return chart.Heatmap(res.Records, metricName, year, v.opts)
}

// Scatter builds the scatter plot for state.
func (v *Viewer) Scatter(state string) *chart.Spec {
	return chart.Scatter(selector.ByState(v.scatter.Observations(), state), state, v.opts)
}

func (v *Viewer) join(year int) join.Result {
	return v.joiner.Join(v.regions, selector.ByYear(v.heatmap.Observations(), year))
}

// Controls describes the inputs offered to the user.
type Controls struct {
	MinYear      int      `json:"min_year"`
	MaxYear      int      `json:"max_year"`
	DefaultYear  int      `json:"default_year"`
	States       []string `json:"states"`
	DefaultState string   `json:"default_state"`
	Mode         Mode     `json:"mode"`
	Metrics      []string `json:"metrics"`
}

// Controls returns the control values. The state dropdown lists the scatter
// table's states alphabetically and defaults to the first.
func (v *Viewer) Controls() Controls {
	states := v.scatter.States()
	c := Controls{
		MinYear:     selector.MinYear,
		MaxYear:     selector.MaxYear,
		DefaultYear: DefaultYear,
		States:      states,
		Mode:        v.mode,
		Metrics:     v.heatmap.Metrics(),
	}
	if len(states) > 0 {
		c.DefaultState = states[0]
	}
	return c
}

// Coverage summarizes how well the heatmap table joins to the boundaries for
// one year.
type Coverage struct {
	Year      int      `json:"year"`
	Regions   int      `json:"regions"`
	Matched   int      `json:"matched"`
	Unmatched []string `json:"unmatched"`
	Blank     []string `json:"blank"`
}

// Coverage reports the join diagnostics for year.
func (v *Viewer) Coverage(year int) Coverage {
	res := v.join(year)
	c := Coverage{
		Year:      year,
		Regions:   len(res.Records),
		Unmatched: res.Unmatched,
		Blank:     res.Blank,
	}
	for _, r := range res.Records {
		if r.Observation != nil {
			c.Matched++
		}
	}
	zap.L().Debug("view: coverage",
		zap.Int("year", year),
		zap.Int("matched", c.Matched),
		zap.Int("unmatched", len(c.Unmatched)),
	)
	return c
}
