package metric

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Table is an immutable set of observations loaded once at startup.
type Table struct {
	obs     []Observation
	metrics []string
}

// NewTable builds a table, keeping the first row for any repeated
// (State, Year, Group) key.
func NewTable(obs []Observation) *Table {
	t := &Table{obs: make([]Observation, 0, len(obs))}

	seen := make(map[key]bool, len(obs))
	metricSet := make(map[string]bool)
	var dupes int
	for _, o := range obs {
		k := o.key()
		if seen[k] {
			dupes++
			continue
		}
		seen[k] = true
		t.obs = append(t.obs, o)
		for name := range o.Values {
			metricSet[name] = true
		}
	}

	for name := range metricSet {
		t.metrics = append(t.metrics, name)
	}
	sort.Strings(t.metrics)

	if dupes > 0 {
		zap.L().Warn("metric: dropped duplicate observations", zap.Int("duplicates", dupes))
	}
	return t
}

// LoadFile reads a CSV or XLSX metric table chosen by file extension.
func LoadFile(path string) (*Table, error) {
	var (
		obs []Observation
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		obs, err = readCSVFile(path)
	case ".xlsx":
		obs, err = readXLSX(path)
	default:
		return nil, eris.Errorf("metric: unsupported source %s", path)
	}
	if err != nil {
		return nil, err
	}

	t := NewTable(obs)
	zap.L().Info("metric: loaded observations",
		zap.String("path", path),
		zap.Int("rows", len(t.obs)),
		zap.Strings("metrics", t.metrics),
	)
	return t, nil
}

// Observations returns the rows in source order. The slice is shared and
// must be treated as read-only.
func (t *Table) Observations() []Observation {
	return t.obs
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.obs)
}

// Metrics returns the sorted metric names present in any row.
func (t *Table) Metrics() []string {
	return append([]string(nil), t.metrics...)
}

// HasMetric reports whether any row carries the metric.
func (t *Table) HasMetric(name string) bool {
	i := sort.SearchStrings(t.metrics, name)
	return i < len(t.metrics) && t.metrics[i] == name
}

// States returns the distinct state names, sorted alphabetically.
func (t *Table) States() []string {
	return distinct(t.obs, func(o Observation) string { return o.State })
}

// Groups returns the distinct non-empty group names, sorted alphabetically.
func (t *Table) Groups() []string {
	return distinct(t.obs, func(o Observation) string { return o.Group })
}

// Years returns the distinct years in ascending order.
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, o := range t.obs {
		if !seen[o.Year] {
			seen[o.Year] = true
			years = append(years, o.Year)
		}
	}
	sort.Ints(years)
	return years
}

func distinct(obs []Observation, field func(Observation) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range obs {
		v := field(o)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
