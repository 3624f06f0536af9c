// Package join attaches metric observations to state boundaries.
package join

import (
	"sort"

	"go.uber.org/zap"

	"github.com/sells-group/labormap/internal/boundary"
	"github.com/sells-group/labormap/internal/metric"
)

// Record pairs a region with its observation. Observation is nil when no
// row matched; the region is still drawn, blank.
type Record struct {
	Region      boundary.Region
	Observation *metric.Observation
}

// Result is the joined record set plus coverage diagnostics.
type Result struct {
	// Records has exactly one entry per input region, in region order.
	Records []Record
	// Unmatched lists observation states that matched no region, sorted.
	Unmatched []string
	// Blank lists region names that received no observation, in region order.
	Blank []string
}

// Joiner performs the left outer join on region name. Matching is exact and
// case-sensitive; aliases rename observation states before matching.
type Joiner struct {
	aliases map[string]string
}

// New returns a Joiner. aliases maps an observation state name to the
// region name it should join to and may be nil.
func New(aliases map[string]string) *Joiner {
	return &Joiner{aliases: aliases}
}

// Join is a Joiner without aliases.
func Join(regions []boundary.Region, obs []metric.Observation) Result {
	return New(nil).Join(regions, obs)
}

// Join left-joins regions to obs on region.Name == observation.State. If
// several rows share a state, the first one wins.
func (j *Joiner) Join(regions []boundary.Region, obs []metric.Observation) Result {
	byState := make(map[string]*metric.Observation, len(obs))
	var dupes int
	for i := range obs {
		name := j.regionName(obs[i].State)
		if _, ok := byState[name]; ok {
			dupes++
			continue
		}
		o := obs[i]
		byState[name] = &o
	}

	res := Result{Records: make([]Record, 0, len(regions))}
	matched := make(map[string]bool, len(regions))
	for _, r := range regions {
		o := byState[r.Name]
		if o == nil {
			res.Blank = append(res.Blank, r.Name)
		} else {
			matched[r.Name] = true
		}
		res.Records = append(res.Records, Record{Region: r, Observation: o})
	}

	for name, o := range byState {
		if !matched[name] {
			res.Unmatched = append(res.Unmatched, o.State)
		}
	}
	sort.Strings(res.Unmatched)

	log := zap.L().With(zap.String("component", "join"))
	if len(res.Unmatched) > 0 {
		log.Warn("observations matched no region",
			zap.Strings("states", res.Unmatched),
		)
	}
	if dupes > 0 {
		log.Warn("repeated states in join input; kept first", zap.Int("duplicates", dupes))
	}
	log.Debug("join complete",
		zap.Int("regions", len(regions)),
		zap.Int("matched", len(regions)-len(res.Blank)),
	)

	return res
}

func (j *Joiner) regionName(state string) string {
	if alias, ok := j.aliases[state]; ok {
		return alias
	}
	return state
}
