package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/labormap/internal/boundary"
	"github.com/sells-group/labormap/internal/chart"
	"github.com/sells-group/labormap/internal/config"
	"github.com/sells-group/labormap/internal/join"
	"github.com/sells-group/labormap/internal/metric"
	"github.com/sells-group/labormap/internal/view"
)

// stores holds everything loaded once at startup. Nothing in it changes
// afterwards.
type stores struct {
	Boundaries *boundary.Store
	Heatmap    *metric.Table
	Scatter    *metric.Table
	Aliases    map[string]string
}

// loadStores reads the boundary source, both metric tables and the alias
// file concurrently. Any failure is fatal to the caller and stops loads that
// have not started yet.
func loadStores(ctx context.Context, dc config.DataConfig) (*stores, error) {
	var s stores
	g, gctx := errgroup.WithContext(ctx)

	load := func(what string, fn func() error) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, what)
			}
			return eris.Wrap(fn(), what)
		})
	}

	load("load boundaries", func() (err error) {
		s.Boundaries, err = boundary.Load(dc.BoundaryPath, boundary.Fields{
			ID:   dc.IDField,
			Name: dc.NameField,
			Abbr: dc.AbbrField,
		})
		return err
	})
	load("load heatmap metrics", func() (err error) {
		s.Heatmap, err = metric.LoadFile(dc.HeatmapPath)
		return err
	})
	if dc.ScatterPath != "" && dc.ScatterPath != dc.HeatmapPath {
		load("load scatter metrics", func() (err error) {
			s.Scatter, err = metric.LoadFile(dc.ScatterPath)
			return err
		})
	}
	load("load join aliases", func() (err error) {
		s.Aliases, err = join.LoadAliases(dc.AliasesPath)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if s.Scatter == nil {
		s.Scatter = s.Heatmap
	}

	zap.L().Info("stores loaded",
		zap.Int("regions", s.Boundaries.Len()),
		zap.Int("heatmap_rows", s.Heatmap.Len()),
		zap.Int("scatter_rows", s.Scatter.Len()),
		zap.Int("aliases", len(s.Aliases)),
	)
	return &s, nil
}

func chartOptions(cc config.ChartConfig) chart.Options {
	return chart.Options{
		Density:    cc.Density,
		Width:      cc.Width,
		Height:     cc.Height,
		Projection: cc.Projection,
	}
}

// initViewer loads the stores named by c and wraps them in a Viewer.
func initViewer(ctx context.Context, c *config.Config) (*view.Viewer, error) {
	mode, err := view.ParseMode(c.View.Mode)
	if err != nil {
		return nil, err
	}
	s, err := loadStores(ctx, c.Data)
	if err != nil {
		return nil, err
	}
	return view.New(s.Boundaries, s.Heatmap, s.Scatter, join.New(s.Aliases), chartOptions(c.Chart), mode), nil
}
