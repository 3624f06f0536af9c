package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/labormap/internal/chart"
	"github.com/sells-group/labormap/internal/render"
	"github.com/sells-group/labormap/internal/selector"
	"github.com/sells-group/labormap/internal/view"
)

var (
	renderFormat  string
	renderOut     string
	renderYear    int
	renderMinWage bool
	renderMetric  string
	renderState   string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write a chart as Vega-Lite JSON, an HTML page or a PNG image",
}

var renderHeatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Render the state map for a year",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(renderFormat); err != nil {
			return err
		}
		v, err := initViewer(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		panels, err := heatmapPanels(v, renderYear, renderMinWage, renderMetric)
		if err != nil {
			return err
		}
		return writePanels(cmd.OutOrStdout(), panels, renderFormat, renderOut)
	},
}

var renderScatterCmd = &cobra.Command{
	Use:   "scatter",
	Short: "Render the minimum wage vs. unemployment scatter plot for a state",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(renderFormat); err != nil {
			return err
		}
		v, err := initViewer(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		state := renderState
		if state == "" {
			state = v.Controls().DefaultState
		}
		panels := []view.Panel{{Slot: "scatter", Spec: v.Scatter(state)}}
		return writePanels(cmd.OutOrStdout(), panels, renderFormat, renderOut)
	},
}

func checkFormat(f string) error {
	switch f {
	case "json", "html", "png":
		return nil
	}
	return eris.Errorf("render: unknown format %q (want json, html or png)", f)
}

// heatmapPanels applies the toggle through the view, unless an explicit
// metric column is requested.
func heatmapPanels(v *view.Viewer, year int, minWage bool, metricName string) ([]view.Panel, error) {
	if metricName == "" {
		return v.Heatmaps(selector.Selection{Year: year, ShowMinWage: minWage}), nil
	}
	metrics := v.Controls().Metrics
	if !slices.Contains(metrics, metricName) {
		return nil, eris.Errorf("render: unknown metric %q (have %s)", metricName, strings.Join(metrics, ", "))
	}
	return []view.Panel{{Slot: view.SlotMap, Spec: v.Heatmap(metricName, year)}}, nil
}

func writePanels(stdout io.Writer, panels []view.Panel, format, out string) error {
	var specs []*chart.Spec
	var slots []string
	for _, p := range panels {
		if p.Spec != nil {
			specs = append(specs, p.Spec)
			slots = append(slots, p.Slot)
		}
	}
	if len(specs) == 0 {
		return eris.New("render: nothing to draw")
	}

	switch format {
	case "html":
		return writeTo(stdout, out, func(w io.Writer) error {
			return render.HTML(w, specs[0].Title, specs...)
		})
	case "json":
		return writeTo(stdout, out, func(w io.Writer) error {
			if len(specs) == 1 {
				return render.JSON(w, specs[0])
			}
			for _, s := range specs {
				if err := render.JSON(w, s); err != nil {
					return err
				}
			}
			return nil
		})
	default:
		if len(specs) == 1 {
			return writeTo(stdout, out, func(w io.Writer) error { return render.PNG(w, specs[0]) })
		}
		if out == "" {
			return eris.New("render: --out is required for more than one png")
		}
		for i, s := range specs {
			path := slotPath(out, slots[i])
			if err := writeTo(stdout, path, func(w io.Writer) error { return render.PNG(w, s) }); err != nil {
				return err
			}
		}
		return nil
	}
}

// slotPath turns maps.png into maps-<slot>.png.
func slotPath(out, slot string) string {
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%s%s", strings.TrimSuffix(out, ext), slot, ext)
}

func writeTo(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "render: create %s", path)
	}
	if err := write(f); err != nil {
		f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "render: close %s", path)
	}
	zap.L().Info("chart written", zap.String("path", path))
	return nil
}

func init() {
	renderCmd.PersistentFlags().StringVar(&renderFormat, "format", "json", "output format: json, html or png")
	renderCmd.PersistentFlags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")

	renderHeatmapCmd.Flags().IntVar(&renderYear, "year", view.DefaultYear, "year to map")
	renderHeatmapCmd.Flags().BoolVar(&renderMinWage, "min-wage", false, "show the minimum wage map")
	renderHeatmapCmd.Flags().StringVar(&renderMetric, "metric", "", "map this metric column instead of following --min-wage")

	renderScatterCmd.Flags().StringVar(&renderState, "state", "", "state to plot (default first state)")

	renderCmd.AddCommand(renderHeatmapCmd, renderScatterCmd)
	rootCmd.AddCommand(renderCmd)
}
