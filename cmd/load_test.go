//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/labormap/internal/config"
	"github.com/sells-group/labormap/internal/metric"
	"github.com/sells-group/labormap/internal/view"
)

const testBoundaries = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"STATEFP": "06", "NAME": "California", "STUSPS": "CA"},
     "geometry": {"type": "Polygon", "coordinates": [[[-124, 32], [-124, 42], [-114, 42], [-114, 32], [-124, 32]]]}},
    {"type": "Feature", "properties": {"STATEFP": "15", "NAME": "Hawaii", "STUSPS": "HI"},
     "geometry": {"type": "Polygon", "coordinates": [[[-160, 19], [-160, 22], [-155, 22], [-155, 19], [-160, 19]]]}},
    {"type": "Feature", "properties": {"STATEFP": "48", "NAME": "Texas", "STUSPS": "TX"},
     "geometry": {"type": "Polygon", "coordinates": [[[-106, 26], [-106, 36], [-94, 36], [-94, 26], [-106, 26]]]}}
  ]
}`

const testHeatmapCSV = `State,Year,Unemployment_Rate,Min_Wage,Labor_Force
California,2020,10.1,13.00,19.0
Texas,2020,7.6,7.25,14.1
Calif.,2021,7.3,14.00,
`

const testScatterCSV = `State,Year,Group,Unemployment_Rate,Min_Wage
Texas,2018,White,3.1,7.25
Texas,2019,White,3.4,7.50
Texas,2018,Black,6.9,7.25
Texas,2019,Black,6.0,7.50
Arizona,2020,White,7.0,12.00
`

func writeFixtures(t *testing.T) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	return config.DataConfig{
		BoundaryPath: write("states.geojson", testBoundaries),
		HeatmapPath:  write("merged_data.csv", testHeatmapCSV),
		ScatterPath:  write("merged_race_data.csv", testScatterCSV),
		AliasesPath:  write("aliases.yaml", "aliases:\n  \"Calif.\": \"California\"\n"),
		IDField:      "STATEFP",
		NameField:    "NAME",
		AbbrField:    "STUSPS",
	}
}

func testConfig(t *testing.T, mode string) *config.Config {
	t.Helper()
	return &config.Config{
		Data:  writeFixtures(t),
		Chart: config.ChartConfig{Density: "compact", Projection: "albersUsa"},
		View:  config.ViewConfig{Mode: mode},
	}
}

func TestLoadStores(t *testing.T) {
	s, err := loadStores(context.Background(), writeFixtures(t))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Boundaries.Len(), "Hawaii is excluded")
	assert.Equal(t, 3, s.Heatmap.Len())
	assert.Equal(t, 5, s.Scatter.Len())
	assert.Equal(t, map[string]string{"Calif.": "California"}, s.Aliases)
	assert.True(t, s.Heatmap.HasMetric("Labor_Force"))
}

func TestLoadStores_SharedTable(t *testing.T) {
	dc := writeFixtures(t)
	dc.ScatterPath = dc.HeatmapPath

	s, err := loadStores(context.Background(), dc)
	require.NoError(t, err)
	assert.Same(t, s.Heatmap, s.Scatter)
}

func TestLoadStores_Failures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.DataConfig)
		wantErr string
	}{
		{"missing boundary", func(dc *config.DataConfig) { dc.BoundaryPath = "/nonexistent/states.shp" }, "load boundaries"},
		{"missing heatmap", func(dc *config.DataConfig) { dc.HeatmapPath = "/nonexistent/data.csv" }, "load heatmap metrics"},
		{"missing scatter", func(dc *config.DataConfig) { dc.ScatterPath = "/nonexistent/race.csv" }, "load scatter metrics"},
		{"missing aliases", func(dc *config.DataConfig) { dc.AliasesPath = "/nonexistent/aliases.yaml" }, "load join aliases"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dc := writeFixtures(t)
			tt.mutate(&dc)
			_, err := loadStores(context.Background(), dc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadStores_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := loadStores(ctx, writeFixtures(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), context.Canceled.Error())
	assert.Nil(t, s)
}

func TestInitViewer(t *testing.T) {
	v, err := initViewer(context.Background(), testConfig(t, "split"))
	require.NoError(t, err)
	assert.Equal(t, view.Split, v.Mode())

	c := v.Controls()
	assert.Equal(t, []string{"Arizona", "Texas"}, c.States)

	cov := v.Coverage(2021)
	assert.Equal(t, 1, cov.Matched, "alias joins Calif. to California")
	assert.Empty(t, cov.Unmatched)

	_, err = initViewer(context.Background(), testConfig(t, "tabs"))
	require.Error(t, err)
}

func TestHeatmapPanels(t *testing.T) {
	v, err := initViewer(context.Background(), testConfig(t, "split"))
	require.NoError(t, err)

	panels, err := heatmapPanels(v, 2020, false, "")
	require.NoError(t, err)
	require.Len(t, panels, 2)
	assert.NotNil(t, panels[0].Spec)
	assert.Nil(t, panels[1].Spec)

	panels, err = heatmapPanels(v, 2020, false, "Labor_Force")
	require.NoError(t, err)
	require.Len(t, panels, 1)
	assert.Equal(t, "Labor Force (2020)", panels[0].Spec.Title)

	_, err = heatmapPanels(v, 2020, false, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), metric.UnemploymentRate)
}

func TestWritePanels(t *testing.T) {
	v, err := initViewer(context.Background(), testConfig(t, "split"))
	require.NoError(t, err)
	panels, err := heatmapPanels(v, 2020, true, "")
	require.NoError(t, err)

	t.Run("json to stdout", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writePanels(&buf, panels[:1], "json", ""))
		var doc map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
		assert.Equal(t, "Unemployment Rate (2020)", doc["title"])
	})

	t.Run("html file", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "maps.html")
		require.NoError(t, writePanels(nil, panels, "html", out))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), `id="chart-1"`)
	})

	t.Run("png per slot", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "maps.png")
		require.NoError(t, writePanels(nil, panels, "png", out))
		assert.FileExists(t, slotPath(out, view.SlotUnemployment))
		assert.FileExists(t, slotPath(out, view.SlotMinWage))
	})

	t.Run("several pngs need a file", func(t *testing.T) {
		err := writePanels(&bytes.Buffer{}, panels, "png", "")
		require.Error(t, err)
	})

	t.Run("nothing to draw", func(t *testing.T) {
		err := writePanels(&bytes.Buffer{}, []view.Panel{{Slot: view.SlotMinWage}}, "json", "")
		require.Error(t, err)
	})
}

func TestCheckFormat(t *testing.T) {
	for _, f := range []string{"json", "html", "png"} {
		assert.NoError(t, checkFormat(f))
	}
	assert.Error(t, checkFormat("svg"))
}

func TestSlotPath(t *testing.T) {
	assert.Equal(t, "out/maps-map.png", slotPath("out/maps.png", "map"))
	assert.Equal(t, "maps-map", slotPath("maps", "map"))
}

func TestPrintCoverage(t *testing.T) {
	var buf bytes.Buffer
	printCoverage(&buf, []view.Coverage{
		{Year: 2020, Regions: 3, Matched: 2, Unmatched: []string{"Alaska"}, Blank: []string{"Wyoming"}},
		{Year: 2021, Regions: 3, Matched: 3},
	})
	out := buf.String()
	assert.Contains(t, out, "2020: 2/3 regions matched")
	assert.Contains(t, out, "unmatched rows: Alaska")
	assert.Contains(t, out, "blank regions:  Wyoming")
	assert.Contains(t, out, "2021: 3/3 regions matched")
	assert.NotContains(t, out, "2021: 3/3 regions matched\n  ")
}
