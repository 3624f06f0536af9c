package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sells-group/labormap/internal/selector"
	"github.com/sells-group/labormap/internal/view"
)

var (
	inspectYear int
	inspectAll  bool
	inspectJSON bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Report how the heatmap metrics join to the state boundaries",
	Long:  "Lists metric rows whose state matched no boundary and boundaries that received no row, for one year or every selectable year.",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := initViewer(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		years := []int{inspectYear}
		if inspectAll {
			years = years[:0]
			for y := selector.MinYear; y <= selector.MaxYear; y++ {
				years = append(years, y)
			}
		}

		reports := make([]view.Coverage, 0, len(years))
		for _, y := range years {
			reports = append(reports, v.Coverage(y))
		}

		if inspectJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(reports)
		}
		printCoverage(cmd.OutOrStdout(), reports)
		return nil
	},
}

func printCoverage(w io.Writer, reports []view.Coverage) {
	for _, c := range reports {
		fmt.Fprintf(w, "%d: %d/%d regions matched\n", c.Year, c.Matched, c.Regions)
		if len(c.Unmatched) > 0 {
			fmt.Fprintf(w, "  unmatched rows: %s\n", strings.Join(c.Unmatched, ", "))
		}
		if len(c.Blank) > 0 {
			fmt.Fprintf(w, "  blank regions:  %s\n", strings.Join(c.Blank, ", "))
		}
	}
}

func init() {
	inspectCmd.Flags().IntVar(&inspectYear, "year", view.DefaultYear, "year to inspect")
	inspectCmd.Flags().BoolVar(&inspectAll, "all", false, "inspect every selectable year")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the report as JSON")
	rootCmd.AddCommand(inspectCmd)
}
