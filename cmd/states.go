package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statesCmd = &cobra.Command{
	Use:   "states",
	Short: "List the states offered by the scatter plot dropdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := initViewer(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		c := v.Controls()
		out := cmd.OutOrStdout()
		for _, s := range c.States {
			marker := " "
			if s == c.DefaultState {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s\n", marker, s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statesCmd)
}
