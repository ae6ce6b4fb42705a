package main

import (
	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/pkg/table"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run --table FILE",
	Short: "Drive a transition table from stdin",
	Long: `Loads a YAML or JSON transition table and feeds it stdin line by line.
Each line is split into symbols per character or per word, as the table says.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		path, _ := cmd.Flags().GetString("table")
		def, err := table.LoadFile(path)
		if err != nil {
			return err
		}
		m, err := def.Build(nil, machineOptions(logger)...)
		if err != nil {
			return err
		}

		c := newConsole(cmd, logger, input.DefaultMaxSize)
		return c.RunTable(cmd.Context(), def, m)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("table", "t", "", "Transition table file (.yaml, .yml or .json)")
	_ = runCmd.MarkFlagRequired("table")
}
