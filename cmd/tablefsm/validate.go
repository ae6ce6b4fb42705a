package main

import (
	"fmt"

	"github.com/aretw0/tablefsm/internal/validator"
	"github.com/aretw0/tablefsm/pkg/table"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a transition table",
	Long: `Loads a table file, resolves every action and checks that all states
can be reached from the initial state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("table")
		def, err := table.LoadFile(path)
		if err != nil {
			return err
		}
		m, err := def.Build(nil)
		if err != nil {
			return err
		}
		if err := validator.ValidateGraph(m.Describe(), def.Initial); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("table", "t", "", "Transition table file")
	_ = validateCmd.MarkFlagRequired("table")
}
