package main

import (
	"fmt"

	"github.com/aretw0/tablefsm/internal/presentation/graph"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/table"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the transition graph",
	Long:  `Outputs a Mermaid diagram (graph TD) of a transition table, or of the RPN evaluator when no table is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("table")
		if path == "" {
			m := rpn.New()
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m.Describe(), &graph.Overlay{Initial: string(m.InitialState())}))
			return nil
		}

		def, err := table.LoadFile(path)
		if err != nil {
			return err
		}
		m, err := def.Build(nil)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m.Describe(), &graph.Overlay{Initial: def.Initial}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().StringP("table", "t", "", "Transition table file (default: the RPN evaluator)")
}
