package main

import (
	"github.com/aretw0/tablefsm/internal/input"
	"github.com/spf13/cobra"
)

var dialogCmd = &cobra.Command{
	Use:   "dialog [symbols...]",
	Short: "Run the scripted dialog",
	Long: `Plays a conversation script through the dialog machine, asking questions on
the console. The default script is: # Hello Destination Farewell`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		c := newConsole(cmd, logger, input.DefaultMaxSize)
		conv, err := c.RunDialog(cmd.Context(), args, machineOptions(logger)...)
		if conv != nil {
			logger.Debug("conversation finished",
				"first_name", conv.FirstName,
				"last_name", conv.LastName,
				"destination", conv.Destination,
				"errors", len(conv.Errors),
			)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(dialogCmd)
}
