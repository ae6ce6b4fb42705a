package main

import (
	"github.com/aretw0/tablefsm/internal/cli"
	"github.com/aretw0/tablefsm/internal/config"
	"github.com/aretw0/tablefsm/internal/input"
	"github.com/spf13/cobra"
)

var rpnCmd = &cobra.Command{
	Use:   "rpn",
	Short: "Run the RPN evaluator console",
	Long: `Reads lines of Reverse Polish Notation from stdin and prints every value
emitted by "=". For example: 5 10 * =

With --session the stack is kept in the configured session store
(TABLEFSM_REDIS_ADDR), so it survives between runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)

		// Server config only matters once a session store is involved.
		eval := cli.LocalEvaluator(machineOptions(logger)...)
		maxInput := input.DefaultMaxSize
		if sessionID, _ := cmd.Flags().GetString("session"); sessionID != "" {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			mgr, closeStore, err := newSessions(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()
			eval = cli.SessionEvaluator(mgr, sessionID)
			maxInput = cfg.MaxInputSize
		}

		c := newConsole(cmd, logger, maxInput)
		return c.RunRPN(cmd.Context(), eval)
	},
}

func init() {
	rootCmd.AddCommand(rpnCmd)
	rpnCmd.Flags().String("session", "", "Persist the stack under this session ID")

	// rpn is the default command.
	rootCmd.Flags().AddFlagSet(rpnCmd.Flags())
	rootCmd.RunE = rpnCmd.RunE
}
