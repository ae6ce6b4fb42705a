package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var startedAt time.Time

var rootCmd = &cobra.Command{
	Use:   "tablefsm",
	Short: "tablefsm is a table-driven finite state machine engine",
	Long: `tablefsm drives finite state machines defined as transition tables.
Without a subcommand it starts the RPN evaluator console.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		startedAt = time.Now()
		newLogger(cmd).Debug("command started", "command", cmd.CommandPath(), "at", startedAt.Format(time.RFC1123))
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		newLogger(cmd).Debug("command finished", "command", cmd.CommandPath(), "elapsed", time.Since(startedAt))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging to stderr, including elapsed time")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Do not print the banner on interactive consoles")
}
