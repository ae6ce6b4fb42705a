package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/tablefsm/internal/config"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent RPN sessions",
	Long: `List, inspect, and remove sessions in the configured store.
Only a Redis store (TABLEFSM_REDIS_ADDR) outlives the process.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(mgr *session.Manager[rpn.State, rune, *rpn.Calculator]) error {
			ids, err := mgr.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list sessions: %w", err)
			}
			if len(ids) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions found.")
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), "- "+id)
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print the stored snapshot of a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(mgr *session.Manager[rpn.State, rune, *rpn.Calculator]) error {
			snap, err := mgr.Store().Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load session '%s': %w", args[0], err)
			}
			data, err := json.MarshalIndent(snap, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>...",
	Short: "Remove one or more sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSessions(cmd, func(mgr *session.Manager[rpn.State, rune, *rpn.Calculator]) error {
			var errs []error
			for _, id := range args {
				if err := mgr.Delete(cmd.Context(), id); err != nil {
					errs = append(errs, fmt.Errorf("failed to remove '%s': %w", id, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed session '%s'\n", id)
			}
			return errors.Join(errs...)
		})
	},
}

func withSessions(cmd *cobra.Command, fn func(*session.Manager[rpn.State, rune, *rpn.Calculator]) error) error {
	logger := newLogger(cmd)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	mgr, closeStore, err := newSessions(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(mgr)
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd)
	sessionCmd.AddCommand(sessionInspectCmd)
	sessionCmd.AddCommand(sessionRmCmd)
}
