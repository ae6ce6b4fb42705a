package main

import (
	"log"
	"os"

	"github.com/aretw0/tablefsm"
	"github.com/aretw0/tablefsm/internal/config"
	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the RPN evaluator as an MCP server on stdio.
Tools: evaluate_rpn, rpn_session_input and describe_rpn.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		logger, err := serverLogger(cmd, cfg)
		if err != nil {
			return err
		}

		sessions, closeStore, err := newSessions(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		srv := mcp.NewServer(sessions, tablefsm.Version,
			mcp.WithLogger(logger),
			mcp.WithSanitizer(input.New(cfg.MaxInputSize)),
		)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting tablefsm MCP Server (Stdio)...")
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
