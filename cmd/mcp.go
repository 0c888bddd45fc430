package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/pomo-cli/internal/adapters/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve pomo to AI assistants over MCP",
	Long: `Run a Model Context Protocol server on stdin/stdout.
Assistants can read the timer and today's progress, drive the timer, manage tasks
and change session lengths. The timer is paused when the server stops.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	target := app.config.WeeklyTarget()
	// stdout is the protocol channel.
	fmt.Fprintf(cmd.ErrOrStderr(), "🍅 pomo MCP server on stdio, weekly target %d. Ctrl+C stops it.\n", target)

	ctx := setupSignalHandler()
	defer app.app.PauseTimer()

	if err := mcp.NewServer(app.state, target).Start(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}
