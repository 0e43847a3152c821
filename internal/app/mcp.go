package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/feedback"
	"github.com/blackwell-systems/sentimeter/internal/mcp"
	"github.com/blackwell-systems/sentimeter/internal/store"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve scoring and analytics as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout. Tools:
list_products, get_product_analytics, list_feedback, score_feedback.
score_feedback never writes to the database.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcp.NewServer(mcpBackend{e: e}, appVersion, e.log.Named("mcp"))
	return srv.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}

// mcpBackend exposes the environment to the MCP tools.
type mcpBackend struct {
	e *env
}

func (b mcpBackend) ListProducts() ([]store.Product, error) {
	return b.e.db.ListProducts()
}

func (b mcpBackend) ListFeedback(productID int64) ([]feedback.Record, error) {
	return b.e.db.ListFeedback(productID)
}

func (b mcpBackend) Report(ctx context.Context, productID int64) ([]analytics.ProductAnalytics, error) {
	return buildReport(ctx, b.e, productID)
}

func (b mcpBackend) Score(ctx context.Context, sub feedback.Submission) (feedback.Record, error) {
	return b.e.engine.Submit(ctx, sub)
}
