// Package app contains the Cobra command tree for sentimeter.
package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "sentimeter",
	Short: "Score and track product feedback sentiment",
	Long: `sentimeter scores product feedback and aggregates it into per-product
sentiment analytics. Structured answers are scored against a weighted score
map; free-text feedback from older surveys is scored with a word lexicon.

Both kinds of records live side by side in a local SQLite database and are
normalized onto one 0-100 scale for reporting.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "sentimeter", appVersion)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Use a subcommand:")
		fmt.Fprintln(out, "  products   Manage the product catalog")
		fmt.Fprintln(out, "  submit     Score and store a new piece of feedback")
		fmt.Fprintln(out, "  edit       Change answers on stored feedback and rescore it")
		fmt.Fprintln(out, "  feedback   List, show, or remove stored feedback")
		fmt.Fprintln(out, "  score      Score answers without storing them")
		fmt.Fprintln(out, "  rescore    Recompute stored results with the current score map")
		fmt.Fprintln(out, "  analytics  Per-product sentiment summary")
		fmt.Fprintln(out, "  track      Snapshot analytics and compare over time")
		fmt.Fprintln(out, "  watch      Alert on sentiment shifts as feedback arrives")
		fmt.Fprintln(out, "  import     Load products.json / feedback.json data files")
		fmt.Fprintln(out, "  export     Write products.json / feedback.json data files")
		fmt.Fprintln(out, "  mcp        Serve scoring and analytics as MCP tools over stdio")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/sentimeter/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}
