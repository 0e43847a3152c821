package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/analytics"
	"github.com/blackwell-systems/sentimeter/internal/watcher"
)

var (
	watchInterval time.Duration
	watchNotify   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor analytics and alert on sentiment shifts",
	Long: `Recompute product analytics at an interval and print an alert when
sentiment shifts: a product falling into critical territory, a sharp drop in
positive share, new negative feedback, or newly invalid records.

Runs until interrupted. With --notify alerts are also sent as desktop
notifications.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "Time between checks")
	watchCmd.Flags().BoolVar(&watchNotify, "notify", false, "Send desktop notifications")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchInterval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	source := func(ctx context.Context) ([]analytics.ProductAnalytics, error) {
		return buildReport(ctx, e, 0)
	}
	w := watcher.New(source, watchInterval, func(a watcher.Alert) {
		e.log.Debug("alert", zap.String("level", a.Level), zap.String("title", a.Title))
		_ = watcher.WriteAlert(cmd.OutOrStdout(), a)
		if watchNotify {
			if err := watcher.Notify(a); err != nil {
				e.log.Warn("notification failed", zap.Error(err))
			}
		}
	})

	fmt.Fprintf(cmd.OutOrStdout(), " Watching analytics every %s (Ctrl-C to stop)\n", watchInterval)
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
