package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blackwell-systems/sentimeter/internal/feedback"
)

var editSet []string

var editCmd = &cobra.Command{
	Use:   "edit <feedback-id>",
	Short: "Change answers on stored feedback and rescore it",
	Long: `Apply answer changes to a stored feedback record, rescore it under its
own schema, and store the result with an updated timestamp. An empty value
clears the answer.

Editable fields: ` + strings.Join(feedback.Fields(), ", "),
	Example: `  sentimeter edit 1700000000000 --set quality=Excellent --set usage=`,
	Args:    cobra.ExactArgs(1),
	RunE:    runEdit,
}

func init() {
	editCmd.Flags().StringArrayVar(&editSet, "set", nil, "Answer change as field=value (repeatable)")
	_ = editCmd.MarkFlagRequired("set")
	rootCmd.AddCommand(editCmd)
}

func parseChanges(pairs []string) (map[string]string, error) {
	changes := make(map[string]string, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid change %q, want field=value", p)
		}
		changes[key] = value
	}
	return changes, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	changes, err := parseChanges(editSet)
	if err != nil {
		return err
	}

	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	id := feedback.ID(args[0])
	r, err := e.db.GetFeedback(id)
	if err != nil {
		return err
	}
	updated, err := e.engine.Edit(cmd.Context(), *r, changes)
	if err != nil {
		return err
	}
	if err := e.db.ReplaceFeedback(&updated); err != nil {
		return fmt.Errorf("storing feedback: %w", err)
	}
	e.log.Info("feedback edited", zap.String("id", string(id)), zap.Int("changes", len(changes)))

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), updated)
	}
	fmt.Fprintf(cmd.OutOrStdout(), " Updated feedback %s\n\n", updated.ID)
	renderResult(cmd.OutOrStdout(), updated)
	return nil
}
