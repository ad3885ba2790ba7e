package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/agentic-research/roadmap-content/internal/app"
	"github.com/agentic-research/roadmap-content/internal/backfill"
)

var statusCmd = &cobra.Command{
	Use:   "status [roadmap-id]",
	Short: "Show which topic content files are missing, empty or written",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return runStatus(cmd.OutOrStdout(), a, args[0])
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List roadmap ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		ids, err := a.Roadmaps()
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

func runStatus(w io.Writer, a *app.App, id string) error {
	results, err := a.Status(id)
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Fprintln(w, r)
	}
	report := backfill.NewReport(results)
	fmt.Fprintf(w, "\n%d topics: %s\n", len(results), report.Summary())
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd, listCmd)
}
