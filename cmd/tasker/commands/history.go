package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [task]",
		Short: "Show the latest recorded run of every task, or of one task",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var task string
			if len(args) == 1 {
				task = args[0]
			}
			records, err := c.app.History(task)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				msg := "no runs recorded"
				if task != "" {
					msg += " for " + task
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), msg)
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "TASK\tSTATUS\tSTARTED\tDURATION\tFINGERPRINT")
			for _, r := range records {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					r.TaskName,
					r.Status,
					r.StartedAt.Local().Format(time.DateTime),
					r.Duration().Round(time.Millisecond),
					r.Fingerprint,
				)
			}
			return tw.Flush()
		},
	}
}
