package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tasker/internal/app"
	"go.trai.ch/tasker/internal/engine/resolver"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <task>",
		Short: "Run a task after its dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			file := taskfileFlag(cmd)

			dryRun, _ := cmd.Flags().GetBool("dry-run")
			if dryRun {
				plan, err := c.app.Plan(file, args[0])
				if err != nil {
					return err
				}
				return printPlan(cmd.OutOrStdout(), plan)
			}
			return c.app.Run(cmd.Context(), args[0], app.RunOptions{Taskfile: file})
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print the execution queue without running anything")
	return cmd
}

func printPlan(w io.Writer, plan *resolver.Plan) error {
	i := 0
	for task := range plan.Tasks() {
		i++
		if _, err := fmt.Fprintf(w, "%d. %s\n", i, task.Name); err != nil {
			return err
		}
		for _, cmd := range task.Commands {
			if _, err := fmt.Fprintf(w, "    %s\n", cmd); err != nil {
				return err
			}
		}
	}
	return nil
}
