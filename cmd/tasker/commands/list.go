package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/tasker/internal/core/domain"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List declared tasks and their dependencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.app.List(taskfileFlag(cmd))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range tasks {
				deps := domain.NullDependency
				if t.HasDependencies() {
					deps = strings.Join(t.Dependencies, ", ")
				}
				if _, err := fmt.Fprintf(out, "%s: %s\n", t.Name, deps); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
