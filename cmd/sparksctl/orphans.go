package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/domain"
)

func newOrphansCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "orphans",
		Short: "List identity accounts left without a profile after a failed rollback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), root, func(a *bootstrap.App) error {
				entries, err := a.Services.Audit.List(cmd.Context(), domain.ActionOrphanedAccount, limit)
				if err != nil {
					return err
				}

				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "TIME\tEMAIL\tUID\tERROR")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
						e.Timestamp.Format(time.RFC3339),
						e.Details["email"],
						e.Details[domain.AuditDetailOrphanedUID],
						e.Error,
					)
				}

				return tw.Flush()
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum number of entries")

	return cmd
}
