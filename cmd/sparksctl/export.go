package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/export"
)

type exportOptions struct {
	collegeID string
	format    string
	out       string
}

func newExportCmd(root *rootOptions) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the ranked roster of a college as CSV or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(opts.format)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), root, func(a *bootstrap.App) error {
				college, ranked, err := a.Services.Students.RankedRoster(cmd.Context(), opts.collegeID)
				if err != nil {
					return err
				}

				out := opts.out
				if out == "" {
					out = fmt.Sprintf("%s.%s", college.ID, format)
				}

				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("os.Create -> %w", err)
				}
				if err = export.Write(f, format, college, ranked); err != nil {
					_ = f.Close()
					return fmt.Errorf("export.Write -> %w", err)
				}
				if err = f.Close(); err != nil {
					return fmt.Errorf("f.Close -> %w", err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d students to %s\n", len(ranked), out)

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.collegeID, "college", "", "College ID (required)")
	cmd.Flags().StringVar(&opts.format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default: <college>.<format>)")
	_ = cmd.MarkFlagRequired("college")

	return cmd
}
