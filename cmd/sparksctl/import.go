package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparkslearn/console/internal/bootstrap"
)

type importOptions struct {
	collegeID string
	file      string
	dryRun    bool
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a CSV roster into a college",
		Long: "Reconciles the CSV against the college and the existing roster, then registers every " +
			"accepted student. Interrupting stops the import between rows.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}

			return withApp(cmd.Context(), root, func(a *bootstrap.App) error {
				var out any
				if opts.dryRun {
					out, err = a.Services.Import.Preview(cmd.Context(), opts.collegeID, text)
				} else {
					out, err = a.Services.Import.Import(cmd.Context(), opts.collegeID, text)
				}
				if err != nil {
					return err
				}

				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}

	cmd.Flags().StringVar(&opts.collegeID, "college", "", "College ID (required)")
	cmd.Flags().StringVar(&opts.file, "file", "-", "CSV file, - for stdin")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Only reconcile and print the batch")
	_ = cmd.MarkFlagRequired("college")

	return cmd
}

func readInput(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("io.ReadAll -> %w", err)
		}
		return string(b), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile -> %w", err)
	}

	return string(b), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
