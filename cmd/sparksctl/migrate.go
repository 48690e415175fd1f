package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sparkslearn/console/internal/bootstrap"
	"github.com/sparkslearn/console/internal/repository/dao"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the Postgres schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := bootstrap.OpenDB(root.conf)
			if err != nil {
				return err
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}

			if reset {
				zap.L().Warn("dropping every console table")
				if err = dao.DropAllTables(gdb); err != nil {
					return fmt.Errorf("dao.DropAllTables -> %w", err)
				}
				if err = dao.InitTables(gdb); err != nil {
					return fmt.Errorf("dao.InitTables -> %w", err)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return nil
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Drop every table before migrating")

	return cmd
}
