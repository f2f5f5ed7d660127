// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/taibuivan/tinytales/internal/platform/migration"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the audit trail migrations and exit",
		Long: `Apply every pending audit schema migration to DATABASE_URL.

serve runs the same migrations at startup; this command lets a deploy job
apply them ahead of rolling out new portal instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}

			if !cfg.AuditEnabled() {
				return errors.New("migrate: DATABASE_URL is not set")
			}
			return migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log)
		},
	}
}
