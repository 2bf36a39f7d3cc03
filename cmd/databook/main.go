// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Databook Authors

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/databook-project/databook/internal/config"
	"github.com/databook-project/databook/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewLogger("cli")

	root := &cobra.Command{
		Use:   "databook",
		Short: "Databook configuration tooling",
		Long: `Databook resolves its runtime configuration from bundled defaults, the
user configuration file and DATABOOK__SECTION__KEY environment variables
before any other component is allowed to start. These commands run the same
resolution pipeline standalone.`,
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Databook %s\n", orNA(buildVersion))
			fmt.Printf("Build date: %s\n", orNA(buildDate))
			fmt.Printf("Build commit: %s\n", orNA(buildCommit))
			fmt.Printf("Config schema: v%s\n", config.SchemaVersion)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "validate-config",
		Short: "Resolve and validate the configuration",
		Long: `Runs the full merge, interpolate, coerce and validate pipeline and exits
non-zero if any problem is found. All problems are reported together, with
secret values redacted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// same startup path long-running components take: no store, no start
			store, err := config.NewStore(config.Load)
			if err != nil {
				return err
			}
			cfg := store.Current()
			log.ApplyLevel(cfg.Core()).ConfigSnapshot(cfg)
			fmt.Println("configuration OK")
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "render-config",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			fmt.Print(cfg.Render())
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
