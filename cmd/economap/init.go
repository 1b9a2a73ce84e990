package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"economap/internal/config"
)

func initCmd() *cobra.Command {
	var projectName string
	var dsn string
	var skipSeed bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold an economap project and seed its store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			if err := runInit(projectName, dsn); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Wrote %s.\n", configPath)
			if skipSeed {
				return nil
			}
			return runSeed(cmd, args)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	cmd.Flags().StringVar(&dsn, "dsn", "sqlite://economap.db", "Database DSN (sqlite:// or postgres://)")
	cmd.Flags().BoolVar(&skipSeed, "no-seed", false, "Only write the config file")
	return cmd
}

func runInit(projectName, dsn string) error {
	return config.WriteProjectConfig(configPath, config.NewProjectConfig(projectName, dsn))
}
