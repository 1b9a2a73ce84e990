package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"economap/internal/config"
	"economap/internal/ingest"
	"economap/internal/store"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the fixture into an empty store",
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := seedStore(ctx, cfg, db)
	if err != nil {
		return err
	}

	if !result.Created {
		fmt.Fprintln(os.Stdout, "Store already initialised, nothing to do.")
		return nil
	}
	fmt.Fprintln(os.Stdout, "Seed complete.")
	fmt.Fprintf(os.Stdout, "  Objects inserted: %d\n", result.ObjectsInserted)
	fmt.Fprintf(os.Stdout, "  Links inserted:   %d\n", result.LinksInserted)
	return nil
}

func seedStore(ctx context.Context, cfg *config.ProjectConfig, db store.Store) (*ingest.Result, error) {
	fixture := config.DefaultFixture()
	if cfg.Seed.Fixture != "" {
		loaded, err := config.LoadFixture(cfg.Seed.Fixture)
		if err != nil {
			return nil, err
		}
		fixture = loaded
	}
	return ingest.Run(ctx, db, fixture, ingest.Options{LinksTable: cfg.Tables.Links})
}
