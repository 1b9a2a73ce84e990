package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"economap/internal/catalog"
)

func queryTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List user tables",
		Args:  cobra.NoArgs,
		RunE:  runQueryTables,
	}
}

func runQueryTables(cmd *cobra.Command, args []string) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	tables, err := catalog.New(db).ListTables(ctx)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		fmt.Fprintln(os.Stdout, "No tables found.")
		return nil
	}
	for _, table := range tables {
		fmt.Fprintln(os.Stdout, table)
	}
	return nil
}

func querySchemaCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Describe every table with its columns and first rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuerySchema(limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", catalog.DefaultPreviewLimit, "Preview rows per table")
	return cmd
}

func runQuerySchema(limit int) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	descriptions, err := catalog.New(db).Describe(ctx, limit)
	if err != nil {
		return err
	}
	if len(descriptions) == 0 {
		fmt.Fprintln(os.Stdout, "No tables found.")
		return nil
	}

	for i, desc := range descriptions {
		if i > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		columns := make([]string, 0, len(desc.Columns))
		for _, col := range desc.Columns {
			columns = append(columns, fmt.Sprintf("%s %s", col.Name, col.Type))
		}
		fmt.Fprintf(os.Stdout, "%s (%s)\n", desc.Name, strings.Join(columns, ", "))
		if err := printRows(desc.Preview); err != nil {
			return err
		}
	}
	return nil
}
