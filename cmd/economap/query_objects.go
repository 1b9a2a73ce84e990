package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"economap/internal/catalog"
	"economap/internal/graph"
)

func queryObjectsCmd() *cobra.Command {
	var search string
	var order string
	cmd := &cobra.Command{
		Use:   "objects",
		Short: "List or search economic objects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueryObjects(search, order)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Match name, category or origin country")
	cmd.Flags().StringVar(&order, "order", graph.OrderPriceDesc, "Sort order: base_price_2025_desc, base_price_2025_asc or name_asc")
	return cmd
}

func runQueryObjects(search, order string) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	table, err := catalog.New(db).ResolveObjectsTable(ctx)
	if err != nil {
		return err
	}
	if table == nil {
		fmt.Fprintln(os.Stdout, "No objects table found.")
		return nil
	}

	result, err := graph.NewClient(db, cfg.Tables.Links).SearchObjects(ctx, table, graph.SearchOptions{Query: search, Order: order})
	if err != nil {
		return err
	}
	if len(result.Rows) == 0 {
		fmt.Fprintln(os.Stdout, "No objects found.")
		return nil
	}
	return printRows(result)
}

func queryOriginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "origin <name>",
		Short: "Show where an object comes from",
		Args:  cobra.ExactArgs(1),
		RunE:  runQueryOrigin,
	}
}

func runQueryOrigin(cmd *cobra.Command, args []string) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	table, err := catalog.New(db).ResolveObjectsTable(ctx)
	if err != nil {
		return err
	}
	origin, err := graph.NewClient(db, cfg.Tables.Links).LookupOrigin(ctx, table, args[0])
	if err != nil {
		return err
	}
	if origin == nil {
		fmt.Fprintf(os.Stdout, "No object matching %q.\n", args[0])
		return nil
	}

	if origin.Category != "" {
		fmt.Fprintf(os.Stdout, "%s (%s): %s\n", origin.Name, origin.Category, origin.OriginCountry)
	} else {
		fmt.Fprintf(os.Stdout, "%s: %s\n", origin.Name, origin.OriginCountry)
	}
	return nil
}

func queryOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Average base price and the latest objects",
		Args:  cobra.NoArgs,
		RunE:  runQueryOverview,
	}
}

func runQueryOverview(cmd *cobra.Command, args []string) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	table, err := catalog.New(db).ResolveObjectsTable(ctx)
	if err != nil {
		return err
	}
	if table == nil {
		fmt.Fprintln(os.Stdout, "No objects table found.")
		return nil
	}

	overview, err := graph.NewClient(db, cfg.Tables.Links).Overview(ctx, table)
	if err != nil {
		return err
	}
	if overview.AveragePrice != nil {
		fmt.Fprintf(os.Stdout, "Average base price 2025: %.2f\n", *overview.AveragePrice)
	}
	fmt.Fprintln(os.Stdout, "Latest objects:")
	return printRows(overview.Latest)
}
