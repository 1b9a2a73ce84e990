package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"economap/internal/catalog"
	"economap/internal/graph"
	"economap/internal/propagate"
)

func simulateCmd() *cobra.Command {
	var delta float64
	cmd := &cobra.Command{
		Use:   "simulate <object-id>",
		Short: "Simulate a price change and its direct effect on dependents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid object id %q: %w", args[0], err)
			}
			return runSimulate(id, delta)
		},
	}
	cmd.Flags().Float64Var(&delta, "delta", 0, "Price change applied to the source object")
	return cmd
}

func runSimulate(id int64, delta float64) error {
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

	result, err := propagate.NewEngine(graph.NewClient(db, cfg.Tables.Links)).Simulate(ctx, table, id, delta)
	if err != nil {
		return err
	}
	if !result.Found() {
		fmt.Fprintf(os.Stdout, "Object %d not found.\n", id)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOLD PRICE\tNEW PRICE\tPROBABILITY")
	for _, row := range result.Rows {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%.2f\t%.2f\n", row.ObjectID, row.Name, row.OldPrice, row.NewPrice, row.Probability)
	}
	return w.Flush()
}
