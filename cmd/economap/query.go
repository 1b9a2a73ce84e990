package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"economap/internal/store"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Inspect the store from the CLI",
	}
	cmd.AddCommand(queryTablesCmd())
	cmd.AddCommand(querySchemaCmd())
	cmd.AddCommand(queryObjectsCmd())
	cmd.AddCommand(queryOriginCmd())
	cmd.AddCommand(querySQLCmd())
	cmd.AddCommand(queryOverviewCmd())
	return cmd
}

// printRows writes a result set as JSON, keeping the column order.
func printRows(result *store.ResultSet) error {
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}
