package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"economap/internal/querygate"
)

func querySQLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sql [query]",
		Short: "Run a read-only SELECT query",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if strings.TrimSpace(query) == "" {
				query = querygate.DefaultQuery
			}
			return runSQL(query)
		},
	}
	return cmd
}

func runSQL(query string) error {
	ctx, cfg, err := loadProject()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := querygate.NewConsole(db).Run(ctx, query)
	if err != nil {
		var storeErr *querygate.StoreError
		if errors.As(err, &storeErr) {
			return fmt.Errorf("SQL error: %w", storeErr)
		}
		return err
	}
	return printRows(result)
}
