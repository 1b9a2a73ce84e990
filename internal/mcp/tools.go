package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"economap/internal/graph"
	"economap/internal/propagate"
	"economap/internal/querygate"
	"economap/internal/store"
)

type ListTablesInput struct{}

type DescribeSchemaInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"preview rows per table, default 20"`
}

type ResolveObjectsTableInput struct{}

type ListObjectsInput struct{}

type SearchObjectsInput struct {
	Query string `json:"query,omitempty" jsonschema:"text matched against name, category and origin country"`
	Order string `json:"order,omitempty" jsonschema:"base_price_2025_desc, base_price_2025_asc or name_asc"`
}

type LookupOriginInput struct {
	Name string `json:"name" jsonschema:"object name or part of it"`
}

type OverviewInput struct{}

type SimulatePriceInput struct {
	ObjectID int64   `json:"object_id" jsonschema:"id of the object whose price changes"`
	Delta    float64 `json:"delta" jsonschema:"price change applied to the source object"`
}

type RunQueryInput struct {
	Query string `json:"query" jsonschema:"read-only SELECT statement"`
}

type ColumnOutput struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type RowsOutput struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

type ListTablesOutput struct {
	Tables []string `json:"tables"`
}

type TableOutput struct {
	Name    string         `json:"name"`
	Columns []ColumnOutput `json:"columns"`
	Preview RowsOutput     `json:"preview"`
}

type DescribeSchemaOutput struct {
	Tables []TableOutput `json:"tables"`
}

type ResolveObjectsTableOutput struct {
	Available bool           `json:"available"`
	Table     string         `json:"table,omitempty"`
	Columns   []ColumnOutput `json:"columns,omitempty"`
}

type ObjectSummaryOutput struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	BasePrice2025 float64 `json:"base_price_2025"`
}

type ListObjectsOutput struct {
	Available bool                  `json:"available"`
	Objects   []ObjectSummaryOutput `json:"objects"`
}

type SearchObjectsOutput struct {
	Available bool       `json:"available"`
	Results   RowsOutput `json:"results"`
}

type LookupOriginOutput struct {
	Available     bool   `json:"available"`
	Name          string `json:"name,omitempty"`
	OriginCountry string `json:"origin_country,omitempty"`
	Category      string `json:"category,omitempty"`
}

type OverviewOutput struct {
	Available    bool       `json:"available"`
	AveragePrice *float64   `json:"average_price,omitempty"`
	Latest       RowsOutput `json:"latest"`
}

type AffectedRowOutput struct {
	ObjectID    int64   `json:"object_id"`
	Name        string  `json:"name"`
	OldPrice    float64 `json:"old_price"`
	NewPrice    float64 `json:"new_price"`
	Probability float64 `json:"probability"`
}

type SimulatePriceOutput struct {
	Available bool                `json:"available"`
	Delta     float64             `json:"delta"`
	Rows      []AffectedRowOutput `json:"rows"`
}

type RunQueryOutput struct {
	Results RowsOutput `json:"results"`
	Error   string     `json:"error,omitempty"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_tables",
		Description: "List the user tables in the store",
	}, s.handleListTables)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "describe_schema",
		Description: "Describe every table with its columns and first rows",
	}, s.handleDescribeSchema)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "resolve_objects_table",
		Description: "Find the table holding economic objects",
	}, s.handleResolveObjectsTable)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "list_objects",
		Description: "List objects by name with their base price",
	}, s.handleListObjects)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "search_objects",
		Description: "Search objects by name, category or origin country",
	}, s.handleSearchObjects)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "lookup_origin",
		Description: "Return the origin country and category of an object",
	}, s.handleLookupOrigin)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "overview",
		Description: "Average base price and latest objects",
	}, s.handleOverview)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "simulate_price",
		Description: "Simulate a price change on an object and its direct dependents",
	}, s.handleSimulatePrice)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "run_query",
		Description: "Run a read-only SELECT query",
	}, s.handleRunQuery)
}

func (s *Server) handleListTables(ctx context.Context, req *sdk.CallToolRequest, input ListTablesInput) (*sdk.CallToolResult, ListTablesOutput, error) {
	tables, err := s.catalog.ListTables(ctx)
	if err != nil {
		return nil, ListTablesOutput{}, err
	}
	if tables == nil {
		tables = []string{}
	}
	return nil, ListTablesOutput{Tables: tables}, nil
}

func (s *Server) handleDescribeSchema(ctx context.Context, req *sdk.CallToolRequest, input DescribeSchemaInput) (*sdk.CallToolResult, DescribeSchemaOutput, error) {
	descriptions, err := s.catalog.Describe(ctx, input.Limit)
	if err != nil {
		return nil, DescribeSchemaOutput{}, err
	}
	output := DescribeSchemaOutput{Tables: make([]TableOutput, 0, len(descriptions))}
	for _, desc := range descriptions {
		output.Tables = append(output.Tables, TableOutput{
			Name:    desc.Name,
			Columns: columnOutputs(desc.Columns),
			Preview: rowsOutput(desc.Preview),
		})
	}
	return nil, output, nil
}

func (s *Server) handleResolveObjectsTable(ctx context.Context, req *sdk.CallToolRequest, input ResolveObjectsTableInput) (*sdk.CallToolResult, ResolveObjectsTableOutput, error) {
	table, err := s.catalog.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, ResolveObjectsTableOutput{}, err
	}
	if table == nil {
		return nil, ResolveObjectsTableOutput{}, nil
	}
	return nil, ResolveObjectsTableOutput{
		Available: true,
		Table:     table.Name(),
		Columns:   columnOutputs(table.Columns()),
	}, nil
}

func (s *Server) handleListObjects(ctx context.Context, req *sdk.CallToolRequest, input ListObjectsInput) (*sdk.CallToolResult, ListObjectsOutput, error) {
	table, err := s.catalog.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, ListObjectsOutput{}, err
	}
	objects, err := s.graph.ListObjects(ctx, table)
	if err != nil {
		return nil, ListObjectsOutput{}, err
	}
	output := ListObjectsOutput{
		Available: table != nil,
		Objects:   make([]ObjectSummaryOutput, 0, len(objects)),
	}
	for _, obj := range objects {
		output.Objects = append(output.Objects, objectSummaryOutput(obj))
	}
	return nil, output, nil
}

func (s *Server) handleSearchObjects(ctx context.Context, req *sdk.CallToolRequest, input SearchObjectsInput) (*sdk.CallToolResult, SearchObjectsOutput, error) {
	table, err := s.catalog.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, SearchObjectsOutput{}, err
	}
	result, err := s.graph.SearchObjects(ctx, table, graph.SearchOptions{Query: input.Query, Order: input.Order})
	if err != nil {
		return nil, SearchObjectsOutput{}, err
	}
	return nil, SearchObjectsOutput{Available: table != nil, Results: rowsOutput(result)}, nil
}

func (s *Server) handleLookupOrigin(ctx context.Context, req *sdk.CallToolRequest, input LookupOriginInput) (*sdk.CallToolResult, LookupOriginOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, LookupOriginOutput{}, fmt.Errorf("name is required")
	}
	table, err := s.catalog.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, LookupOriginOutput{}, err
	}
	origin, err := s.graph.LookupOrigin(ctx, table, input.Name)
	if err != nil {
		return nil, LookupOriginOutput{}, err
	}
	if origin == nil {
		return nil, LookupOriginOutput{}, nil
	}
	return nil, LookupOriginOutput{
		Available:     true,
		Name:          origin.Name,
		OriginCountry: origin.OriginCountry,
		Category:      origin.Category,
	}, nil
}

func (s *Server) handleOverview(ctx context.Context, req *sdk.CallToolRequest, input OverviewInput) (*sdk.CallToolResult, OverviewOutput, error) {
	table, err := s.catalog.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, OverviewOutput{}, err
	}
	overview, err := s.graph.Overview(ctx, table)
	if err != nil {
		return nil, OverviewOutput{}, err
	}
	return nil, OverviewOutput{
		Available:    table != nil,
		AveragePrice: overview.AveragePrice,
		Latest:       rowsOutput(overview.Latest),
	}, nil
}

func (s *Server) handleSimulatePrice(ctx context.Context, req *sdk.CallToolRequest, input SimulatePriceInput) (*sdk.CallToolResult, SimulatePriceOutput, error) {
	table, err := s.catalog.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, SimulatePriceOutput{}, err
	}
	result, err := s.engine.Simulate(ctx, table, input.ObjectID, input.Delta)
	if err != nil {
		return nil, SimulatePriceOutput{}, err
	}
	output := SimulatePriceOutput{
		Available: result.Found(),
		Delta:     result.Delta,
		Rows:      make([]AffectedRowOutput, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		output.Rows = append(output.Rows, affectedRowOutput(row))
	}
	return nil, output, nil
}

func (s *Server) handleRunQuery(ctx context.Context, req *sdk.CallToolRequest, input RunQueryInput) (*sdk.CallToolResult, RunQueryOutput, error) {
	result, err := s.console.Run(ctx, input.Query)
	if err != nil {
		var storeErr *querygate.StoreError
		if errors.Is(err, querygate.ErrRejectedQuery) || errors.As(err, &storeErr) {
			return nil, RunQueryOutput{Results: rowsOutput(nil), Error: err.Error()}, nil
		}
		return nil, RunQueryOutput{}, err
	}
	return nil, RunQueryOutput{Results: rowsOutput(result)}, nil
}

func columnOutputs(columns []store.Column) []ColumnOutput {
	out := make([]ColumnOutput, 0, len(columns))
	for _, col := range columns {
		out = append(out, ColumnOutput{Name: col.Name, Type: col.Type})
	}
	return out
}

func rowsOutput(result *store.ResultSet) RowsOutput {
	if result == nil {
		return RowsOutput{Columns: []string{}, Rows: []map[string]any{}}
	}
	out := RowsOutput{
		Columns: append([]string{}, result.Columns...),
		Rows:    make([]map[string]any, 0, len(result.Rows)),
	}
	for _, row := range result.Rows {
		out.Rows = append(out.Rows, map[string]any(row))
	}
	return out
}

func objectSummaryOutput(obj graph.ObjectSummary) ObjectSummaryOutput {
	return ObjectSummaryOutput{
		ID:            obj.ID,
		Name:          obj.Name,
		BasePrice2025: obj.BasePrice2025,
	}
}

func affectedRowOutput(row propagate.AffectedRow) AffectedRowOutput {
	return AffectedRowOutput{
		ObjectID:    row.ObjectID,
		Name:        row.Name,
		OldPrice:    row.OldPrice,
		NewPrice:    row.NewPrice,
		Probability: row.Probability,
	}
}
