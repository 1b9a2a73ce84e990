// Package validate reports consistency issues in the objects and links data.
// Nothing here is enforced at query time; the report is advisory.
package validate

import (
	"context"
	"fmt"

	"economap/internal/catalog"
	"economap/internal/graph"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeObjectsTableMissing = "objects_table_missing"
	codeObjectsIDMissing    = "objects_id_missing"
	codeLinksTableMissing   = "links_table_missing"
	codeDanglingLink        = "dangling_link"
	codeProbabilityRange    = "probability_out_of_range"
	codeSelfLink            = "self_link"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Table    string
	LinkID   int64
}

type Report struct {
	ObjectsTable string
	Issues       []Issue
}

func Run(ctx context.Context, schema SchemaReader, reader GraphReader) (*Report, error) {
	if schema == nil {
		return nil, fmt.Errorf("schema reader is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("graph reader is required")
	}

	report := &Report{Issues: make([]Issue, 0)}

	table, err := schema.ResolveObjectsTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve objects table: %w", err)
	}
	if table == nil {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     codeObjectsTableMissing,
			Message:  fmt.Sprintf("no table has columns %v", catalog.RequiredColumns),
		})
		return report, nil
	}
	report.ObjectsTable = table.Name()

	if !table.Has("id") {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityError,
			Code:     codeObjectsIDMissing,
			Message:  "objects table has no id column; lookups and links cannot resolve",
			Table:    table.Name(),
		})
		return report, nil
	}

	tables, err := schema.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	if !containsString(tables, reader.LinksTable()) {
		report.Issues = append(report.Issues, Issue{
			Severity: SeverityWarn,
			Code:     codeLinksTableMissing,
			Message:  "links table not found; simulations only affect the source object",
			Table:    reader.LinksTable(),
		})
		return report, nil
	}

	objects, err := reader.ListObjects(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	known := make(map[int64]struct{}, len(objects))
	for _, obj := range objects {
		known[obj.ID] = struct{}{}
	}

	links, err := reader.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	for _, link := range links {
		report.Issues = append(report.Issues, validateLink(link, known, reader.LinksTable())...)
	}

	return report, nil
}

func validateLink(link graph.Link, known map[int64]struct{}, linksTable string) []Issue {
	var issues []Issue
	if _, ok := known[link.SourceObjectID]; !ok {
		issues = append(issues, linkIssue(link, linksTable, SeverityWarn, codeDanglingLink,
			fmt.Sprintf("source object %d does not exist", link.SourceObjectID)))
	}
	if _, ok := known[link.TargetObjectID]; !ok {
		issues = append(issues, linkIssue(link, linksTable, SeverityWarn, codeDanglingLink,
			fmt.Sprintf("target object %d does not exist; link is ignored by simulations", link.TargetObjectID)))
	}
	if link.Probability < 0 || link.Probability > 1 {
		issues = append(issues, linkIssue(link, linksTable, SeverityWarn, codeProbabilityRange,
			fmt.Sprintf("probability %g outside [0,1] is applied literally", link.Probability)))
	}
	if link.SourceObjectID == link.TargetObjectID {
		issues = append(issues, linkIssue(link, linksTable, SeverityWarn, codeSelfLink,
			fmt.Sprintf("object %d links to itself", link.SourceObjectID)))
	}
	return issues
}

func linkIssue(link graph.Link, linksTable string, severity Severity, code, message string) Issue {
	return Issue{
		Severity: severity,
		Code:     code,
		Message:  message,
		Table:    linksTable,
		LinkID:   link.ID,
	}
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
