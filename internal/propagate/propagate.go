// Package propagate simulates how a price change on one object spreads to
// the objects that depend on it.
//
// Propagation is one hop only: a dependent's own links are never followed.
// The link graph may contain cycles (mutual "<=>" relations), and a single
// hop keeps every simulation bounded without any cycle handling.
package propagate

import (
	"context"
	"fmt"
	"math"

	"economap/internal/catalog"
	"economap/internal/ctxlog"
	"economap/internal/graph"
	"economap/internal/metrics"
)

// Reader is the part of the graph client the engine depends on.
type Reader interface {
	GetObject(ctx context.Context, table *catalog.ObjectsTable, id int64) (*graph.ObjectSummary, error)
	OutgoingLinks(ctx context.Context, table *catalog.ObjectsTable, sourceID int64) ([]graph.OutgoingLink, error)
}

type AffectedRow struct {
	ObjectID    int64
	Name        string
	OldPrice    float64
	NewPrice    float64
	Probability float64
}

type Result struct {
	// Source is nil when the requested object does not exist.
	Source *graph.ObjectSummary
	Delta  float64
	Rows   []AffectedRow
}

// Found reports whether there was anything to simulate.
func (r *Result) Found() bool {
	return r != nil && r.Source != nil
}

type Engine struct {
	graph Reader
}

func NewEngine(reader Reader) *Engine {
	return &Engine{graph: reader}
}

// Simulate applies delta to the source object and delta*probability to each
// direct dependent. Probabilities are applied as-is, including values outside
// [0,1]. A missing table or source yields an empty result, not an error.
func (e *Engine) Simulate(ctx context.Context, table *catalog.ObjectsTable, sourceID int64, delta float64) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	result := &Result{Delta: delta, Rows: []AffectedRow{}}

	if table == nil {
		metrics.RecordSimulation(metrics.OutcomeNoTable, 0)
		logger.Warn("simulation skipped, no objects table", "source_id", sourceID)
		return result, nil
	}

	source, err := e.graph.GetObject(ctx, table, sourceID)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	if source == nil {
		metrics.RecordSimulation(metrics.OutcomeNotFound, 0)
		logger.Debug("simulation source not found", "source_id", sourceID)
		return result, nil
	}
	result.Source = source

	links, err := e.graph.OutgoingLinks(ctx, table, sourceID)
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}

	result.Rows = make([]AffectedRow, 0, len(links)+1)
	result.Rows = append(result.Rows, AffectedRow{
		ObjectID:    source.ID,
		Name:        source.Name,
		OldPrice:    source.BasePrice2025,
		NewPrice:    Round2(source.BasePrice2025 + delta),
		Probability: 1.0,
	})
	for _, link := range links {
		propagated := delta * link.Probability
		result.Rows = append(result.Rows, AffectedRow{
			ObjectID:    link.TargetID,
			Name:        link.TargetName,
			OldPrice:    link.TargetBasePrice2025,
			NewPrice:    Round2(link.TargetBasePrice2025 + propagated),
			Probability: link.Probability,
		})
	}

	metrics.RecordSimulation(metrics.OutcomeSimulated, len(result.Rows))
	logger.Debug("simulated price change", "source_id", sourceID, "delta", delta, "affected", len(result.Rows))
	return result, nil
}

// Round2 rounds to two decimal places, halves away from zero.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
