package graph

import (
	"fmt"

	"economap/internal/store"
)

// ObjectSummary is the lightweight view used for selection lists and as the
// simulation source.
type ObjectSummary struct {
	ID            int64
	Name          string
	BasePrice2025 float64
}

type OutgoingLink struct {
	TargetID            int64
	Probability         float64
	TargetName          string
	TargetBasePrice2025 float64
}

type Link struct {
	ID             int64
	SourceObjectID int64
	TargetObjectID int64
	Probability    float64
	RelationType   string
}

type Origin struct {
	Name          string
	OriginCountry string
	Category      string
}

type Overview struct {
	// AveragePrice is nil when the table holds no rows.
	AveragePrice *float64
	Latest       *store.ResultSet
}

func objectSummaryFromRow(row store.Row) (ObjectSummary, error) {
	id, err := store.Int(row["id"])
	if err != nil {
		return ObjectSummary{}, fmt.Errorf("object id: %w", err)
	}
	price, err := store.Float(row["base_price_2025"])
	if err != nil {
		return ObjectSummary{}, fmt.Errorf("object %d base_price_2025: %w", id, err)
	}
	return ObjectSummary{ID: id, Name: store.String(row["name"]), BasePrice2025: price}, nil
}

func outgoingLinkFromRow(row store.Row) (OutgoingLink, error) {
	target, err := store.Int(row["target_object_id"])
	if err != nil {
		return OutgoingLink{}, fmt.Errorf("link target: %w", err)
	}
	probability, err := store.Float(row["probability"])
	if err != nil {
		return OutgoingLink{}, fmt.Errorf("link to %d probability: %w", target, err)
	}
	price, err := store.Float(row["base_price_2025"])
	if err != nil {
		return OutgoingLink{}, fmt.Errorf("link to %d base_price_2025: %w", target, err)
	}
	return OutgoingLink{
		TargetID:            target,
		Probability:         probability,
		TargetName:          store.String(row["name"]),
		TargetBasePrice2025: price,
	}, nil
}

func linkFromRow(row store.Row) (Link, error) {
	var link Link
	var err error
	if link.ID, err = store.Int(row["id"]); err != nil {
		return Link{}, fmt.Errorf("link id: %w", err)
	}
	if link.SourceObjectID, err = store.Int(row["source_object_id"]); err != nil {
		return Link{}, fmt.Errorf("link %d source: %w", link.ID, err)
	}
	if link.TargetObjectID, err = store.Int(row["target_object_id"]); err != nil {
		return Link{}, fmt.Errorf("link %d target: %w", link.ID, err)
	}
	if link.Probability, err = store.Float(row["probability"]); err != nil {
		return Link{}, fmt.Errorf("link %d probability: %w", link.ID, err)
	}
	link.RelationType = store.String(row["relation_type"])
	return link, nil
}
