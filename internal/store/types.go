package store

import (
	"fmt"
	"strconv"
)

type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Row map[string]any

// ResultSet keeps column order alongside the rows, which maps lose.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type ObjectInput struct {
	Name            string
	Category        string
	OriginCountry   string
	BasePrice2025   float64
	EcosystemImpact float64
	EconomicImpact  float64
	Stock           int64
}

type LinkInput struct {
	SourceObjectID int64
	TargetObjectID int64
	Probability    float64
	RelationType   string
}

// Float converts a driver value to float64. SQLite may hand back an integer
// for a REAL column holding a whole number; pgx returns int16 for SMALLINT.
func Float(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case int:
		return float64(n), nil
	case []byte:
		return strconv.ParseFloat(string(n), 64)
	case string:
		return strconv.ParseFloat(n, 64)
	case nil:
		return 0, fmt.Errorf("null value")
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

func Int(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case []byte:
		return strconv.ParseInt(string(n), 10, 64)
	case string:
		return strconv.ParseInt(n, 10, 64)
	case nil:
		return 0, fmt.Errorf("null value")
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}

func String(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}
