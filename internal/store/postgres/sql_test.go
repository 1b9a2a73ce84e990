package postgres

import (
	"math/big"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no placeholders",
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "sequential placeholders",
			input:    "SELECT * FROM objects WHERE name LIKE ? OR category LIKE ?",
			expected: "SELECT * FROM objects WHERE name LIKE $1 OR category LIKE $2",
		},
		{
			name:     "question mark in literal",
			input:    "SELECT '?' AS q, id FROM objects WHERE id = ?",
			expected: "SELECT '?' AS q, id FROM objects WHERE id = $1",
		},
		{
			name:     "question mark in identifier",
			input:    `SELECT "odd?" FROM t WHERE a = ? AND b = ?`,
			expected: `SELECT "odd?" FROM t WHERE a = $1 AND b = $2`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rebind(tt.input))
		})
	}
}

func TestNormalize(t *testing.T) {
	numeric := pgtype.Numeric{Int: big.NewInt(1250), Exp: -2, Valid: true}
	assert.Equal(t, 12.5, normalize(numeric))
	assert.Nil(t, normalize(pgtype.Numeric{}))
	assert.Equal(t, "Bois brut", normalize("Bois brut"))
	assert.Equal(t, int64(3), normalize(int64(3)))
}
