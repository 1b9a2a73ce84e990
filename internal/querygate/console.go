package querygate

import (
	"context"
	"errors"
	"strings"

	"economap/internal/ctxlog"
	"economap/internal/metrics"
	"economap/internal/store"
)

const DefaultQuery = "SELECT * FROM objects LIMIT 20"

// ErrRejectedQuery is returned when a query fails IsSafeReadQuery. Its
// message is meant to be shown to the user as-is.
var ErrRejectedQuery = errors.New("only non-destructive SELECT queries are allowed")

var errMultipleStatements = errors.New("only one statement at a time is allowed")

// StoreError wraps a fault raised by the store while running a console
// query. It is a user-facing validation result, not a system fault.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }

type Querier interface {
	Query(ctx context.Context, query string, args ...any) (*store.ResultSet, error)
}

type Console struct {
	db Querier
}

func NewConsole(db Querier) *Console {
	return &Console{db: db}
}

// Run executes text after it passes the gate. No parameters are bound: the
// console is a raw pass-through.
func (c *Console) Run(ctx context.Context, text string) (*store.ResultSet, error) {
	logger := ctxlog.FromContext(ctx)

	allowed := IsSafeReadQuery(text)
	metrics.RecordGateDecision(allowed)
	if !allowed {
		logger.Info("rejected console query", "query", text)
		return nil, ErrRejectedQuery
	}

	// The drivers run every statement of a stacked string, and the gate only
	// inspects the first one.
	if !singleStatement(text) {
		logger.Info("rejected stacked console query", "query", text)
		return nil, &StoreError{Err: errMultipleStatements}
	}

	result, err := c.db.Query(ctx, text)
	if err != nil {
		logger.Warn("console query failed", "error", err)
		// Show the driver's message without the store's wrapping prefix.
		if inner := errors.Unwrap(err); inner != nil {
			err = inner
		}
		return nil, &StoreError{Err: err}
	}
	return result, nil
}

// singleStatement reports whether nothing but whitespace and semicolons
// follows the first semicolon outside quotes and comments. Unterminated
// quotes or comments count as a single statement; the store rejects them.
func singleStatement(text string) bool {
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c == '\'' || c == '"' || c == '`' || c == '[':
			closer := c
			if c == '[' {
				closer = ']'
			}
			end := strings.IndexByte(text[i+1:], closer)
			if end < 0 {
				return true
			}
			i += end + 1
		case c == '-' && strings.HasPrefix(text[i:], "--"):
			end := strings.IndexByte(text[i:], '\n')
			if end < 0 {
				return true
			}
			i += end
		case c == '/' && strings.HasPrefix(text[i:], "/*"):
			end := strings.Index(text[i+2:], "*/")
			if end < 0 {
				return true
			}
			i += end + 3
		case c == ';':
			return strings.Trim(text[i:], "; \t\r\n") == ""
		}
	}
	return true
}
