// Package query implements the ad-hoc read-only SQL console.
//
// The console screens statements with a textual allowlist/denylist before
// running them. String matching against SQL is a known-weak boundary; the
// real fix is a read-only connection at the engine level. The heuristic is
// kept because the console is a low-stakes diagnostic tool.
package query

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrNotSelect is returned when the statement does not begin with SELECT.
var ErrNotSelect = errors.New("Only SELECT queries are allowed for security reasons.")

// ErrProhibited is returned when the denylist matches the statement.
var ErrProhibited = errors.New("Query contains prohibited statements.")

// denylist matches a semicolon followed by a mutating keyword anywhere in
// the statement, case-insensitively, across embedded newlines.
var denylist = regexp.MustCompile(`(?is);\s*(drop|delete|update|insert|alter|create|replace)`)

// queryTimeout is a best-effort cap on console query duration.
const queryTimeout = 5 * time.Second

// timestampLayout is how date/time result cells are rendered.
const timestampLayout = "2006-01-02 15:04:05"

// Result is the tabular outcome of a console query.
type Result struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ExecError carries the storage engine's message for a failed query.
// The raw text is shown to the user; the console is the one place where
// engine errors are surfaced verbatim.
type ExecError struct {
	Msg string
}

func (e *ExecError) Error() string {
	return "Error executing query: " + e.Msg
}

// Console executes screened read-only statements against the task database.
// The *sql.DB is an explicit dependency; each call checks out a single
// connection from the pool and releases it before returning.
type Console struct {
	db *sql.DB
}

// NewConsole creates a console bound to the given database handle.
func NewConsole(db *sql.DB) *Console {
	return &Console{db: db}
}

// Execute screens and runs one statement. It is a single-shot synchronous
// call with no retry.
func (c *Console) Execute(ctx context.Context, raw string) (*Result, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), "select") {
		return nil, ErrNotSelect
	}
	if denylist.MatchString(raw) {
		return nil, ErrProhibited
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, &ExecError{Msg: err.Error()}
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, raw)
	if err != nil {
		return nil, &ExecError{Msg: err.Error()}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ExecError{Msg: err.Error()}
	}

	result := &Result{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &ExecError{Msg: err.Error()}
		}
		row := make([]any, len(columns))
		for i, v := range values {
			row[i] = normalize(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &ExecError{Msg: err.Error()}
	}

	return result, nil
}

// normalize renders date/time cells as "YYYY-MM-DD HH:MM:SS" text and byte
// slices as strings; every other value passes through unchanged.
func normalize(v any) any {
	switch val := v.(type) {
	case time.Time:
		return val.Format(timestampLayout)
	case []byte:
		return string(val)
	default:
		return v
	}
}
