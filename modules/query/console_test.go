package query

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupConsole creates a console over an in-memory database with a small
// tasks table.
func setupConsole(t *testing.T) *Console {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ddl := `CREATE TABLE tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		status TEXT DEFAULT 'pending',
		created_at DATETIME
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("failed to create tasks table: %v", err)
	}
	seed := `INSERT INTO tasks (title, status, created_at) VALUES
		('Alpha', 'pending', '2024-01-15 10:30:00'),
		('Beta', 'completed', '2024-01-16 11:00:00')`
	if err := db.Exec(seed).Error; err != nil {
		t.Fatalf("failed to seed tasks table: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}

	return NewConsole(sqlDB)
}

func TestConsole_PolicyGate(t *testing.T) {
	console := setupConsole(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{"drop statement", "DROP TABLE tasks", ErrNotSelect},
		{"insert statement", "insert into tasks (title) values ('x')", ErrNotSelect},
		{"empty statement", "", ErrNotSelect},
		{"whitespace only", "   \n\t  ", ErrNotSelect},
		{"piggybacked drop", "select * from tasks; drop table tasks", ErrProhibited},
		{"piggybacked delete with newline", "select * from tasks;\ndelete from tasks", ErrProhibited},
		{"piggybacked uppercase", "SELECT * FROM tasks; DROP TABLE tasks", ErrProhibited},
		{"piggybacked with spacing", "select 1;   UPDATE tasks set title='x'", ErrProhibited},
		{"leading whitespace select", "   SELECT 1", nil},
		{"plain select", "select id, title from tasks", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := console.Execute(ctx, tc.query)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("Execute(%q) unexpected error = %v", tc.query, err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Execute(%q) error = %v, want %v", tc.query, err, tc.wantErr)
			}
		})
	}
}

func TestConsole_Execute(t *testing.T) {
	console := setupConsole(t)
	ctx := context.Background()

	result, err := console.Execute(ctx, "select id, title from tasks")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	wantColumns := []string{"id", "title"}
	if len(result.Columns) != len(wantColumns) {
		t.Fatalf("expected columns %v, got %v", wantColumns, result.Columns)
	}
	for i, col := range wantColumns {
		if result.Columns[i] != col {
			t.Errorf("expected column %d = %q, got %q", i, col, result.Columns[i])
		}
	}

	if len(result.Rows) != 2 {
		t.Fatalf("expected one row per task, got %d rows", len(result.Rows))
	}
	if result.Rows[0][1] != "Alpha" || result.Rows[1][1] != "Beta" {
		t.Errorf("unexpected row values: %v", result.Rows)
	}
}

func TestConsole_NormalizesTimestamps(t *testing.T) {
	console := setupConsole(t)

	result, err := console.Execute(context.Background(), "select created_at from tasks where title = 'Alpha'")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}

	got, ok := result.Rows[0][0].(string)
	if !ok {
		t.Fatalf("expected timestamp cell to be a string, got %T", result.Rows[0][0])
	}
	if got != "2024-01-15 10:30:00" {
		t.Errorf("expected %q, got %q", "2024-01-15 10:30:00", got)
	}
}

func TestConsole_ExecError(t *testing.T) {
	console := setupConsole(t)

	_, err := console.Execute(context.Background(), "select nope from missing_table")
	if err == nil {
		t.Fatal("expected error for missing table")
	}

	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("expected *ExecError, got %T: %v", err, err)
	}
	if execErr.Msg == "" {
		t.Error("expected the engine message to be carried")
	}
}

func TestNormalize(t *testing.T) {
	if got := normalize([]byte("raw")); got != "raw" {
		t.Errorf("expected byte slice to become string, got %v", got)
	}
	if got := normalize(int64(42)); got != int64(42) {
		t.Errorf("expected int64 passthrough, got %v", got)
	}
	if got := normalize(nil); got != nil {
		t.Errorf("expected nil passthrough, got %v", got)
	}
}
