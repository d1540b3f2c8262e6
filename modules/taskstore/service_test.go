package taskstore

import (
	"context"
	"errors"
	"testing"

	"github.com/example/task-tracker/domain/task"
)

// newTestModule builds a module backed by an in-memory database, without
// the service container plumbing.
func newTestModule(t *testing.T) *Module {
	t.Helper()

	db := setupTestDB(t)
	return &Module{
		cfg:  Config{Backend: BackendMemory},
		db:   db,
		repo: NewRepository(db),
	}
}

func ptr(s string) *string { return &s }

func TestCreateTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		payload, err := m.createTask(ctx, CreateTaskRequest{
			Title:       "Buy milk",
			Description: "Two liters",
			Priority:    task.PriorityHigh,
			DueDate:     "2026-09-15",
		}, nil)
		if err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
		if payload.ID == 0 {
			t.Error("expected a fresh id")
		}
		if payload.Status != task.StatusPending {
			t.Errorf("expected default status %q, got %q", task.StatusPending, payload.Status)
		}
		if payload.CreatedAt != payload.UpdatedAt {
			t.Errorf("expected created_at == updated_at, got %q vs %q", payload.CreatedAt, payload.UpdatedAt)
		}
		if payload.DueDate == nil || *payload.DueDate != "2026-09-15" {
			t.Errorf("expected due date 2026-09-15, got %v", payload.DueDate)
		}
	})

	t.Run("empty title never persists", func(t *testing.T) {
		var before int64
		m.db.Model(&task.Task{}).Count(&before)

		_, err := m.createTask(ctx, CreateTaskRequest{Title: ""}, nil)
		if !errors.Is(err, ErrTitleRequired) {
			t.Fatalf("expected ErrTitleRequired, got %v", err)
		}

		var after int64
		m.db.Model(&task.Task{}).Count(&after)
		if after != before {
			t.Errorf("expected no row persisted, count went %d -> %d", before, after)
		}
	})

	t.Run("empty priority defaults to medium", func(t *testing.T) {
		payload, err := m.createTask(ctx, CreateTaskRequest{Title: "No priority"}, nil)
		if err != nil {
			t.Fatalf("createTask() error = %v", err)
		}
		if payload.Priority != task.PriorityMedium {
			t.Errorf("expected default priority %q, got %q", task.PriorityMedium, payload.Priority)
		}
	})

	t.Run("malformed due date", func(t *testing.T) {
		_, err := m.createTask(ctx, CreateTaskRequest{Title: "Bad date", DueDate: "15/01/2026"}, nil)
		if err == nil {
			t.Fatal("expected error for malformed due date")
		}
	})
}

func TestUpdateTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Title: "Before", Description: "old"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	updated, err := m.updateTask(ctx, UpdateTaskRequest{
		ID:          created.ID,
		Title:       "After",
		Description: "new",
		Status:      task.StatusInProgress,
		Priority:    task.PriorityLow,
		DueDate:     "2026-10-01",
	}, nil)
	if err != nil {
		t.Fatalf("updateTask() error = %v", err)
	}

	got, err := m.getTask(ctx, GetTaskRequest{ID: created.ID}, nil)
	if err != nil {
		t.Fatalf("getTask() error = %v", err)
	}
	if got.Title != "After" || got.Description != "new" ||
		got.Status != task.StatusInProgress || got.Priority != task.PriorityLow {
		t.Errorf("expected last-written fields, got %+v", got)
	}
	if got.DueDate == nil || *got.DueDate != "2026-10-01" {
		t.Errorf("expected due date 2026-10-01, got %v", got.DueDate)
	}
	if updated.UpdatedAt < created.UpdatedAt {
		t.Errorf("expected updated_at to increase: %q -> %q", created.UpdatedAt, updated.UpdatedAt)
	}

	t.Run("title is not re-validated on edit", func(t *testing.T) {
		got, err := m.updateTask(ctx, UpdateTaskRequest{ID: created.ID}, nil)
		if err != nil {
			t.Fatalf("updateTask() with empty title error = %v", err)
		}
		if got.Title != "" {
			t.Errorf("expected empty title to be written, got %q", got.Title)
		}
	})

	t.Run("non-existent task", func(t *testing.T) {
		_, err := m.updateTask(ctx, UpdateTaskRequest{ID: 9999, Title: "x"}, nil)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{
		Title:       "Roundtrip",
		Description: "unchanged",
	}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	t.Run("roundtrip leaves other fields untouched", func(t *testing.T) {
		_, err := m.updateStatus(ctx, UpdateStatusRequest{ID: created.ID, Status: ptr(task.StatusCompleted)}, nil)
		if err != nil {
			t.Fatalf("updateStatus() error = %v", err)
		}

		got, err := m.getTask(ctx, GetTaskRequest{ID: created.ID}, nil)
		if err != nil {
			t.Fatalf("getTask() error = %v", err)
		}
		if got.Status != task.StatusCompleted {
			t.Errorf("expected status %q, got %q", task.StatusCompleted, got.Status)
		}
		if got.Title != "Roundtrip" || got.Description != "unchanged" {
			t.Errorf("expected title/description unchanged, got %+v", got)
		}
	})

	t.Run("absent status field", func(t *testing.T) {
		_, err := m.updateStatus(ctx, UpdateStatusRequest{ID: created.ID, Status: nil}, nil)
		if !errors.Is(err, ErrStatusRequired) {
			t.Errorf("expected ErrStatusRequired, got %v", err)
		}
	})

	t.Run("arbitrary status strings are accepted", func(t *testing.T) {
		got, err := m.updateStatus(ctx, UpdateStatusRequest{ID: created.ID, Status: ptr("archived")}, nil)
		if err != nil {
			t.Fatalf("updateStatus() error = %v", err)
		}
		if got.Status != "archived" {
			t.Errorf("expected status %q, got %q", "archived", got.Status)
		}
	})
}

func TestDeleteTask(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	created, err := m.createTask(ctx, CreateTaskRequest{Title: "Doomed"}, nil)
	if err != nil {
		t.Fatalf("createTask() error = %v", err)
	}

	resp, err := m.deleteTask(ctx, DeleteTaskRequest{ID: created.ID}, nil)
	if err != nil {
		t.Fatalf("deleteTask() error = %v", err)
	}
	if !resp.Deleted {
		t.Error("expected Deleted to be true")
	}

	if _, err := m.getTask(ctx, GetTaskRequest{ID: created.ID}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if _, err := m.deleteTask(ctx, DeleteTaskRequest{ID: created.ID}, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for repeated delete, got %v", err)
	}
}

func TestListTasks(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		if _, err := m.createTask(ctx, CreateTaskRequest{Title: title}, nil); err != nil {
			t.Fatalf("createTask(%q) error = %v", title, err)
		}
	}

	resp, err := m.listTasks(ctx, ListTasksRequest{}, nil)
	if err != nil {
		t.Fatalf("listTasks() error = %v", err)
	}
	if resp.Total != 3 {
		t.Fatalf("expected 3 tasks, got %d", resp.Total)
	}
	if resp.Tasks[0].Title != "three" {
		t.Errorf("expected newest task first, got %q", resp.Tasks[0].Title)
	}

	// The unordered view returns rows as the engine stores them.
	resp, err = m.listTasks(ctx, ListTasksRequest{Unordered: true}, nil)
	if err != nil {
		t.Fatalf("listTasks(unordered) error = %v", err)
	}
	if resp.Tasks[0].Title != "one" || resp.Tasks[2].Title != "three" {
		t.Errorf("expected storage order [one two three], got [%s %s %s]",
			resp.Tasks[0].Title, resp.Tasks[1].Title, resp.Tasks[2].Title)
	}
}
