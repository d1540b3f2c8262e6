package taskstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-monolith/mono"

	"github.com/example/task-tracker/domain/task"
)

// ErrTitleRequired is returned when a task is created without a title.
var ErrTitleRequired = errors.New("Title is required!")

// ErrStatusRequired is returned when a status update carries no status field.
var ErrStatusRequired = errors.New("Status is required")

// createTask handles the taskstore.create service request.
func (m *Module) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (task.Payload, error) {
	if req.Title == "" {
		return task.Payload{}, ErrTitleRequired
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return task.Payload{}, fmt.Errorf("invalid due date: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}

	now := time.Now().UTC()
	t := &task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusPending,
		Priority:    priority,
		DueDate:     due,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.repo.Create(t); err != nil {
		return task.Payload{}, err
	}

	return t.Payload(), nil
}

// getTask handles the taskstore.get service request.
func (m *Module) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (task.Payload, error) {
	t, err := m.repo.FindByID(req.ID)
	if err != nil {
		return task.Payload{}, err
	}
	return t.Payload(), nil
}

// listTasks handles the taskstore.list service request. Tasks come back
// newest first unless storage order is requested.
func (m *Module) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	var tasks []*task.Task
	var err error
	if req.Unordered {
		tasks, err = m.repo.FindAllUnordered()
	} else {
		tasks, err = m.repo.FindAll()
	}
	if err != nil {
		return ListTasksResponse{}, err
	}

	resp := ListTasksResponse{
		Tasks: make([]task.Payload, 0, len(tasks)),
		Total: len(tasks),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, t.Payload())
	}
	return resp, nil
}

// updateTask handles the taskstore.update service request. All mutable
// fields are overwritten unconditionally. The title is intentionally not
// re-validated here; creation is the only place emptiness is rejected.
func (m *Module) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (task.Payload, error) {
	t, err := m.repo.FindByID(req.ID)
	if err != nil {
		return task.Payload{}, err
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return task.Payload{}, fmt.Errorf("invalid due date: %w", err)
	}

	t.Title = req.Title
	t.Description = req.Description
	t.Status = req.Status
	t.Priority = req.Priority
	t.DueDate = due

	if err := m.repo.Save(t); err != nil {
		return task.Payload{}, err
	}

	return t.Payload(), nil
}

// updateStatus handles the taskstore.update-status service request. Only
// the status and updated_at fields change.
func (m *Module) updateStatus(_ context.Context, req UpdateStatusRequest, _ *mono.Msg) (task.Payload, error) {
	if req.Status == nil {
		return task.Payload{}, ErrStatusRequired
	}

	t, err := m.repo.FindByID(req.ID)
	if err != nil {
		return task.Payload{}, err
	}

	t.Status = *req.Status
	if err := m.repo.Save(t); err != nil {
		return task.Payload{}, err
	}

	return t.Payload(), nil
}

// deleteTask handles the taskstore.delete service request.
func (m *Module) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.repo.Delete(req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}

// executeQuery handles the taskstore.execute-query service request by
// delegating to the query console.
func (m *Module) executeQuery(ctx context.Context, req ExecuteQueryRequest, _ *mono.Msg) (ExecuteQueryResponse, error) {
	result, err := m.console.Execute(ctx, req.Query)
	if err != nil {
		return ExecuteQueryResponse{}, err
	}
	return ExecuteQueryResponse{Columns: result.Columns, Rows: result.Rows}, nil
}

// parseDueDate parses an optional YYYY-MM-DD form value.
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	due, err := time.Parse(task.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &due, nil
}
