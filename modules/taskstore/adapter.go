package taskstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/query"
)

// TaskPort defines the interface other modules use to reach task storage
// and the query console.
type TaskPort interface {
	CreateTask(ctx context.Context, req CreateTaskRequest) (*task.Payload, error)
	GetTask(ctx context.Context, id uint) (*task.Payload, error)
	ListTasks(ctx context.Context) ([]task.Payload, error)
	ListTasksUnordered(ctx context.Context) ([]task.Payload, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*task.Payload, error)
	UpdateStatus(ctx context.Context, id uint, status *string) (*task.Payload, error)
	DeleteTask(ctx context.Context, id uint) error
	ExecuteQuery(ctx context.Context, rawSQL string) (*query.Result, error)
}

// Adapter implements TaskPort using the service container.
type Adapter struct {
	container mono.ServiceContainer
}

// NewAdapter creates a new taskstore adapter.
func NewAdapter(container mono.ServiceContainer) *Adapter {
	return &Adapter{container: container}
}

// CreateTask creates a new task.
func (a *Adapter) CreateTask(ctx context.Context, req CreateTaskRequest) (*task.Payload, error) {
	var resp task.Payload
	if err := call(a, ctx, "create", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTask fetches a task by id.
func (a *Adapter) GetTask(ctx context.Context, id uint) (*task.Payload, error) {
	req := GetTaskRequest{ID: id}
	var resp task.Payload
	if err := call(a, ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListTasks returns all tasks, newest first.
func (a *Adapter) ListTasks(ctx context.Context) ([]task.Payload, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// ListTasksUnordered returns all tasks in storage order.
func (a *Adapter) ListTasksUnordered(ctx context.Context) ([]task.Payload, error) {
	req := ListTasksRequest{Unordered: true}
	var resp ListTasksResponse
	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

// UpdateTask overwrites all mutable fields of a task.
func (a *Adapter) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*task.Payload, error) {
	var resp task.Payload
	if err := call(a, ctx, "update", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateStatus changes only a task's status. A nil status means the field
// was absent from the request payload.
func (a *Adapter) UpdateStatus(ctx context.Context, id uint, status *string) (*task.Payload, error) {
	req := UpdateStatusRequest{ID: id, Status: status}
	var resp task.Payload
	if err := call(a, ctx, "update-status", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask removes a task.
func (a *Adapter) DeleteTask(ctx context.Context, id uint) error {
	req := DeleteTaskRequest{ID: id}
	var resp DeleteTaskResponse
	return call(a, ctx, "delete", &req, &resp)
}

// ExecuteQuery runs a screened read-only statement through the console.
func (a *Adapter) ExecuteQuery(ctx context.Context, rawSQL string) (*query.Result, error) {
	req := ExecuteQueryRequest{Query: rawSQL}
	var resp ExecuteQueryResponse
	if err := call(a, ctx, "execute-query", &req, &resp); err != nil {
		return nil, err
	}
	return &query.Result{Columns: resp.Columns, Rows: resp.Rows}, nil
}

// call invokes a taskstore request-reply service and maps errors back to
// their sentinels.
func call[T1 any, T2 any](a *Adapter, ctx context.Context, service string, req T1, resp *T2) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return mapServiceError(fmt.Errorf("%s request failed: %w", service, err))
	}
	return nil
}

// mapServiceError converts service errors back to sentinel errors by
// checking the message content. Error types do not survive the trip
// through the service container.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, ErrNotFound.Error()):
		return ErrNotFound
	case strings.Contains(msg, ErrTitleRequired.Error()):
		return ErrTitleRequired
	case strings.Contains(msg, ErrStatusRequired.Error()):
		return ErrStatusRequired
	case strings.Contains(msg, query.ErrNotSelect.Error()):
		return query.ErrNotSelect
	case strings.Contains(msg, query.ErrProhibited.Error()):
		return query.ErrProhibited
	case strings.Contains(msg, "Error executing query:"):
		return &query.ExecError{Msg: afterPrefix(msg, "Error executing query: ")}
	}
	return err
}

// afterPrefix returns everything after the first occurrence of prefix.
func afterPrefix(s, prefix string) string {
	if i := strings.Index(s, prefix); i >= 0 {
		return s[i+len(prefix):]
	}
	return s
}
