package taskstore

import "github.com/example/task-tracker/domain/task"

// CreateTaskRequest is the request for creating a task. DueDate is either
// empty or a date in YYYY-MM-DD form.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	ID uint `json:"id"`
}

// ListTasksRequest is the request for listing tasks. Unordered asks for
// storage order instead of the newest-first default.
type ListTasksRequest struct {
	Unordered bool `json:"unordered"`
}

// ListTasksResponse is the response containing all tasks, newest first.
type ListTasksResponse struct {
	Tasks []task.Payload `json:"tasks"`
	Total int            `json:"total"`
}

// UpdateTaskRequest is the request for editing a task. All mutable fields
// are overwritten unconditionally; there are no partial-update semantics.
type UpdateTaskRequest struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date"`
}

// UpdateStatusRequest is the request for changing only a task's status.
// Status is a pointer so an absent field can be told apart from an empty one.
type UpdateStatusRequest struct {
	ID     uint    `json:"id"`
	Status *string `json:"status"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID uint `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
	ID      uint `json:"id"`
}

// ExecuteQueryRequest carries a raw SQL statement for the query console.
type ExecuteQueryRequest struct {
	Query string `json:"query"`
}

// ExecuteQueryResponse carries the tabular result of a console query.
type ExecuteQueryResponse struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}
