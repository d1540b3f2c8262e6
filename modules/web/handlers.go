package web

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/taskstore"
)

// Handlers contains the HTTP handlers for the task pages and JSON API.
type Handlers struct {
	port   taskstore.TaskPort
	logger *slog.Logger
}

// NewHandlers creates a new handlers instance.
func NewHandlers(port taskstore.TaskPort) *Handlers {
	return &Handlers{
		port:   port,
		logger: slog.Default(),
	}
}

// Index renders the task list page, newest tasks first.
func (h *Handlers) Index(c *fiber.Ctx) error {
	tasks, err := h.port.ListTasks(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list tasks", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("index", fiber.Map{
		"Title": "Tasks",
		"Tasks": tasks,
		"Flash": popFlash(c),
	})
}

// CreateForm renders the task creation form.
func (h *Handlers) CreateForm(c *fiber.Ctx) error {
	return c.Render("create", fiber.Map{
		"Title":      "Create Task",
		"Priorities": priorityOptions,
		"Flash":      popFlash(c),
	})
}

// CreateSubmit handles the creation form. A missing title redirects back
// to the form with a validation message; any storage failure shows the
// generic message and discards the cause.
func (h *Handlers) CreateSubmit(c *fiber.Ctx) error {
	req := taskstore.CreateTaskRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Priority:    c.FormValue("priority"),
		DueDate:     c.FormValue("due_date"),
	}

	if _, err := h.port.CreateTask(c.UserContext(), req); err != nil {
		if errors.Is(err, taskstore.ErrTitleRequired) {
			setFlash(c, "error", "Title is required!")
			return c.Redirect("/create", fiber.StatusSeeOther)
		}
		h.logger.Error("Failed to create task", "error", err)
		setFlash(c, "error", "Error creating task!")
		return c.Redirect("/create", fiber.StatusSeeOther)
	}

	setFlash(c, "success", "Task created successfully!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// EditForm renders the edit form for an existing task.
func (h *Handlers) EditForm(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	t, err := h.port.GetTask(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			return fiber.ErrNotFound
		}
		h.logger.Error("Failed to load task", "id", id, "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("edit", fiber.Map{
		"Title":      "Edit Task",
		"Task":       t,
		"Statuses":   statusOptions,
		"Priorities": priorityOptions,
		"Flash":      popFlash(c),
	})
}

// EditSubmit overwrites all mutable fields of a task from the form.
func (h *Handlers) EditSubmit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	req := taskstore.UpdateTaskRequest{
		ID:          id,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Status:      c.FormValue("status"),
		Priority:    c.FormValue("priority"),
		DueDate:     c.FormValue("due_date"),
	}

	if _, err := h.port.UpdateTask(c.UserContext(), req); err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			return fiber.ErrNotFound
		}
		h.logger.Error("Failed to update task", "id", id, "error", err)
		setFlash(c, "error", "Error updating task!")
		return c.Redirect("/edit/"+c.Params("id"), fiber.StatusSeeOther)
	}

	setFlash(c, "success", "Task updated successfully!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Delete removes a task and redirects to the list.
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return fiber.ErrNotFound
	}

	if err := h.port.DeleteTask(c.UserContext(), id); err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			return fiber.ErrNotFound
		}
		h.logger.Error("Failed to delete task", "id", id, "error", err)
		setFlash(c, "error", "Error deleting task!")
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	setFlash(c, "success", "Task deleted successfully!")
	return c.Redirect("/", fiber.StatusSeeOther)
}

// RawData renders the query console with the current task table and an
// empty query state. The table shows tasks in storage order, unlike the
// newest-first index page.
func (h *Handlers) RawData(c *fiber.Ctx) error {
	tasks, err := h.port.ListTasksUnordered(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list tasks", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("raw_data", fiber.Map{
		"Title": "Raw Data",
		"Tasks": tasks,
		"Query": "",
		"Flash": popFlash(c),
	})
}

// ExecuteQuery runs a console statement and renders the result table, or
// the policy/engine error message. This is the one place raw engine error
// text reaches the user.
func (h *Handlers) ExecuteQuery(c *fiber.Ctx) error {
	rawSQL := c.FormValue("query")

	// The task table is always shown alongside the result.
	tasks, err := h.port.ListTasksUnordered(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list tasks", "error", err)
		return fiber.ErrInternalServerError
	}

	result, err := h.port.ExecuteQuery(c.UserContext(), rawSQL)
	if err != nil {
		return c.Render("raw_data", fiber.Map{
			"Title": "Raw Data",
			"Tasks": tasks,
			"Query": rawSQL,
			"Error": err.Error(),
		})
	}

	return c.Render("raw_data", fiber.Map{
		"Title":   "Raw Data",
		"Tasks":   tasks,
		"Query":   rawSQL,
		"Columns": result.Columns,
		"Rows":    result.Rows,
	})
}

// parseID extracts the numeric task id from the route. Anything that is
// not a positive integer behaves like an unknown task.
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// statusOptions and priorityOptions feed the form dropdowns.
var (
	statusOptions   = []string{task.StatusPending, task.StatusInProgress, task.StatusCompleted}
	priorityOptions = []string{task.PriorityLow, task.PriorityMedium, task.PriorityHigh}
)
