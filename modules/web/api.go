package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/task-tracker/modules/taskstore"
)

// APIListTasks returns all tasks as a JSON array, in storage order.
func (h *Handlers) APIListTasks(c *fiber.Ctx) error {
	tasks, err := h.port.ListTasksUnordered(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to list tasks", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list tasks",
		})
	}
	return c.JSON(tasks)
}

// APIGetTask returns a single task as JSON.
func (h *Handlers) APIGetTask(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	t, err := h.port.GetTask(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		}
		h.logger.Error("Failed to get task", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get task",
		})
	}

	return c.JSON(t)
}

// statusBody is the JSON body of a status update. Status is a pointer so
// an absent field can be rejected with a validation error.
type statusBody struct {
	Status *string `json:"status"`
}

// APIUpdateStatus changes only a task's status and returns the updated
// task as JSON.
func (h *Handlers) APIUpdateStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Task not found",
		})
	}

	var body statusBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	t, err := h.port.UpdateStatus(c.UserContext(), id, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, taskstore.ErrStatusRequired):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Status is required",
			})
		case errors.Is(err, taskstore.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Task not found",
			})
		default:
			h.logger.Error("Failed to update status", "id", id, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update task status",
			})
		}
	}

	return c.JSON(t)
}
