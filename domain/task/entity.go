// Package task defines the Task entity shared by the storage and HTTP modules.
package task

import "time"

// Status values a task moves through. The storage layer does not enforce
// this set; clients posting directly to the JSON API may store other strings.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Priority values offered by the forms.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task represents a single to-do item.
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Status      string     `gorm:"size:20;default:pending" json:"status"`
	Priority    string     `gorm:"size:10;default:medium" json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

// DateLayout is the wire format for due dates.
const DateLayout = "2006-01-02"

// Payload is the JSON wire representation of a task. Due dates carry only
// the calendar date; timestamps use ISO 8601.
type Payload struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// Payload converts the entity to its wire representation.
func (t *Task) Payload() Payload {
	p := Payload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05"),
		UpdatedAt:   t.UpdatedAt.Format("2006-01-02T15:04:05"),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format(DateLayout)
		p.DueDate = &due
	}
	return p
}

// DueDateString returns the due date formatted for forms and templates,
// or the empty string when no due date is set.
func (t *Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}
