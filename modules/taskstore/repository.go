package taskstore

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/example/task-tracker/domain/task"
)

// ErrNotFound is returned when no task matches the requested id.
var ErrNotFound = errors.New("task not found")

// Repository provides access to task storage. Every mutation runs inside
// a transaction: commit on success, rollback on any error.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create saves a new task.
func (r *Repository) Create(t *task.Task) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(id uint) (*task.Task, error) {
	var t task.Task
	if err := r.db.First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// FindAll retrieves all tasks ordered by creation time, newest first.
// The list is recomputed on every call; results are never cached.
func (r *Repository) FindAll() ([]*task.Task, error) {
	var tasks []*task.Task
	if err := r.db.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// FindAllUnordered retrieves all tasks in storage order, as the engine
// returns them. The console page and the JSON list use this view.
func (r *Repository) FindAllUnordered() ([]*task.Task, error) {
	var tasks []*task.Task
	if err := r.db.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to find tasks: %w", err)
	}
	return tasks, nil
}

// Save overwrites all fields of an existing task and refreshes its
// updated_at timestamp.
func (r *Repository) Save(t *task.Task) error {
	t.UpdatedAt = time.Now().UTC()
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(t).Select("*").Omit("id", "created_at").Updates(t)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete removes a task by id. This is a hard delete; no tombstone is kept.
func (r *Repository) Delete(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&task.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
