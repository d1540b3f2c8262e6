package taskstore

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/example/task-tracker/domain/task"
)

// SeedIfEmpty inserts the fixed sample task set when the table holds no
// rows. It is idempotent: a non-empty table makes it a no-op. The memory
// backend gets a smaller demo set, mirroring the ephemeral deployment.
func SeedIfEmpty(db *gorm.DB, backend Backend) error {
	var first task.Task
	err := db.First(&first).Error
	if err == nil {
		log.Println("[taskstore] Database already has data, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for existing tasks: %w", err)
	}

	seeds := sampleTasks()
	if backend == BackendMemory {
		seeds = seeds[:3]
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range seeds {
			if err := tx.Create(&seeds[i]).Error; err != nil {
				return fmt.Errorf("failed to seed task %q: %w", seeds[i].Title, err)
			}
		}
		log.Printf("[taskstore] Database initialized with %d sample tasks", len(seeds))
		return nil
	})
}

// sampleTasks returns the fixed seed set.
func sampleTasks() []task.Task {
	return []task.Task{
		{
			Title:       "Setup Development Environment",
			Description: "Install the toolchain and set up the project structure",
			Status:      task.StatusCompleted,
			Priority:    task.PriorityHigh,
			DueDate:     date(2024, 1, 15),
		},
		{
			Title:       "Design Database Schema",
			Description: "Create the database models for the task management system",
			Status:      task.StatusCompleted,
			Priority:    task.PriorityHigh,
			DueDate:     date(2024, 1, 20),
		},
		{
			Title:       "Implement CRUD Operations",
			Description: "Build Create, Read, Update, Delete functionality for tasks",
			Status:      task.StatusInProgress,
			Priority:    task.PriorityHigh,
			DueDate:     date(2024, 1, 25),
		},
		{
			Title:       "Create Web Interface",
			Description: "Design and implement the user interface with HTML, CSS, and JavaScript",
			Status:      task.StatusInProgress,
			Priority:    task.PriorityMedium,
			DueDate:     date(2024, 1, 30),
		},
		{
			Title:       "Add User Authentication",
			Description: "Implement user login and registration functionality",
			Status:      task.StatusPending,
			Priority:    task.PriorityMedium,
			DueDate:     date(2024, 2, 5),
		},
		{
			Title:       "Write Documentation",
			Description: "Create comprehensive documentation for the project",
			Status:      task.StatusPending,
			Priority:    task.PriorityLow,
			DueDate:     date(2024, 2, 10),
		},
		{
			Title:       "Deploy to Production",
			Description: "Set up production environment and deploy the application",
			Status:      task.StatusPending,
			Priority:    task.PriorityHigh,
			DueDate:     date(2024, 2, 15),
		},
	}
}

func date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
