package taskstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/modules/query"
)

// Module provides task storage services via GORM + SQLite, plus the
// ad-hoc query console bound to the same database.
type Module struct {
	cfg     Config
	db      *gorm.DB
	repo    *Repository
	console *query.Console
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new taskstore module with the given configuration.
func NewModule(cfg Config) *Module {
	return &Module{cfg: cfg}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "taskstore"
}

// RegisterServices registers request-reply services in the service container.
// The framework prefixes service names with "services.taskstore.".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	services := []struct {
		name     string
		register func() error
	}{
		{"create", func() error {
			return helper.RegisterTypedRequestReplyService(container, "create", json.Unmarshal, json.Marshal, m.createTask)
		}},
		{"get", func() error {
			return helper.RegisterTypedRequestReplyService(container, "get", json.Unmarshal, json.Marshal, m.getTask)
		}},
		{"list", func() error {
			return helper.RegisterTypedRequestReplyService(container, "list", json.Unmarshal, json.Marshal, m.listTasks)
		}},
		{"update", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update", json.Unmarshal, json.Marshal, m.updateTask)
		}},
		{"update-status", func() error {
			return helper.RegisterTypedRequestReplyService(container, "update-status", json.Unmarshal, json.Marshal, m.updateStatus)
		}},
		{"delete", func() error {
			return helper.RegisterTypedRequestReplyService(container, "delete", json.Unmarshal, json.Marshal, m.deleteTask)
		}},
		{"execute-query", func() error {
			return helper.RegisterTypedRequestReplyService(container, "execute-query", json.Unmarshal, json.Marshal, m.executeQuery)
		}},
	}

	for _, svc := range services {
		if err := svc.register(); err != nil {
			return fmt.Errorf("failed to register %s service: %w", svc.name, err)
		}
	}

	log.Printf("[taskstore] Registered services: services.taskstore.{create,get,list,update,update-status,delete,execute-query}")
	return nil
}

// Start opens the configured SQLite backend, runs migrations and seeds
// the sample data when the table is empty.
func (m *Module) Start(_ context.Context) error {
	log.Printf("[taskstore] Opening %s database: %s", m.cfg.Backend, m.cfg.DSN())

	logLevel := logger.Silent
	if m.cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	if err := m.db.AutoMigrate(&task.Task{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.repo = NewRepository(m.db)

	if err := SeedIfEmpty(m.db, m.cfg.Backend); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	m.console = query.NewConsole(sqlDB)

	log.Println("[taskstore] Module started successfully")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	log.Println("[taskstore] Closing database connection...")

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[taskstore] Database connection closed")
	return nil
}

// Health performs a health check on the taskstore module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver":  "sqlite",
			"backend": string(m.cfg.Backend),
		},
	}
}
