// Package web exposes the HTML pages and JSON API over Fiber.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"

	"github.com/example/task-tracker/modules/taskstore"
)

//go:embed views
var viewsFS embed.FS

//go:embed static
var staticFS embed.FS

// Module is the HTTP module serving the task pages and the JSON API.
type Module struct {
	app  *fiber.App
	port taskstore.TaskPort
	addr string
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new web module.
func NewModule() *Module {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return &Module{addr: ":" + port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "web"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"taskstore"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "taskstore" {
		m.port = taskstore.NewAdapter(container)
	}
}

// Start initializes the Fiber HTTP server with the embedded views and
// static assets.
func (m *Module) Start(_ context.Context) error {
	if err := m.buildApp(); err != nil {
		return err
	}

	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			log.Printf("[web] HTTP server error: %v", err)
		}
	}()

	log.Printf("[web] HTTP server started on %s", m.addr)
	return nil
}

// buildApp assembles the Fiber app, template engine, middleware and routes.
func (m *Module) buildApp() error {
	if m.port == nil {
		return fmt.Errorf("taskstore dependency not set")
	}

	views, err := fs.Sub(viewsFS, "views")
	if err != nil {
		return fmt.Errorf("failed to mount views: %w", err)
	}
	engine := html.NewFileSystem(http.FS(views), ".html")

	m.app = fiber.New(fiber.Config{
		AppName:               "Task Tracker",
		DisableStartupMessage: true,
		Views:                 engine,
		ViewsLayout:           "layouts/main",
		ErrorHandler:          errorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(cors.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} ${method} ${path} ${latency}\n",
	}))
	m.app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
	}))

	m.registerRoutes()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (m *Module) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[web] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// registerRoutes sets up the HTML pages and JSON API routes.
func (m *Module) registerRoutes() {
	h := NewHandlers(m.port)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "module": "web"})
	})

	// HTML pages
	m.app.Get("/", h.Index)
	m.app.Get("/create", h.CreateForm)
	m.app.Post("/create", h.CreateSubmit)
	m.app.Get("/edit/:id", h.EditForm)
	m.app.Post("/edit/:id", h.EditSubmit)
	m.app.Post("/delete/:id", h.Delete)
	m.app.Get("/raw-data", h.RawData)
	m.app.Post("/execute-query", h.ExecuteQuery)

	// JSON API
	api := m.app.Group("/api")
	api.Get("/tasks", h.APIListTasks)
	api.Get("/tasks/:id", h.APIGetTask)
	api.Put("/tasks/:id/status", h.APIUpdateStatus)
}

// errorHandler handles Fiber errors.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": message})
}
