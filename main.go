package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/task-tracker/modules/taskstore"
	"github.com/example/task-tracker/modules/web"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker ===")

	cfg := taskstore.ConfigFromEnv()

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: storage first, then the HTTP surface that depends on it.
	app.Register(taskstore.NewModule(cfg))
	app.Register(web.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg taskstore.Config) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Storage backend: %s", cfg.Backend)
	log.Println("")
	log.Printf("Pages (http://localhost:%s):", port)
	log.Println("  GET  /                       - Task list")
	log.Println("  GET  /create                 - Create a task")
	log.Println("  GET  /edit/:id               - Edit a task")
	log.Println("  GET  /raw-data               - Query console")
	log.Println("")
	log.Println("JSON API:")
	log.Println("  GET  /api/tasks              - List tasks")
	log.Println("  GET  /api/tasks/:id          - Get a task")
	log.Println("  PUT  /api/tasks/:id/status   - Update task status")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
