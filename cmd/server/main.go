// Package main implements the entry point for the task API server, which
// handles user accounts, session-token authentication, and each user's
// personal task list.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ruyichen/task-api/internal/config"
	"github.com/ruyichen/task-api/internal/email"
	"github.com/ruyichen/task-api/internal/imaging"
	"github.com/ruyichen/task-api/internal/platform/logger"
	"github.com/ruyichen/task-api/internal/platform/postgres"
	"github.com/ruyichen/task-api/internal/service"
	"github.com/ruyichen/task-api/internal/service/auth"
	"github.com/ruyichen/task-api/internal/store"
)

// avatarSize is the edge length avatars are normalized to before storage.
const avatarSize = 250

// application holds the initialized dependencies shared by the router.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	userStore    store.UserStore
	taskStore    store.TaskStore
	sessionStore store.SessionStore
	jwtService   auth.JWTService
	userService  *service.UserService
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer func() { _ = app.db.Close() }()

	if err := app.serve(); err != nil {
		app.logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// initializeApp loads configuration and wires up application components.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server)
	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, appLogger); err != nil {
		return nil, err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db)
	taskStore := postgres.NewTaskStore(db)
	sessionStore := postgres.NewSessionStore(db)

	userService := service.NewUserService(
		userStore,
		taskStore,
		sessionStore,
		jwtService,
		auth.NewBcryptHasher(0),
		email.NewLogMailer(appLogger),
		imaging.NewPNGNormalizer(avatarSize),
		appLogger,
	)

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		userStore:    userStore,
		taskStore:    taskStore,
		sessionStore: sessionStore,
		jwtService:   jwtService,
		userService:  userService,
	}, nil
}

// serve runs the HTTP server until an interrupt or terminate signal arrives,
// then shuts down gracefully, letting in-flight requests complete.
func (app *application) serve() error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           app.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
