package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"

	"github.com/tenerify/tenerify/internal/config"
	"github.com/tenerify/tenerify/internal/core/ports"
	"github.com/tenerify/tenerify/internal/usecase"
)

// App bundles the wired application and runs it in server or worker mode.
type App struct {
	Config *config.Config

	db                 *sqlx.DB
	authUseCase        usecase.AuthUseCase
	blogUseCase        usecase.BlogUseCase
	searchUseCase      usecase.SearchUseCase
	fileStorage        ports.FileStorage
	structurePublisher ports.StructureJobPublisher
	structureConsumer  ports.StructureJobConsumer
	logger             *slog.Logger
}

func NewApp(
	cfg *config.Config,
	db *sqlx.DB,
	authUseCase usecase.AuthUseCase,
	blogUseCase usecase.BlogUseCase,
	searchUseCase usecase.SearchUseCase,
	fileStorage ports.FileStorage,
	structurePublisher ports.StructureJobPublisher,
	structureConsumer ports.StructureJobConsumer,
	logger *slog.Logger,
) *App {
	return &App{
		Config:             cfg,
		db:                 db,
		authUseCase:        authUseCase,
		blogUseCase:        blogUseCase,
		searchUseCase:      searchUseCase,
		fileStorage:        fileStorage,
		structurePublisher: structurePublisher,
		structureConsumer:  structureConsumer,
		logger:             logger,
	}
}

// Run starts the application in the given mode and blocks until a shutdown
// signal arrives.
func (a *App) Run(ctx context.Context, mode string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting application", "mode", mode)

	var err error
	switch mode {
	case "server":
		err = a.runServer(ctx)
	case "worker":
		err = a.runWorker(ctx)
	default:
		err = fmt.Errorf("unknown mode: %s (use 'server' or 'worker')", mode)
	}
	if err != nil {
		return err
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	a.logger.Info("application stopped")
	return nil
}

// Shutdown closes the application resources.
func (a *App) Shutdown() error {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}

	if closer, ok := a.structurePublisher.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if closer, ok := a.structureConsumer.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	return nil
}
