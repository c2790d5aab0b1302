package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/quizgen/internal/api"
	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/events"
	"github.com/phrazzld/quizgen/internal/generation"
	"github.com/phrazzld/quizgen/internal/pipeline"
	"github.com/phrazzld/quizgen/internal/platform/discord"
	"github.com/phrazzld/quizgen/internal/platform/gemini"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/phrazzld/quizgen/internal/platform/objectstore"
	"github.com/phrazzld/quizgen/internal/platform/postgres"
	"github.com/phrazzld/quizgen/internal/task"
	"golang.org/x/sync/errgroup"
)

// shutdownTimeout bounds how long serve waits for in-flight requests and
// queued documents after a signal.
const shutdownTimeout = 30 * time.Second

// application holds the shared dependencies of a command and releases them
// on close.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	pipeline *pipeline.Pipeline
}

// newApplication wires configuration into a ready pipeline.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_backend", cfg.Storage.Backend,
		"llm_backend", cfg.LLM.Backend,
		"discord_enabled", cfg.Discord.BotToken != "")

	app := &application{config: cfg, logger: log}

	app.db, err = postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	documents, err := objectstore.New(ctx, cfg.Storage, log)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	predictor, err := gemini.NewClient(ctx, cfg.LLM, log)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	notifier, err := discord.New(cfg.Discord, log)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create notifier: %w", err)
	}

	prompts, err := generation.LoadPrompts(cfg.LLM.PromptDir)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	app.pipeline, err = pipeline.New(pipeline.Dependencies{
		Documents: documents,
		Sessions:  postgres.NewSessionOpener(app.db, log),
		Predictor: predictor,
		Notifier:  notifier,
		Prompts:   prompts,
	}, settingsFromConfig(cfg.Pipeline), log)
	if err != nil {
		app.close()
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}

	return app, nil
}

// settingsFromConfig maps the pipeline config section onto run settings.
func settingsFromConfig(cfg config.PipelineConfig) pipeline.Settings {
	return pipeline.Settings{
		ChunkSize:         cfg.ChunkSize,
		SummaryPrefixSize: cfg.SummaryPrefixSize,
		SummaryInputLimit: cfg.SummaryInputLimit,
		Limits: generation.Limits{
			FreePlanLimit:    cfg.FreePlanLimit,
			RecentWindowSize: cfg.RecentWindowSize,
		},
	}
}

// serve runs the HTTP intake and the worker pool until ctx is cancelled,
// then drains both within shutdownTimeout.
func (app *application) serve(ctx context.Context) error {
	runner := task.NewTaskRunner(task.NewMemoryTaskStore(0), task.TaskRunnerConfig{
		WorkerCount: app.config.Server.Workers,
		QueueSize:   app.config.Server.QueueSize,
	}, app.logger)

	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(task.NewTaskFactoryEventHandler(
		task.NewDocumentProcessingTaskFactory(app.pipeline, app.logger),
		runner,
		app.logger,
	))

	server := &http.Server{
		Addr: net.JoinHostPort("", strconv.Itoa(app.config.Server.Port)),
		Handler: api.NewRouter(api.RouterDeps{
			Emitter: emitter,
			Tasks:   runner,
			Queue:   runner,
			Logger:  app.logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	runner.Start()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("starting server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown failed: %w", err))
		}
		if err := runner.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("worker shutdown failed: %w", err))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	app.logger.Info("shutdown completed")
	return nil
}

// close releases the database pool.
func (app *application) close() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", "error", err)
	}
	app.db = nil
}
