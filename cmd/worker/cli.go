package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/domain"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/phrazzld/quizgen/internal/platform/postgres"
	"github.com/urfave/cli/v2"
)

var errUsage = errors.New("usage error")

// newCLI builds the command tree. Command output goes to out.
func newCLI(out io.Writer) *cli.App {
	return &cli.App{
		Name:  "quizgen-worker",
		Usage: "generate quiz questions and summaries from stored documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file (default: ./config.yaml if present)",
				EnvVars: []string{config.EnvPrefix + "_CONFIG"},
			},
		},
		Writer: out,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "accept document events over HTTP and process them with a worker pool",
				Action: serveAction,
			},
			{
				Name:  "process",
				Usage: "process one document synchronously and print the result",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "s3-key", Usage: "storage key of the document", Required: true},
					&cli.Int64Flag{Name: "db-pk", Usage: "database ID of the document", Required: true},
					&cli.StringFlag{Name: "plan", Usage: "subscription plan (FREE or PRO)", Required: true},
				},
				Action: processAction,
			},
			{
				Name:      "migrate",
				Usage:     "manage the database schema",
				ArgsUsage: "up|down|status|version",
				Action:    migrateAction,
			},
		},
	}
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
}

func serveAction(c *cli.Context) error {
	ctx, stop := signalContext(c)
	defer stop()

	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	return app.serve(ctx)
}

func processAction(c *cli.Context) error {
	ctx, stop := signalContext(c)
	defer stop()

	cfg, err := config.LoadFile(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	req := domain.ProcessingRequest{
		StorageKey: c.String("s3-key"),
		DocumentID: c.Int64("db-pk"),
		Plan:       domain.SubscriptionPlan(c.String("plan")),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.close()

	result, err := app.pipeline.Run(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func migrateAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("%w: migrate takes exactly one command: up, down, status or version", errUsage)
	}
	command := c.Args().First()
	if !validMigrateCommand(command) {
		return fmt.Errorf("%w: unknown migrate command %q", errUsage, command)
	}

	ctx, stop := signalContext(c)
	defer stop()

	cfg, err := config.LoadDatabase(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database connection", "error", cerr)
		}
	}()

	return postgres.Migrate(ctx, db, command, log)
}

func validMigrateCommand(command string) bool {
	switch command {
	case "up", "down", "status", "version":
		return true
	default:
		return false
	}
}
