// Command sync runs the catalog pipeline once and exits. It is meant to be
// driven by an external scheduler (cron, Cloud Scheduler, a k8s CronJob).
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursecatalog/internal/app"
	"coursecatalog/internal/catalog"
	"coursecatalog/internal/config"
	"coursecatalog/internal/ingest"
	"coursecatalog/internal/platform/logger"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitPartial = 2
)

func main() {
	os.Exit(runCLI(os.Args[1:]))
}

// runCLI returns the process exit code so deferred cleanup runs before exit.
func runCLI(args []string) int {
	fs := flag.NewFlagSet("sync", flag.ContinueOnError)
	var (
		force   = fs.Bool("force", false, "Refetch and reconcile even if the latest term is already recorded")
		timeout = fs.Duration("timeout", 10*time.Minute, "Abort the run after this long")
	)
	if err := fs.Parse(args); err != nil {
		return exitFailed
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return exitFailed
	}
	log := logger.Setup(cfg.Server.LogLevel, cfg.Server.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	return run(ctx, cfg, log, *force)
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger, force bool) int {
	a, err := app.Wire(ctx, cfg, log)
	if err != nil {
		log.Error("wire app", "error", err)
		return exitFailed
	}
	defer a.Close()

	res, err := a.Ingest.Run(ctx, ingest.RunOptions{Force: force})
	return exitCode(log, res, err)
}

func exitCode(log *slog.Logger, res ingest.Result, err error) int {
	var partial *catalog.PartialFailure
	switch {
	case errors.As(err, &partial):
		log.Error("sync partially failed",
			"run_id", res.RunID,
			"term_id", res.Term.ID,
			"written", partial.Written,
			"failed_subjects", partial.Subjects())
		return exitPartial
	case err != nil:
		log.Error("sync failed", "run_id", res.RunID, "error", err)
		return exitFailed
	}

	log.Info("sync finished",
		"run_id", res.RunID,
		"status", res.Status,
		"term_id", res.Term.ID,
		"records", res.RecordCount,
		"subjects", res.SubjectCount)
	return exitOK
}
