package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"notes-api/internal/config"
	"notes-api/internal/repository"
	"notes-api/internal/server"
	"notes-api/internal/service"
	"notes-api/pkg/database"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, opts *serveOptions) error {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}
	log.SetLevel(parseLogLevel(cfg.Logging.Level))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.Store.Driver == config.StoreDriverPostgres {
		pool, err = database.ConnectDB(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}
	noteRepository := repository.NewNoteRepository(cfg.Store, pool)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService(cfg.Events.NoteCreatedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.NoteCreatedTopic, service.LogNoteCreated)
	if err := consumerService.Consume(ctx); err != nil {
		return err
	}
	defer func() {
		if err := pubSub.Close(); err != nil {
			log.Warnf("failed to close pub/sub: %v", err)
		}
		consumerService.Wait()
	}()

	noteService := service.NewNoteService(noteRepository, publisherService)
	app := server.NewApp(cfg.Server, noteService)

	addr := cfg.Server.Addr()
	if opts.addr != "" {
		addr = opts.addr
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting notes-api on %s (env: %s, store: %s)", addr, cfg.Server.Env, cfg.Store.Driver)
		errCh <- app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}

	log.Info("Server exited")
	return nil
}

func parseLogLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "trace":
		return log.LevelTrace
	case "debug":
		return log.LevelDebug
	case "warn", "warning":
		return log.LevelWarn
	case "error":
		return log.LevelError
	case "fatal":
		return log.LevelFatal
	default:
		return log.LevelInfo
	}
}
