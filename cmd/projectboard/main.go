package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/projectboard/internal/config"
	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/mcp"
	"github.com/rpggio/projectboard/internal/metrics"
	"github.com/rpggio/projectboard/internal/state"
	"github.com/rpggio/projectboard/internal/transport"
	"github.com/rpggio/projectboard/internal/tui"
)

var version = "dev"

const defaultTUILogPath = "projectboard.log"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	// stdout belongs to the terminal UI or to JSON-RPC in stdio mode.
	logWriter := io.Writer(os.Stderr)
	logPath := cfg.Log.Path
	if cfg.Mode == config.ModeTUI {
		logWriter = io.Discard
		if logPath == "" {
			logPath = defaultTUILogPath
		}
	}
	if logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("exiting", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slots, closeStore, err := openStore(ctx, cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("closing storage", "error", err)
		}
	}()

	policy, err := state.ParseMutationPolicy(cfg.Controller.MutationPolicy)
	if err != nil {
		return err
	}

	recorder := metrics.New()
	svc := project.NewService(slots, project.Options{
		Key:                     cfg.Storage.Key,
		Delay:                   cfg.API.Delay,
		SimulateError:           cfg.API.SimulateError,
		SimulateInvalidResponse: cfg.API.SimulateInvalidResponse,
	}, logger)
	controller := state.NewController(svc, state.Options{
		Policy:   policy,
		Recorder: recorder,
	}, logger)
	handler := mcp.NewHandler(controller)

	var opsServer *http.Server
	if cfg.Ops.Addr != "" {
		opsServer = &http.Server{
			Addr: cfg.Ops.Addr,
			Handler: transport.NewServer(transport.Options{
				Handler: handler,
				State:   controller,
				Metrics: recorder.Handler(),
				Token:   cfg.Ops.Token,
				Logger:  logger,
			}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("ops server listening", "addr", cfg.Ops.Addr, "auth", cfg.Ops.Token != "")
			if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server error", "error", err)
			}
		}()
		defer shutdown(logger, opsServer)
	}

	switch cfg.Mode {
	case config.ModeMCP:
		return runStdioMode(ctx, logger, mcp.NewServer(mcp.Config{
			Handler: handler,
			Version: version,
			Logger:  logger,
		}))
	default:
		logger.Info("starting terminal ui", "driver", cfg.Storage.Driver, "policy", string(policy))
		return tui.Run(ctx, controller)
	}
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is cancelled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stdio server: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

func shutdown(logger *slog.Logger, server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
