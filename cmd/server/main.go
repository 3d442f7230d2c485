package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/ogurasousui/employee-directory/internal/adapters/http"
	"github.com/ogurasousui/employee-directory/internal/adapters/http/handler"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/memory"
	"github.com/ogurasousui/employee-directory/internal/adapters/repository/postgres"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	"github.com/ogurasousui/employee-directory/internal/platform/config"
	pg "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
	"github.com/ogurasousui/employee-directory/internal/platform/logging"
	"github.com/ogurasousui/employee-directory/internal/platform/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	svc, pinger, cleanup, err := buildService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	router := httpapi.NewRouter(svc, pinger, logger)
	httpServer := server.NewHTTP(cfg.Server.HTTPAddr, router, cfg.Server.ShutdownTimeout, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(gctx) })

	if cfg.Server.GRPCAddr != "" {
		grpcServer := server.NewGRPC(cfg.Server.GRPCAddr, logger)
		g.Go(func() error { return grpcServer.Run(gctx) })
	}

	logger.Info().Str("storage", cfg.Storage.Driver).Msg("employee directory started")

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	logger.Info().Msg("employee directory stopped")
	return nil
}

// buildService は設定されたストレージで Service を組み立てます。
func buildService(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*employee.Service, handler.Pinger, func(), error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		return employee.NewService(memory.NewEmployeeRepository(), nil), nil, func() {}, nil
	}

	pool, err := pg.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init database pool: %w", err)
	}

	orm, err := pg.OpenGorm(pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("init gorm: %w", err)
	}

	repo := postgres.NewEmployeeRepository(pool, orm)
	svc := employee.NewService(repo, pg.NewTransactionManager(pool))

	return svc, pool, pool.Close, nil
}
