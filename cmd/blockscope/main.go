package main

import (
	"context"
	"fmt"
	"os"

	"github.com/blockscope/blockscope/internal/config"
	"github.com/blockscope/blockscope/internal/handlers/cli"
	"github.com/blockscope/blockscope/internal/infra/blockchain/ethereum"
	redisstorage "github.com/blockscope/blockscope/internal/infra/storage/redis"
	"github.com/blockscope/blockscope/internal/infra/storage/sqlite"
	"github.com/blockscope/blockscope/internal/inspector"
	"github.com/blockscope/blockscope/internal/pkg/logger"
	"github.com/blockscope/blockscope/internal/pkg/telemetry"
	transporthttp "github.com/blockscope/blockscope/internal/pkg/transport/http"
	"github.com/blockscope/blockscope/internal/pkg/transport/jsonrpc"
	"github.com/blockscope/blockscope/internal/registry"
)

const serviceName = "blockscope"

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, serviceName)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	conn := jsonrpc.NewClient(transporthttp.NewClient().StandardClient(), cfg.RPCEndpoint)

	opts := []inspector.Option{
		inspector.WithPollInterval(cfg.PollInterval),
	}
	if cfg.RedisAddr != "" {
		checkpoint, err := redisstorage.NewClient(ctx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer checkpoint.Close()

		opts = append(opts, inspector.WithCheckpointStorage(checkpoint))
	}

	svc := inspector.New(ethereum.NewClient(conn), registry.New(), opts...)

	openStore := func(path string) (cli.LifecycleStore, error) {
		return sqlite.NewStorage(path)
	}

	return cli.Run(ctx, svc, openStore)
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
