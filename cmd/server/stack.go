package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/KirkDiggler/knight-api/internal/config"
	"github.com/KirkDiggler/knight-api/internal/engine"
	v1 "github.com/KirkDiggler/knight-api/internal/handlers/api/v1"
	"github.com/KirkDiggler/knight-api/internal/orchestrators/knight"
	"github.com/KirkDiggler/knight-api/internal/pkg/clock"
	"github.com/KirkDiggler/knight-api/internal/pkg/idgen"
	"github.com/KirkDiggler/knight-api/internal/redis"
	knightrepo "github.com/KirkDiggler/knight-api/internal/repositories/knight"
)

// stack is the wired knight service plus what the process must release
type stack struct {
	knights     knight.Service
	clock       clock.Clock
	healthCheck v1.HealthCheck
	close       func()
}

// buildStack opens the configured store and wires the orchestrator over it
func buildStack(ctx context.Context, cfg *config.Config) (*stack, error) {
	repo, healthCheck, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(&engine.Config{})
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	clk := clock.New()
	knights, err := knight.NewOrchestrator(&knight.Config{
		KnightRepo:  repo,
		Engine:      eng,
		Clock:       clk,
		IDGenerator: idgen.NewUUID(),
	})
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to create knight orchestrator: %w", err)
	}

	return &stack{
		knights:     knights,
		clock:       clk,
		healthCheck: healthCheck,
		close:       closeStore,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (knightrepo.Repository, v1.HealthCheck, func(), error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, cfg.RedisAddr, cfg.RedisClusterAddrs, &redis.Options{
			PoolSize: cfg.RedisPoolSize,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		repo, err := knightrepo.NewRedis(&knightrepo.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, nil, fmt.Errorf("failed to create redis repository: %w", err)
		}

		slog.InfoContext(ctx, "using redis store", "addr", cfg.RedisAddr, "cluster_nodes", len(cfg.RedisClusterAddrs))
		check := func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		}
		closer := func() {
			if err := client.Close(); err != nil {
				slog.Warn("failed to close redis client", "error", err.Error())
			}
		}
		return repo, check, closer, nil

	case config.StorePostgres:
		db, err := knightrepo.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to access postgres pool: %w", err)
		}

		repo, err := knightrepo.NewPostgres(&knightrepo.PostgresConfig{DB: db})
		if err != nil {
			_ = sqlDB.Close()
			return nil, nil, nil, fmt.Errorf("failed to create postgres repository: %w", err)
		}

		slog.InfoContext(ctx, "using postgres store")
		closer := func() {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close postgres pool", "error", err.Error())
			}
		}
		return repo, sqlDB.PingContext, closer, nil

	case config.StoreMemory:
		slog.InfoContext(ctx, "using in-memory store, knights are lost on exit")
		return knightrepo.NewInMemory(), nil, func() {}, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// loadConfig reads the environment and installs the configured logger
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(cfg.NewLogger(os.Stderr))
	return cfg, nil
}
