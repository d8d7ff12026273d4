package repository

import (
	"context"
	"fmt"
	"log/slog"

	"cipherstudio/internal/config"
	"cipherstudio/internal/domain/repositories"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/repository/memory"
	memPlayground "cipherstudio/internal/repository/memory/playground"
	"cipherstudio/internal/repository/mongodb"
	mongoPlayground "cipherstudio/internal/repository/mongodb/playground"
	"cipherstudio/internal/repository/postgres"
	pgPlayground "cipherstudio/internal/repository/postgres/playground"
)

// Storage bundles the repositories of one backend plus its shutdown hook
type Storage struct {
	Projects  playgroundRepo.ProjectRepository
	Files     playgroundRepo.FileRepository
	TxManager repositories.TransactionManager
	Close     func()

	// Reset wipes all stored data and recreates the schema
	Reset func(ctx context.Context) error
}

func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &Storage{
			Projects:  memPlayground.NewProjectRepository(store),
			Files:     memPlayground.NewFileRepository(store),
			TxManager: memory.NewTransactionManager(store),
			Close:     func() {},
			Reset: func(ctx context.Context) error {
				store.Reset()
				return nil
			},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}

		tables := postgres.NewTableNames(cfg.TablePrefix)
		if err := postgres.RunMigrations(ctx, pool, tables, logger); err != nil {
			pool.Close()
			return nil, err
		}

		logger.Info("database connected",
			"driver", cfg.StorageDriver,
			"table_prefix", cfg.TablePrefix,
		)

		repoConfig := &postgres.RepositoryConfig{
			Pool:   pool,
			Tables: tables,
			Logger: logger,
		}
		return &Storage{
			Projects:  pgPlayground.NewProjectRepository(repoConfig),
			Files:     pgPlayground.NewFileRepository(repoConfig),
			TxManager: postgres.NewTransactionManager(pool, logger),
			Close:     pool.Close,
			Reset: func(ctx context.Context) error {
				if err := postgres.DropTables(ctx, pool, tables); err != nil {
					return err
				}
				return postgres.RunMigrations(ctx, pool, tables, logger)
			},
		}, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}

		db := client.Database(cfg.MongoDatabase)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}

		logger.Info("database connected",
			"driver", cfg.StorageDriver,
			"database", cfg.MongoDatabase,
			"transactions", cfg.MongoTransactions,
		)

		return &Storage{
			Projects:  mongoPlayground.NewProjectRepository(db),
			Files:     mongoPlayground.NewFileRepository(db),
			TxManager: mongodb.NewTransactionManager(client, cfg.MongoTransactions),
			Close: func() {
				if err := client.Disconnect(context.Background()); err != nil {
					logger.Warn("mongo disconnect failed", "error", err)
				}
			},
			Reset: func(ctx context.Context) error {
				if err := db.Drop(ctx); err != nil {
					return fmt.Errorf("drop database: %w", err)
				}
				return mongodb.EnsureIndexes(ctx, db)
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want mongo, postgres or memory)", cfg.StorageDriver)
	}
}
