package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Migrator применяет goose-миграции к пулу pgx
type Migrator struct {
	db     *sql.DB
	dir    string
	logger *zap.Logger
}

func NewMigrator(pool *pgxpool.Pool, dir string, logger *zap.Logger) (*Migrator, error) {
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	goose.SetLogger(zap.NewStdLog(logger.Named("goose")))

	return &Migrator{
		// goose работает с *sql.DB
		db:     stdlib.OpenDBFromPool(pool),
		dir:    dir,
		logger: logger,
	}, nil
}

// Run применяет все непримененные миграции
func (mg *Migrator) Run(ctx context.Context) error {
	before, err := mg.Version(ctx)
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, mg.db, mg.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	after, err := mg.Version(ctx)
	if err != nil {
		return err
	}
	mg.logger.Info("Migrations applied",
		zap.String("dir", mg.dir),
		zap.Int64("from_version", before),
		zap.Int64("to_version", after),
	)
	return nil
}

func (mg *Migrator) Version(ctx context.Context) (int64, error) {
	version, err := goose.GetDBVersionContext(ctx, mg.db)
	if err != nil {
		return 0, fmt.Errorf("get migration version: %w", err)
	}
	return version, nil
}

// Close закрывает sql.DB мигратора; пул закрывает владелец
func (mg *Migrator) Close() error {
	return mg.db.Close()
}
