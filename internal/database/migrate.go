package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Migrate applies every pending *.up.sql file from dir, in lexical order,
// tracking applied versions in schema_migrations.
func Migrate(pool *pgxpool.Pool, dir string, logger *zap.Logger) error {
	_, err := pool.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var upMigrations []string

	for _, file := range files {
		name := file.Name()

		if strings.HasSuffix(name, ".up.sql") {
			upMigrations = append(upMigrations, name)
		}
	}

	sort.Strings(upMigrations)

	logger.Info("Applying migrations", zap.Int("found", len(upMigrations)))

	query := "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"

	for _, migration := range upMigrations {
		var exists bool

		err := pool.QueryRow(context.Background(), query, migration).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migration %s: %w", migration, err)
		}

		if exists {
			logger.Debug("Migration already applied", zap.String("version", migration))
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(dir, migration))
		if err != nil {
			return fmt.Errorf("failed to read sql file %s: %w", migration, err)
		}

		_, err = pool.Exec(context.Background(), string(sqlBytes))
		if err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", migration, err)
		}

		_, err = pool.Exec(context.Background(),
			"INSERT INTO schema_migrations (version) VALUES ($1)",
			migration,
		)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration, err)
		}

		logger.Info("Migration applied", zap.String("version", migration))
	}

	return nil
}
