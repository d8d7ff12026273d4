package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations creates the tables and indexes used by the repositories.
// Every statement is idempotent.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, logger *slog.Logger) error {
	migrations := []string{
		createProjectsTable,
		createFilesTable,
		createSiblingNameIndex,
	}

	for i, migration := range migrations {
		stmt := fmt.Sprintf(migration, tables.Projects, tables.Files)
		logger.Debug("running migration", "step", i+1, "total", len(migrations))
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	logger.Info("migrations completed", "count", len(migrations))
	return nil
}

// DropTables removes every table created by RunMigrations
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	stmt := fmt.Sprintf(`DROP TABLE IF EXISTS %s, %s CASCADE`, tables.Files, tables.Projects)
	if _, err := pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	return nil
}

// Placeholders: %[1]s = projects table, %[2]s = files table

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS %[1]s (
  id UUID PRIMARY KEY,
  project_slug TEXT NOT NULL UNIQUE,
  user_id TEXT,
  name VARCHAR(255) NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  root_folder_id UUID,
  framework TEXT NOT NULL DEFAULT 'react',
  auto_save BOOLEAN NOT NULL DEFAULT TRUE,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_owner ON %[1]s(user_id, updated_at DESC);
`

const createFilesTable = `
CREATE TABLE IF NOT EXISTS %[2]s (
  id UUID PRIMARY KEY,
  project_id UUID NOT NULL REFERENCES %[1]s(id) ON DELETE CASCADE,
  parent_id UUID REFERENCES %[2]s(id) ON DELETE CASCADE,
  name VARCHAR(255) NOT NULL,
  type TEXT NOT NULL CHECK (type IN ('file', 'folder')),
  s3_key TEXT,
  content TEXT NOT NULL DEFAULT '',
  language TEXT NOT NULL DEFAULT '',
  size_in_bytes BIGINT NOT NULL DEFAULT 0,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_%[2]s_parent ON %[2]s(project_id, parent_id);
`

// Root-level nodes have a NULL parent, which a plain unique index would not compare
const createSiblingNameIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_%[2]s_sibling_name
  ON %[2]s(project_id, COALESCE(parent_id, '00000000-0000-0000-0000-000000000000'::uuid), name);
`
