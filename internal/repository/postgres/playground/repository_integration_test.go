//go:build integration

package playground

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	"cipherstudio/internal/repository/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func setupPostgres(t *testing.T) *postgres.RepositoryConfig {
	t.Helper()
	ctx := context.Background()

	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cipherstudio"),
		tcpostgres.WithUsername("cipher"),
		tcpostgres.WithPassword("cipher"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.CreateConnectionPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tables := postgres.NewTableNames("test_")
	require.NoError(t, postgres.RunMigrations(ctx, pool, tables, logger))

	return &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
}

func newProject(slug, owner string) *models.Project {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Project{
		ID:        models.NewID(),
		Slug:      slug,
		Owner:     models.OwnedBy(owner),
		Name:      slug,
		Settings:  models.DefaultSettings(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newNode(projectID string, parentID *string, name string, typ models.NodeType) *models.FileNode {
	now := time.Now().UTC()
	return &models.FileNode{
		ID:        models.NewID(),
		ProjectID: projectID,
		ParentID:  parentID,
		Name:      name,
		Type:      typ,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresRepositories(t *testing.T) {
	cfg := setupPostgres(t)
	ctx := context.Background()

	projects := NewProjectRepository(cfg)
	files := NewFileRepository(cfg)
	txManager := postgres.NewTransactionManager(cfg.Pool, cfg.Logger)

	t.Run("project round trip", func(t *testing.T) {
		p := newProject("round-trip", "alice")
		require.NoError(t, projects.Create(ctx, p))

		got, err := projects.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "round-trip", got.Slug)
		assert.Equal(t, "alice", got.Owner.UserID())
		assert.Equal(t, "react", got.Settings.Framework)

		exists, err := projects.SlugExists(ctx, "round-trip")
		require.NoError(t, err)
		assert.True(t, exists)

		err = projects.Create(ctx, newProject("round-trip", "bob"))
		assert.True(t, errors.Is(err, domain.ErrConflict))
	})

	t.Run("unowned project", func(t *testing.T) {
		p := newProject("public", "")
		require.NoError(t, projects.Create(ctx, p))

		got, err := projects.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.False(t, got.Owner.IsOwned())
	})

	t.Run("sibling uniqueness includes root", func(t *testing.T) {
		p := newProject("siblings", "alice")
		require.NoError(t, projects.Create(ctx, p))

		require.NoError(t, files.Create(ctx, newNode(p.ID, nil, "App.js", models.NodeTypeFile)))
		err := files.Create(ctx, newNode(p.ID, nil, "App.js", models.NodeTypeFile))
		assert.True(t, errors.Is(err, domain.ErrConflict))

		found, err := files.FindSibling(ctx, p.ID, nil, "App.js")
		require.NoError(t, err)
		require.NotNil(t, found)

		missing, err := files.FindSibling(ctx, p.ID, nil, "nope.js")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("listing order and subtree delete", func(t *testing.T) {
		p := newProject("ordering", "alice")
		require.NoError(t, projects.Create(ctx, p))

		src := newNode(p.ID, nil, "src", models.NodeTypeFolder)
		require.NoError(t, files.Create(ctx, src))
		require.NoError(t, files.Create(ctx, newNode(p.ID, nil, "b.js", models.NodeTypeFile)))
		require.NoError(t, files.Create(ctx, newNode(p.ID, nil, "Z.js", models.NodeTypeFile)))
		util := newNode(p.ID, &src.ID, "util.js", models.NodeTypeFile)
		require.NoError(t, files.Create(ctx, util))

		all, err := files.ListByProject(ctx, p.ID)
		require.NoError(t, err)
		var names []string
		for _, n := range all {
			names = append(names, n.Name)
		}
		assert.Equal(t, []string{"src", "Z.js", "b.js", "util.js"}, names)

		children, err := files.ListChildren(ctx, p.ID, &src.ID)
		require.NoError(t, err)
		require.Len(t, children, 1)
		assert.Equal(t, "util.js", children[0].Name)

		roots, err := files.ListChildren(ctx, p.ID, nil)
		require.NoError(t, err)
		assert.Len(t, roots, 3)

		err = txManager.ExecTx(ctx, func(txCtx context.Context) error {
			_, err := files.DeleteMany(txCtx, p.ID, []string{util.ID, src.ID})
			return err
		})
		require.NoError(t, err)

		_, err = files.GetByID(ctx, util.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("failed transaction rolls back", func(t *testing.T) {
		p := newProject("rollback", "alice")
		boom := errors.New("boom")

		err := txManager.ExecTx(ctx, func(txCtx context.Context) error {
			if err := projects.Create(txCtx, p); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = projects.GetByID(ctx, p.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("list by owner", func(t *testing.T) {
		list, err := projects.ListByOwner(ctx, "alice")
		require.NoError(t, err)
		assert.NotEmpty(t, list)
		for i := 1; i < len(list); i++ {
			assert.False(t, list[i].UpdatedAt.After(list[i-1].UpdatedAt))
		}
	})
}
