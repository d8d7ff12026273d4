package auth

import (
	"context"
	"testing"
	"time"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	"cipherstudio/internal/repository/memory"
	memPlayground "cipherstudio/internal/repository/memory/playground"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type guardFixture struct {
	guard    *OwnerGuard
	owned    *models.Project
	unowned  *models.Project
	ownedDoc *models.FileNode
}

func newGuardFixture(t *testing.T) *guardFixture {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	projectRepo := memPlayground.NewProjectRepository(store)
	fileRepo := memPlayground.NewFileRepository(store)

	now := time.Now().UTC()
	owned := &models.Project{ID: models.NewID(), Slug: "owned", Owner: models.OwnedBy("alice"), Name: "owned", CreatedAt: now, UpdatedAt: now}
	unowned := &models.Project{ID: models.NewID(), Slug: "public", Owner: models.Unowned(), Name: "public", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, projectRepo.Create(ctx, owned))
	require.NoError(t, projectRepo.Create(ctx, unowned))

	doc := &models.FileNode{ID: models.NewID(), ProjectID: owned.ID, Name: "App.js", Type: models.NodeTypeFile}
	require.NoError(t, fileRepo.Create(ctx, doc))

	return &guardFixture{
		guard:    NewOwnerGuard(projectRepo, fileRepo),
		owned:    owned,
		unowned:  unowned,
		ownedDoc: doc,
	}
}

func TestOwnerGuard_VerifyProject(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		userID    string
		projectID string
		wantErr   error
	}{
		{"owner", "alice", f.owned.ID, nil},
		{"stranger", "bob", f.owned.ID, domain.ErrForbidden},
		{"anonymous", "", f.owned.ID, domain.ErrUnauthorized},
		{"unowned any identity", "bob", f.unowned.ID, nil},
		{"unowned anonymous", "", f.unowned.ID, domain.ErrUnauthorized},
		{"missing", "alice", models.NewID(), domain.ErrNotFound},
		{"malformed", "alice", "123", domain.ErrInvalidReference},
		{"empty", "alice", "", domain.ErrInvalidReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project, err := f.guard.VerifyProject(ctx, tt.userID, tt.projectID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, project)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.projectID, project.ID)
		})
	}
}

func TestOwnerGuard_VerifyNode(t *testing.T) {
	f := newGuardFixture(t)
	ctx := context.Background()

	node, project, err := f.guard.VerifyNode(ctx, "alice", f.ownedDoc.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ownedDoc.ID, node.ID)
	assert.Equal(t, f.owned.ID, project.ID)

	_, _, err = f.guard.VerifyNode(ctx, "bob", f.ownedDoc.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, _, err = f.guard.VerifyNode(ctx, "alice", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	_, _, err = f.guard.VerifyNode(ctx, "alice", models.NewID())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "File not found", err.Error())
}
