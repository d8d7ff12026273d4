package playground

import (
	"context"
	"io"
	"log/slog"
	"testing"

	models "cipherstudio/internal/domain/models/playground"
	playgroundSvc "cipherstudio/internal/domain/services/playground"
	"cipherstudio/internal/repository/memory"
	memPlayground "cipherstudio/internal/repository/memory/playground"
	"cipherstudio/internal/service/auth"
	"cipherstudio/internal/templates"

	"github.com/stretchr/testify/require"
)

const (
	alice = "user-alice"
	bob   = "user-bob"
)

type testEnv struct {
	projects playgroundSvc.ProjectService
	files    playgroundSvc.FileService
	trees    playgroundSvc.TreeService
	store    *memory.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	projectRepo := memPlayground.NewProjectRepository(store)
	fileRepo := memPlayground.NewFileRepository(store)
	txManager := memory.NewTransactionManager(store)
	guard := auth.NewOwnerGuard(projectRepo, fileRepo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry, err := templates.NewRegistry()
	require.NoError(t, err)

	return &testEnv{
		projects: NewProjectService(projectRepo, fileRepo, txManager, guard, registry, logger),
		files:    NewFileService(fileRepo, txManager, guard, logger),
		trees:    NewTreeService(fileRepo, guard, registry, logger),
		store:    store,
	}
}

func (e *testEnv) createProject(t *testing.T, owner, name string) *models.Project {
	t.Helper()
	p, err := e.projects.CreateProject(context.Background(), &playgroundSvc.CreateProjectRequest{
		UserID: owner,
		Name:   name,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) createNode(t *testing.T, userID, projectID string, parentID *string, name string, typ models.NodeType) *models.FileNode {
	t.Helper()
	n, err := e.files.CreateFile(context.Background(), &playgroundSvc.CreateFileRequest{
		UserID:    userID,
		ProjectID: projectID,
		ParentID:  parentID,
		Name:      name,
		Type:      typ,
	})
	require.NoError(t, err)
	return n
}

func names(nodes []models.FileNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func ptr(s string) *string { return &s }
