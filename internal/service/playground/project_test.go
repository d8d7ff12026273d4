package playground

import (
	"context"
	"regexp"
	"testing"
	"time"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	playgroundSvc "cipherstudio/internal/domain/services/playground"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProject_DefaultsAndSeeding(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProject(t, alice, "demo")

	assert.Equal(t, "demo", p.Slug)
	assert.Equal(t, alice, p.Owner.UserID())
	assert.Equal(t, "react", p.Settings.Framework)
	assert.True(t, p.Settings.AutoSave)
	assert.Nil(t, p.RootFolderID)

	files, err := env.files.ListProjectFiles(ctx, alice, p.ID)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "App.js", files[0].Name)
	assert.Equal(t, "jsx", files[0].Language)
	assert.NotEmpty(t, files[0].Content)
	assert.Equal(t, int64(len(files[0].Content)), files[0].SizeInBytes)
	assert.Nil(t, files[0].ParentID)

	assert.Equal(t, "index.js", files[1].Name)
	assert.Equal(t, "javascript", files[1].Language)
	assert.NotEmpty(t, files[1].Content)
	assert.Equal(t, int64(len(files[1].Content)), files[1].SizeInBytes)
}

func TestCreateProject_SlugCollisionGetsSuffix(t *testing.T) {
	env := newTestEnv(t)

	first := env.createProject(t, alice, "My App!")
	second := env.createProject(t, alice, "My App!")

	assert.Equal(t, "my-app", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, regexp.MustCompile(`^my-app-[a-z0-9]{6}$`), second.Slug)
}

func TestCreateProject_SlugHintAndSettings(t *testing.T) {
	env := newTestEnv(t)

	p, err := env.projects.CreateProject(context.Background(), &playgroundSvc.CreateProjectRequest{
		UserID:      alice,
		Name:        "Anything",
		ProjectSlug: "Custom Slug",
		Description: ptr("a playground"),
		Settings: &playgroundSvc.SettingsInput{
			Framework: ptr("vue"),
			AutoSave:  boolPtr(false),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "custom-slug", p.Slug)
	assert.Equal(t, "a playground", p.Description)
	assert.Equal(t, "vue", p.Settings.Framework)
	assert.False(t, p.Settings.AutoSave)

	// Unknown frameworks still get the default starter files
	files, err := env.files.ListProjectFiles(context.Background(), alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"App.js", "index.js"}, names(files))
}

func TestCreateProject_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.projects.CreateProject(context.Background(), &playgroundSvc.CreateProjectRequest{UserID: alice, Name: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Name is required", err.Error())
}

func TestCreateProject_Unowned(t *testing.T) {
	env := newTestEnv(t)

	p := env.createProject(t, "", "public")
	assert.False(t, p.Owner.IsOwned())

	// Any authenticated caller may read and write it
	got, err := env.projects.GetProject(context.Background(), bob, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	updated, err := env.projects.UpdateProject(context.Background(), alice, p.ID, &playgroundSvc.UpdateProjectRequest{Name: ptr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	require.NoError(t, env.projects.DeleteProject(context.Background(), bob, p.ID))
}

func TestGetProject_GuardOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, alice, "private")

	tests := []struct {
		name    string
		userID  string
		id      string
		wantErr error
		wantMsg string
	}{
		{"malformed id", alice, "not-a-uuid", domain.ErrInvalidReference, "Invalid project ID"},
		{"malformed id beats missing identity", "", "nope", domain.ErrInvalidReference, "Invalid project ID"},
		{"missing project", alice, models.NewID(), domain.ErrNotFound, "Project not found"},
		{"missing project beats missing identity", "", models.NewID(), domain.ErrNotFound, "Project not found"},
		{"missing identity", "", p.ID, domain.ErrUnauthorized, "Unauthorized"},
		{"other owner", bob, p.ID, domain.ErrForbidden, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.projects.GetProject(ctx, tt.userID, tt.id)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}

	got, err := env.projects.GetProject(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "private", got.Name)
}

func TestListProjects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	older := env.createProject(t, alice, "older")
	time.Sleep(2 * time.Millisecond)
	newer := env.createProject(t, alice, "newer")
	env.createProject(t, bob, "bobs")

	projects, err := env.projects.ListProjects(ctx, alice, "me")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, newer.ID, projects[0].ID)
	assert.Equal(t, older.ID, projects[1].ID)

	projects, err = env.projects.ListProjects(ctx, alice, alice)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	// Touching the older project moves it to the front
	time.Sleep(2 * time.Millisecond)
	_, err = env.projects.UpdateProject(ctx, alice, older.ID, &playgroundSvc.UpdateProjectRequest{Description: ptr("bump")})
	require.NoError(t, err)

	projects, err = env.projects.ListProjects(ctx, alice, "me")
	require.NoError(t, err)
	assert.Equal(t, older.ID, projects[0].ID)
}

func TestListProjects_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.projects.ListProjects(ctx, "", "me")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = env.projects.ListProjects(ctx, alice, "bad ref!")
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
	assert.Equal(t, "Invalid userId", err.Error())

	_, err = env.projects.ListProjects(ctx, alice, bob)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.projects.ListProjects(ctx, "", bob)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateProject(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, alice, "demo")

	updated, err := env.projects.UpdateProject(ctx, alice, p.ID, &playgroundSvc.UpdateProjectRequest{
		Name:     ptr("  Renamed  "),
		Settings: &playgroundSvc.SettingsInput{AutoSave: boolPtr(false)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.False(t, updated.Settings.AutoSave)
	assert.Equal(t, "react", updated.Settings.Framework)
	assert.Equal(t, p.Slug, updated.Slug)

	_, err = env.projects.UpdateProject(ctx, alice, p.ID, &playgroundSvc.UpdateProjectRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.projects.UpdateProject(ctx, alice, p.ID, &playgroundSvc.UpdateProjectRequest{Name: ptr("")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.projects.UpdateProject(ctx, bob, p.ID, &playgroundSvc.UpdateProjectRequest{Name: ptr("mine")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDeleteProject_CascadesFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	p := env.createProject(t, alice, "doomed")
	keep := env.createProject(t, alice, "keeper")
	src := env.createNode(t, alice, p.ID, nil, "src", models.NodeTypeFolder)
	env.createNode(t, alice, p.ID, &src.ID, "util.js", models.NodeTypeFile)

	assert.ErrorIs(t, env.projects.DeleteProject(ctx, bob, p.ID), domain.ErrForbidden)
	require.NoError(t, env.projects.DeleteProject(ctx, alice, p.ID))

	_, err := env.projects.GetProject(ctx, alice, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.files.GetFile(ctx, alice, src.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	remaining, err := env.files.ListProjectFiles(ctx, alice, keep.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func boolPtr(b bool) *bool { return &b }
