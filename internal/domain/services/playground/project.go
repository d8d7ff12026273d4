package playground

import (
	"context"

	"cipherstudio/internal/domain/models/playground"
)

// MeSentinel resolves to the caller's own identity when listing projects
const MeSentinel = "me"

// SettingsInput carries optional settings fields
type SettingsInput struct {
	Framework *string `json:"framework,omitempty"`
	AutoSave  *bool   `json:"autoSave,omitempty"`
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID      string         `json:"-"` // Set from auth context; empty creates an unowned project
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	ProjectSlug string         `json:"projectSlug,omitempty"` // Slug hint; falls back to name
	Settings    *SettingsInput `json:"settings,omitempty"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Name        *string        `json:"name,omitempty"`
	Description *string        `json:"description,omitempty"`
	Settings    *SettingsInput `json:"settings,omitempty"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject creates a project with a unique slug and seeds its starter files
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*playground.Project, error)

	// GetProject retrieves a project the caller may access
	GetProject(ctx context.Context, userID, id string) (*playground.Project, error)

	// ListProjects lists projects owned by userRef ("me" = caller), most recently updated first
	ListProjects(ctx context.Context, userID, userRef string) ([]playground.Project, error)

	// UpdateProject applies a partial update
	UpdateProject(ctx context.Context, userID, id string, req *UpdateProjectRequest) (*playground.Project, error)

	// DeleteProject deletes a project and its file tree
	DeleteProject(ctx context.Context, userID, id string) error
}
