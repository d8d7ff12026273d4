package playground

import (
	"context"

	"cipherstudio/internal/domain/models/playground"
)

// ProjectRepository defines data access operations for projects
type ProjectRepository interface {
	// Create inserts a project with a caller-assigned ID.
	// Returns a *domain.ConflictError if the slug is taken.
	Create(ctx context.Context, project *playground.Project) error

	// GetByID retrieves a project by ID regardless of owner
	GetByID(ctx context.Context, id string) (*playground.Project, error)

	// SlugExists reports whether a project already uses slug
	SlugExists(ctx context.Context, slug string) (bool, error)

	// ListByOwner retrieves all projects owned by userID, ordered by updated_at DESC
	ListByOwner(ctx context.Context, userID string) ([]playground.Project, error)

	// Update persists name, description, settings and updated_at
	Update(ctx context.Context, project *playground.Project) error

	// Delete removes a project record
	Delete(ctx context.Context, id string) error
}
