package playground

import (
	"context"

	"cipherstudio/internal/domain/models/playground"
)

// FileRepository defines data access operations for file tree nodes.
// Listing methods return nodes ordered folders first, then by name.
type FileRepository interface {
	// Create inserts a node with a caller-assigned ID.
	// Returns a *domain.ConflictError if a sibling already uses the name.
	Create(ctx context.Context, node *playground.FileNode) error

	// GetByID retrieves a node by ID (no project scoping)
	GetByID(ctx context.Context, id string) (*playground.FileNode, error)

	// FindSibling returns the node named name under parentID, or nil if none exists
	FindSibling(ctx context.Context, projectID string, parentID *string, name string) (*playground.FileNode, error)

	// ListByProject lists every node in a project
	ListByProject(ctx context.Context, projectID string) ([]playground.FileNode, error)

	// ListChildren lists the direct children of parentID (nil = project root)
	ListChildren(ctx context.Context, projectID string, parentID *string) ([]playground.FileNode, error)

	// Update persists name, parent, content, language, size and updated_at
	Update(ctx context.Context, node *playground.FileNode) error

	// DeleteMany deletes the given nodes of a project in one statement
	DeleteMany(ctx context.Context, projectID string, ids []string) (int64, error)

	// DeleteAllByProject deletes every node of a project
	DeleteAllByProject(ctx context.Context, projectID string) (int64, error)
}
