package playground

import (
	"context"

	"cipherstudio/internal/domain/models/playground"
)

// TreeService projects a project's flat node list into paths and a nested tree
type TreeService interface {
	// GetProjectTree builds the nested tree and the sandbox file map for a project
	// userID is used for authorization check
	GetProjectTree(ctx context.Context, userID, projectID string) (*playground.ProjectTree, error)
}
