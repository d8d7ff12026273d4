package services

import (
	"context"

	"cipherstudio/internal/domain/models/playground"
)

// OwnershipGuard decides whether an identity may act on a project.
// Every project and file operation goes through it before touching data.
//
// Checks run in a fixed order: malformed reference (400), missing
// resource (404), missing identity (401), foreign owner (403).
type OwnershipGuard interface {
	// VerifyProject returns the project if userID may act on it
	VerifyProject(ctx context.Context, userID, projectID string) (*playground.Project, error)

	// VerifyNode loads a file or folder and verifies access to its project
	VerifyNode(ctx context.Context, userID, nodeID string) (*playground.FileNode, *playground.Project, error)
}
