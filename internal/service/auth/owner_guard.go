package auth

import (
	"context"
	"errors"
	"fmt"

	"cipherstudio/internal/domain"
	"cipherstudio/internal/domain/models/playground"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
)

// OwnerGuard implements services.OwnershipGuard using recorded project owners.
// A caller can act on a project if it is unowned or owned by the caller.
type OwnerGuard struct {
	projectRepo playgroundRepo.ProjectRepository
	fileRepo    playgroundRepo.FileRepository
}

// NewOwnerGuard creates a new ownership guard
func NewOwnerGuard(
	projectRepo playgroundRepo.ProjectRepository,
	fileRepo playgroundRepo.FileRepository,
) *OwnerGuard {
	return &OwnerGuard{
		projectRepo: projectRepo,
		fileRepo:    fileRepo,
	}
}

// VerifyProject checks reference, existence, identity and owner, in that order
func (g *OwnerGuard) VerifyProject(ctx context.Context, userID, projectID string) (*playground.Project, error) {
	if !playground.IsValidID(projectID) {
		return nil, domain.NewInvalidReference("Invalid project ID")
	}

	project, err := g.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound("Project not found")
		}
		return nil, fmt.Errorf("load project for auth: %w", err)
	}

	if userID == "" {
		return nil, domain.NewUnauthorized("Unauthorized")
	}

	// Unowned projects are open to any authenticated caller
	if !project.Owner.Permits(userID) {
		return nil, domain.NewForbidden("Forbidden")
	}

	return project, nil
}

// VerifyNode loads a node by ID and guards its project
func (g *OwnerGuard) VerifyNode(ctx context.Context, userID, nodeID string) (*playground.FileNode, *playground.Project, error) {
	if !playground.IsValidID(nodeID) {
		return nil, nil, domain.NewInvalidReference("Invalid file ID")
	}

	node, err := g.fileRepo.GetByID(ctx, nodeID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.NewNotFound("File not found")
		}
		return nil, nil, fmt.Errorf("load file for auth: %w", err)
	}

	project, err := g.VerifyProject(ctx, userID, node.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	return node, project, nil
}
