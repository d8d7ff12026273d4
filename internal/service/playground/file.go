package playground

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	"cipherstudio/internal/domain/repositories"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/domain/services"
	playgroundSvc "cipherstudio/internal/domain/services/playground"
)

type fileService struct {
	fileRepo  playgroundRepo.FileRepository
	txManager repositories.TransactionManager
	guard     services.OwnershipGuard
	logger    *slog.Logger
}

// NewFileService creates a new file service
func NewFileService(
	fileRepo playgroundRepo.FileRepository,
	txManager repositories.TransactionManager,
	guard services.OwnershipGuard,
	logger *slog.Logger,
) playgroundSvc.FileService {
	return &fileService{
		fileRepo:  fileRepo,
		txManager: txManager,
		guard:     guard,
		logger:    logger,
	}
}

// CreateFile creates a file or folder
func (s *fileService) CreateFile(ctx context.Context, req *playgroundSvc.CreateFileRequest) (*models.FileNode, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateFields(
		field{req.ProjectID, nodeProjectRules()},
		field{name, nodeNameRules("name is required")},
		field{req.Type, nodeTypeRules()},
	); err != nil {
		return nil, err
	}

	project, err := s.guard.VerifyProject(ctx, req.UserID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	// Normalize empty string to nil for root-level nodes
	parentID := req.ParentID
	if parentID != nil && *parentID == "" {
		parentID = nil
	}

	if parentID != nil {
		if _, err := s.resolveParent(ctx, *parentID, project.ID, "Invalid parentId", "Parent folder not found"); err != nil {
			return nil, err
		}
	}

	existing, err := s.fileRepo.FindSibling(ctx, project.ID, parentID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
	}
	if existing != nil {
		return nil, &domain.ConflictError{
			Message:      fmt.Sprintf("A %s with name %q already exists in this location", req.Type, name),
			ResourceType: string(existing.Type),
			ResourceID:   existing.ID,
		}
	}

	now := time.Now().UTC()
	node := &models.FileNode{
		ID:        models.NewID(),
		ProjectID: project.ID,
		ParentID:  parentID,
		Name:      name,
		Type:      req.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if node.Type == models.NodeTypeFile {
		content := ""
		if req.Content != nil {
			content = *req.Content
		}
		node.SetContent(content)

		if req.Language != nil && strings.TrimSpace(*req.Language) != "" {
			node.Language = strings.TrimSpace(*req.Language)
		} else {
			node.Language = DetectLanguage(name)
		}
	}

	if err := s.fileRepo.Create(ctx, node); err != nil {
		return nil, err
	}

	s.logger.Info("file created",
		"id", node.ID,
		"name", node.Name,
		"type", node.Type,
		"project_id", node.ProjectID,
		"parent_id", node.ParentID,
	)

	return node, nil
}

// resolveParent loads parentID and checks it is a folder of projectID
func (s *fileService) resolveParent(ctx context.Context, parentID, projectID, invalidMsg, notFoundMsg string) (*models.FileNode, error) {
	if !models.IsValidID(parentID) {
		return nil, domain.NewInvalidReference("%s", invalidMsg)
	}

	parent, err := s.fileRepo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound("%s", notFoundMsg)
		}
		return nil, fmt.Errorf("load parent folder: %w", err)
	}

	if !parent.IsFolder() {
		return nil, domain.NewValidation("Parent must be a folder")
	}
	if parent.ProjectID != projectID {
		return nil, domain.NewValidation("Parent folder belongs to different project")
	}

	return parent, nil
}

// GetFile retrieves a single node
func (s *fileService) GetFile(ctx context.Context, userID, id string) (*models.FileNode, error) {
	node, _, err := s.guard.VerifyNode(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return node, nil
}

// ListProjectFiles lists every node of a project
func (s *fileService) ListProjectFiles(ctx context.Context, userID, projectID string) ([]models.FileNode, error) {
	project, err := s.guard.VerifyProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	nodes, err := s.fileRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return nodes, nil
}

// ListFolderContents lists the direct children of a folder
func (s *fileService) ListFolderContents(ctx context.Context, userID, folderID string) ([]models.FileNode, error) {
	if !models.IsValidID(folderID) {
		return nil, domain.NewInvalidReference("Invalid folder ID")
	}

	folder, err := s.fileRepo.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound("Folder not found")
		}
		return nil, err
	}
	if !folder.IsFolder() {
		return nil, domain.NewValidation("Not a folder")
	}

	if _, err := s.guard.VerifyProject(ctx, userID, folder.ProjectID); err != nil {
		return nil, err
	}

	children, err := s.fileRepo.ListChildren(ctx, folder.ProjectID, &folder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folder contents: %w", err)
	}

	return children, nil
}

// UpdateFile renames, moves or rewrites a node
func (s *fileService) UpdateFile(ctx context.Context, userID, id string, req *playgroundSvc.UpdateFileRequest) (*models.FileNode, error) {
	node, _, err := s.guard.VerifyNode(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name == nil && req.Content == nil && !req.ParentID.Present {
		return nil, domain.NewValidation("at least one field must be provided")
	}

	renamed := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateFields(field{name, nodeNameRules("name is required")}); err != nil {
			return nil, err
		}
		if name != node.Name {
			node.Name = name
			renamed = true
			if node.Type == models.NodeTypeFile {
				node.Language = DetectLanguage(name)
			}
		}
	}

	// Folders never carry content
	if req.Content != nil {
		node.SetContent(*req.Content)
	}

	// Tri-state: only move if the field was present in the request
	moved := false
	if req.ParentID.Present {
		newParent := req.ParentID.Normalized()
		if newParent != nil {
			parent, err := s.resolveParent(ctx, *newParent, node.ProjectID, "Invalid parentId", "Invalid parent folder")
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.NewValidation("Invalid parent folder")
			}
			if err != nil {
				return nil, err
			}
			if err := s.validateNoCircularReference(ctx, node.ID, parent); err != nil {
				return nil, err
			}
		}
		if !models.SameParent(node.ParentID, newParent) {
			node.ParentID = newParent
			moved = true
		}
	}

	// Check for duplicate name in the destination (if name or parent changed)
	if renamed || moved {
		existing, err := s.fileRepo.FindSibling(ctx, node.ProjectID, node.ParentID, node.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate names: %w", err)
		}
		if existing != nil && existing.ID != node.ID {
			return nil, &domain.ConflictError{
				Message:      "Name already exists in this location",
				ResourceType: string(existing.Type),
				ResourceID:   existing.ID,
			}
		}
	}

	node.UpdatedAt = time.Now().UTC()

	if err := s.fileRepo.Update(ctx, node); err != nil {
		return nil, err
	}

	s.logger.Info("file updated",
		"id", node.ID,
		"name", node.Name,
		"parent_id", node.ParentID,
		"renamed", renamed,
		"moved", moved,
	)

	return node, nil
}

// validateNoCircularReference rejects moving nodeID under itself or one of
// its descendants by walking up from the proposed parent.
func (s *fileService) validateNoCircularReference(ctx context.Context, nodeID string, parent *models.FileNode) error {
	visited := make(map[string]bool)
	current := parent

	for current != nil {
		if current.ID == nodeID {
			return domain.NewValidation("Cannot move a folder into itself or its descendants")
		}
		if visited[current.ID] {
			return domain.NewValidation("Folder hierarchy contains a cycle")
		}
		visited[current.ID] = true

		if current.ParentID == nil {
			return nil
		}

		next, err := s.fileRepo.GetByID(ctx, *current.ParentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Dangling ancestor: the chain ends here
				return nil
			}
			return fmt.Errorf("failed to walk folder ancestors: %w", err)
		}
		current = next
	}

	return nil
}

// DeleteFile deletes a node; folders are removed with their whole subtree
// in a single transaction.
func (s *fileService) DeleteFile(ctx context.Context, userID, id string) (*models.FileNode, error) {
	node, _, err := s.guard.VerifyNode(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var deleted int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		ids := []string{node.ID}
		if node.IsFolder() {
			descendants, err := s.collectDescendants(txCtx, node)
			if err != nil {
				return err
			}
			ids = append(descendants, node.ID)
		}

		n, err := s.fileRepo.DeleteMany(txCtx, node.ProjectID, ids)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", node.Type, err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("file deleted",
		"id", node.ID,
		"name", node.Name,
		"type", node.Type,
		"project_id", node.ProjectID,
		"nodes_removed", deleted,
	)

	return node, nil
}

// collectDescendants returns every descendant of folder, deepest first
func (s *fileService) collectDescendants(ctx context.Context, folder *models.FileNode) ([]string, error) {
	var ids []string
	visited := map[string]bool{folder.ID: true}

	var walk func(parentID string) error
	walk = func(parentID string) error {
		children, err := s.fileRepo.ListChildren(ctx, folder.ProjectID, &parentID)
		if err != nil {
			return fmt.Errorf("failed to list child nodes: %w", err)
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			if child.IsFolder() {
				if err := walk(child.ID); err != nil {
					return err
				}
			}
			ids = append(ids, child.ID)
		}
		return nil
	}

	if err := walk(folder.ID); err != nil {
		return nil, err
	}
	return ids, nil
}
