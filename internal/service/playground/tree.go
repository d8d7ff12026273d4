package playground

import (
	"context"
	"log/slog"
	"strings"

	models "cipherstudio/internal/domain/models/playground"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/domain/services"
	playgroundSvc "cipherstudio/internal/domain/services/playground"
	"cipherstudio/internal/templates"
)

// treeService implements the TreeService interface
type treeService struct {
	fileRepo  playgroundRepo.FileRepository
	guard     services.OwnershipGuard
	templates *templates.Registry
	logger    *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(
	fileRepo playgroundRepo.FileRepository,
	guard services.OwnershipGuard,
	registry *templates.Registry,
	logger *slog.Logger,
) playgroundSvc.TreeService {
	return &treeService{
		fileRepo:  fileRepo,
		guard:     guard,
		templates: registry,
		logger:    logger,
	}
}

// GetProjectTree builds the nested tree and sandbox file map for a project
func (s *treeService) GetProjectTree(ctx context.Context, userID, projectID string) (*models.ProjectTree, error) {
	project, err := s.guard.VerifyProject(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	nodes, err := s.fileRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	tree := &models.ProjectTree{
		Tree:  BuildTree(nodes),
		Files: SandboxFiles(nodes, s.templates.StarterFiles(project.Settings.Framework)),
	}

	s.logger.Info("project tree built",
		"project_id", project.ID,
		"node_count", len(nodes),
		"file_count", len(tree.Files),
	)

	return tree, nil
}

// BuildPaths computes the absolute path ("/a/b/c") of every node by walking
// parent references. The walk stops at a missing parent or a repeated node.
func BuildPaths(nodes []models.FileNode) map[string]string {
	byID := make(map[string]*models.FileNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	paths := make(map[string]string, len(nodes))
	for i := range nodes {
		var segments []string
		seen := make(map[string]bool)

		for cur := &nodes[i]; cur != nil && !seen[cur.ID]; {
			seen[cur.ID] = true
			segments = append(segments, cur.Name)
			if cur.ParentID == nil {
				break
			}
			cur = byID[*cur.ParentID]
		}

		// segments run leaf to root
		for l, r := 0, len(segments)-1; l < r; l, r = l+1, r-1 {
			segments[l], segments[r] = segments[r], segments[l]
		}
		paths[nodes[i].ID] = "/" + strings.Join(segments, "/")
	}

	return paths
}

// BuildTree nests nodes under their parents. Children keep the order of
// nodes, so a listing sorted folders-first yields a sorted tree. Nodes whose
// parent is missing are placed at the root.
func BuildTree(nodes []models.FileNode) []*models.TreeNode {
	paths := BuildPaths(nodes)

	// First pass: create all tree nodes
	treeNodes := make(map[string]*models.TreeNode, len(nodes))
	for _, n := range nodes {
		treeNodes[n.ID] = &models.TreeNode{
			ID:       n.ID,
			Name:     n.Name,
			Type:     n.Type,
			Path:     paths[n.ID],
			ParentID: n.ParentID,
			Language: n.Language,
		}
	}

	byID := make(map[string]*models.FileNode, len(nodes))
	for i := range nodes {
		byID[nodes[i].ID] = &nodes[i]
	}

	// Second pass: connect children to parents
	roots := make([]*models.TreeNode, 0)
	for _, n := range nodes {
		node := treeNodes[n.ID]
		if n.ParentID != nil && !inCycle(byID, n.ID) {
			if parent, ok := treeNodes[*n.ParentID]; ok && parent.Type == models.NodeTypeFolder {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// inCycle reports whether id is its own ancestor
func inCycle(byID map[string]*models.FileNode, id string) bool {
	seen := make(map[string]bool)
	cur := byID[id]
	for cur != nil && cur.ParentID != nil {
		if *cur.ParentID == id {
			return true
		}
		if seen[cur.ID] {
			return false
		}
		seen[cur.ID] = true
		cur = byID[*cur.ParentID]
	}
	return false
}

// SandboxFiles maps each file's path to its content for the preview sandbox.
// A project without files falls back to the starter files.
func SandboxFiles(nodes []models.FileNode, fallback []templates.StarterFile) map[string]models.SandboxFile {
	paths := BuildPaths(nodes)

	files := make(map[string]models.SandboxFile)
	for _, n := range nodes {
		if n.Type != models.NodeTypeFile {
			continue
		}
		files[paths[n.ID]] = models.SandboxFile{Code: n.Content}
	}

	if len(files) == 0 {
		for _, f := range fallback {
			files["/"+f.Name] = models.SandboxFile{Code: f.Content}
		}
	}

	return files
}
