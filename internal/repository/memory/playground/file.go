package playground

import (
	"context"
	"fmt"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/repository/memory"
)

// MemoryFileRepository implements the FileRepository interface
type MemoryFileRepository struct {
	store *memory.Store
}

// NewFileRepository creates a new file repository
func NewFileRepository(store *memory.Store) playgroundRepo.FileRepository {
	return &MemoryFileRepository{store: store}
}

// findSibling scans for a node named name under parentID, ignoring excludeID
func findSibling(d *memory.Data, projectID string, parentID *string, name, excludeID string) (models.FileNode, bool) {
	for _, n := range d.Files {
		if n.ID != excludeID && n.ProjectID == projectID && n.Name == name && models.SameParent(n.ParentID, parentID) {
			return n, true
		}
	}
	return models.FileNode{}, false
}

func siblingConflict(existing models.FileNode) error {
	return &domain.ConflictError{
		Message:      "Name already exists in this location",
		ResourceType: string(existing.Type),
		ResourceID:   existing.ID,
	}
}

// Create creates a new node
func (r *MemoryFileRepository) Create(ctx context.Context, node *models.FileNode) error {
	return r.store.Update(func(d *memory.Data) error {
		if _, ok := d.Files[node.ID]; ok {
			return fmt.Errorf("file %s: %w", node.ID, domain.ErrConflict)
		}
		if existing, ok := findSibling(d, node.ProjectID, node.ParentID, node.Name, ""); ok {
			return siblingConflict(existing)
		}
		d.Files[node.ID] = *node
		return nil
	})
}

// GetByID retrieves a node by ID
func (r *MemoryFileRepository) GetByID(ctx context.Context, id string) (*models.FileNode, error) {
	var node models.FileNode
	err := r.store.View(func(d *memory.Data) error {
		n, ok := d.Files[id]
		if !ok {
			return fmt.Errorf("file %s: %w", id, domain.ErrNotFound)
		}
		node = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &node, nil
}

// FindSibling returns the node named name under parentID, or nil
func (r *MemoryFileRepository) FindSibling(ctx context.Context, projectID string, parentID *string, name string) (*models.FileNode, error) {
	var found *models.FileNode
	err := r.store.View(func(d *memory.Data) error {
		if n, ok := findSibling(d, projectID, parentID, name, ""); ok {
			found = &n
		}
		return nil
	})
	return found, err
}

// ListByProject lists every node in a project
func (r *MemoryFileRepository) ListByProject(ctx context.Context, projectID string) ([]models.FileNode, error) {
	return r.list(func(n *models.FileNode) bool {
		return n.ProjectID == projectID
	})
}

// ListChildren lists the direct children of parentID
func (r *MemoryFileRepository) ListChildren(ctx context.Context, projectID string, parentID *string) ([]models.FileNode, error) {
	return r.list(func(n *models.FileNode) bool {
		return n.ProjectID == projectID && models.SameParent(n.ParentID, parentID)
	})
}

func (r *MemoryFileRepository) list(match func(n *models.FileNode) bool) ([]models.FileNode, error) {
	nodes := []models.FileNode{}
	err := r.store.View(func(d *memory.Data) error {
		for _, n := range d.Files {
			if match(&n) {
				nodes = append(nodes, n)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	models.SortNodes(nodes)
	return nodes, nil
}

// Update updates a node
func (r *MemoryFileRepository) Update(ctx context.Context, node *models.FileNode) error {
	return r.store.Update(func(d *memory.Data) error {
		if _, ok := d.Files[node.ID]; !ok {
			return fmt.Errorf("file %s: %w", node.ID, domain.ErrNotFound)
		}
		if existing, ok := findSibling(d, node.ProjectID, node.ParentID, node.Name, node.ID); ok {
			return siblingConflict(existing)
		}
		d.Files[node.ID] = *node
		return nil
	})
}

// DeleteMany deletes the given nodes of a project
func (r *MemoryFileRepository) DeleteMany(ctx context.Context, projectID string, ids []string) (int64, error) {
	var deleted int64
	err := r.store.Update(func(d *memory.Data) error {
		for _, id := range ids {
			if n, ok := d.Files[id]; ok && n.ProjectID == projectID {
				delete(d.Files, id)
				deleted++
			}
		}
		return nil
	})
	return deleted, err
}

// DeleteAllByProject deletes every node of a project
func (r *MemoryFileRepository) DeleteAllByProject(ctx context.Context, projectID string) (int64, error) {
	var deleted int64
	err := r.store.Update(func(d *memory.Data) error {
		for id, n := range d.Files {
			if n.ProjectID == projectID {
				delete(d.Files, id)
				deleted++
			}
		}
		return nil
	})
	return deleted, err
}
