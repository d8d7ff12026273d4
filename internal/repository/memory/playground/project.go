package playground

import (
	"context"
	"fmt"
	"sort"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/repository/memory"
)

// MemoryProjectRepository implements the ProjectRepository interface
type MemoryProjectRepository struct {
	store *memory.Store
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(store *memory.Store) playgroundRepo.ProjectRepository {
	return &MemoryProjectRepository{store: store}
}

// Create creates a new project
func (r *MemoryProjectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.store.Update(func(d *memory.Data) error {
		if _, ok := d.Projects[project.ID]; ok {
			return fmt.Errorf("project %s: %w", project.ID, domain.ErrConflict)
		}
		for _, existing := range d.Projects {
			if existing.Slug == project.Slug {
				return &domain.ConflictError{
					Message:      fmt.Sprintf("project slug %q already exists", project.Slug),
					ResourceType: "project",
					ResourceID:   existing.ID,
				}
			}
		}
		d.Projects[project.ID] = *project
		return nil
	})
}

// GetByID retrieves a project by ID
func (r *MemoryProjectRepository) GetByID(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project
	err := r.store.View(func(d *memory.Data) error {
		p, ok := d.Projects[id]
		if !ok {
			return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		project = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether slug is taken
func (r *MemoryProjectRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.store.View(func(d *memory.Data) error {
		for _, p := range d.Projects {
			if p.Slug == slug {
				exists = true
				return nil
			}
		}
		return nil
	})
	return exists, err
}

// ListByOwner retrieves all projects owned by userID, ordered by updated_at DESC
func (r *MemoryProjectRepository) ListByOwner(ctx context.Context, userID string) ([]models.Project, error) {
	projects := []models.Project{}
	err := r.store.View(func(d *memory.Data) error {
		for _, p := range d.Projects {
			if p.Owner.IsOwned() && p.Owner.UserID() == userID {
				projects = append(projects, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(projects, func(i, j int) bool {
		if projects[i].UpdatedAt.Equal(projects[j].UpdatedAt) {
			return projects[i].ID < projects[j].ID
		}
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})
	return projects, nil
}

// Update updates a project
func (r *MemoryProjectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.store.Update(func(d *memory.Data) error {
		if _, ok := d.Projects[project.ID]; !ok {
			return fmt.Errorf("project %s: %w", project.ID, domain.ErrNotFound)
		}
		d.Projects[project.ID] = *project
		return nil
	})
}

// Delete removes a project
func (r *MemoryProjectRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(func(d *memory.Data) error {
		if _, ok := d.Projects[id]; !ok {
			return fmt.Errorf("project %s: %w", id, domain.ErrNotFound)
		}
		delete(d.Projects, id)
		return nil
	})
}
