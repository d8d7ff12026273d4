package playground

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cipherstudio/internal/config"
	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	"cipherstudio/internal/domain/repositories"
	playgroundRepo "cipherstudio/internal/domain/repositories/playground"
	"cipherstudio/internal/domain/services"
	playgroundSvc "cipherstudio/internal/domain/services/playground"
	"cipherstudio/internal/templates"
)

// projectService implements the ProjectService interface
type projectService struct {
	projectRepo playgroundRepo.ProjectRepository
	fileRepo    playgroundRepo.FileRepository
	txManager   repositories.TransactionManager
	guard       services.OwnershipGuard
	templates   *templates.Registry
	suffix      SuffixFunc
	logger      *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projectRepo playgroundRepo.ProjectRepository,
	fileRepo playgroundRepo.FileRepository,
	txManager repositories.TransactionManager,
	guard services.OwnershipGuard,
	registry *templates.Registry,
	logger *slog.Logger,
) playgroundSvc.ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		fileRepo:    fileRepo,
		txManager:   txManager,
		guard:       guard,
		templates:   registry,
		suffix:      RandomSuffix,
		logger:      logger,
	}
}

// CreateProject creates a project and seeds its starter files in one transaction
func (s *projectService) CreateProject(ctx context.Context, req *playgroundSvc.CreateProjectRequest) (*models.Project, error) {
	name := strings.TrimSpace(req.Name)
	description := ""
	if req.Description != nil {
		description = *req.Description
	}

	if err := validateFields(
		field{name, projectNameRules()},
		field{description, descriptionRules()},
	); err != nil {
		return nil, err
	}

	settings := models.DefaultSettings()
	applySettings(&settings, req.Settings)

	hint := req.ProjectSlug
	if strings.TrimSpace(hint) == "" {
		hint = name
	}
	base := BaseSlug(hint)

	now := time.Now().UTC()
	project := &models.Project{
		ID:          models.NewID(),
		Owner:       models.OwnedBy(req.UserID),
		Name:        name,
		Description: description,
		Settings:    settings,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		slug, err := UniqueSlug(txCtx, base, s.projectRepo.SlugExists, s.suffix, config.MaxSlugAttempts)
		if err != nil {
			return err
		}
		project.Slug = slug

		if err := s.projectRepo.Create(txCtx, project); err != nil {
			return err
		}

		return s.seedStarterFiles(txCtx, project)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"slug", project.Slug,
		"name", project.Name,
		"user_id", req.UserID,
		"framework", project.Settings.Framework,
	)

	return project, nil
}

// seedStarterFiles creates the framework's starter files at the project root
func (s *projectService) seedStarterFiles(ctx context.Context, project *models.Project) error {
	for _, starter := range s.templates.StarterFiles(project.Settings.Framework) {
		node := &models.FileNode{
			ID:        models.NewID(),
			ProjectID: project.ID,
			Name:      starter.Name,
			Type:      models.NodeTypeFile,
			Language:  starter.Language,
			CreatedAt: project.CreatedAt,
			UpdatedAt: project.CreatedAt,
		}
		node.SetContent(starter.Content)

		if err := s.fileRepo.Create(ctx, node); err != nil {
			return fmt.Errorf("seed %s: %w", starter.Name, err)
		}
	}
	return nil
}

// GetProject retrieves a project by ID
func (s *projectService) GetProject(ctx context.Context, userID, id string) (*models.Project, error) {
	return s.guard.VerifyProject(ctx, userID, id)
}

// ListProjects retrieves all projects owned by the caller
func (s *projectService) ListProjects(ctx context.Context, userID, userRef string) ([]models.Project, error) {
	target := userRef
	if userRef == playgroundSvc.MeSentinel {
		if userID == "" {
			return nil, domain.NewUnauthorized("Unauthorized")
		}
		target = userID
	}

	if !isValidUserRef(target) {
		return nil, domain.NewInvalidReference("Invalid userId")
	}

	if userID == "" || userID != target {
		return nil, domain.NewForbidden("Forbidden")
	}

	projects, err := s.projectRepo.ListByOwner(ctx, target)
	if err != nil {
		return nil, err
	}

	return projects, nil
}

// UpdateProject applies a partial update
func (s *projectService) UpdateProject(ctx context.Context, userID, id string, req *playgroundSvc.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.guard.VerifyProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name == nil && req.Description == nil && req.Settings == nil {
		return nil, domain.NewValidation("at least one field must be provided")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateFields(field{name, projectNameRules()}); err != nil {
			return nil, err
		}
		project.Name = name
	}

	if req.Description != nil {
		if err := validateFields(field{*req.Description, descriptionRules()}); err != nil {
			return nil, err
		}
		project.Description = *req.Description
	}

	applySettings(&project.Settings, req.Settings)
	project.UpdatedAt = time.Now().UTC()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logger.Info("project updated",
		"id", project.ID,
		"name", project.Name,
	)

	return project, nil
}

// DeleteProject deletes a project together with its file tree
func (s *projectService) DeleteProject(ctx context.Context, userID, id string) error {
	project, err := s.guard.VerifyProject(ctx, userID, id)
	if err != nil {
		return err
	}

	var removed int64
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		n, err := s.fileRepo.DeleteAllByProject(txCtx, project.ID)
		if err != nil {
			return fmt.Errorf("delete project files: %w", err)
		}
		removed = n
		return s.projectRepo.Delete(txCtx, project.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted",
		"id", project.ID,
		"files_removed", removed,
	)

	return nil
}

// applySettings overlays the provided settings fields
func applySettings(settings *models.ProjectSettings, in *playgroundSvc.SettingsInput) {
	if in == nil {
		return
	}
	if in.Framework != nil && strings.TrimSpace(*in.Framework) != "" {
		settings.Framework = strings.TrimSpace(*in.Framework)
	}
	if in.AutoSave != nil {
		settings.AutoSave = *in.AutoSave
	}
}
