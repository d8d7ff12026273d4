package handler

import (
	"log/slog"
	"net/http"

	playgroundSvc "cipherstudio/internal/domain/services/playground"
	"cipherstudio/internal/httputil"
)

// ProjectHandler handles project HTTP requests
type ProjectHandler struct {
	projectService playgroundSvc.ProjectService
	logger         *slog.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService playgroundSvc.ProjectService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// CreateProject creates a new project seeded with starter files
// POST /api/projects
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req playgroundSvc.CreateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = httputil.GetUserID(r)

	project, err := h.projectService.CreateProject(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, "project", project)
}

// ListProjects lists the projects owned by a user ("me" for the caller)
// GET /api/projects/user/{userId}
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	userRef := r.PathValue("userId")

	projects, err := h.projectService.ListProjects(r.Context(), httputil.GetUserID(r), userRef)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "projects", projects)
}

// GetProject retrieves a project by ID
// GET /api/projects/{id}
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "project", project)
}

// UpdateProject applies a partial update to a project
// PUT /api/projects/{id}
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req playgroundSvc.UpdateProjectRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(r.Context(), userID, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "project", project)
}

// DeleteProject deletes a project and all of its files
// DELETE /api/projects/{id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(r.Context(), userID, r.PathValue("id")); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccessWithFields(w, http.StatusOK, "Project deleted", nil)
}
