package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	playgroundSvc "cipherstudio/internal/domain/services/playground"
	"cipherstudio/internal/httputil"
)

// FileHandler handles file and folder HTTP requests
type FileHandler struct {
	fileService playgroundSvc.FileService
	treeService playgroundSvc.TreeService
	logger      *slog.Logger
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService playgroundSvc.FileService, treeService playgroundSvc.TreeService, logger *slog.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		treeService: treeService,
		logger:      logger,
	}
}

// CreateFile creates a file or folder
// POST /api/files
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req playgroundSvc.CreateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.UserID = userID

	file, err := h.fileService.CreateFile(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, "file", file)
}

// ListProjectFiles lists every node in a project
// GET /api/files/project/{projectId}
func (h *FileHandler) ListProjectFiles(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	files, err := h.fileService.ListProjectFiles(r.Context(), userID, r.PathValue("projectId"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "files", files)
}

// GetProjectTree returns the nested tree and the sandbox file map
// GET /api/files/project/{projectId}/tree
func (h *FileHandler) GetProjectTree(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	tree, err := h.treeService.GetProjectTree(r.Context(), userID, r.PathValue("projectId"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccessWithFields(w, http.StatusOK, "", map[string]interface{}{
		"tree":  tree.Tree,
		"files": tree.Files,
	})
}

// ListFolderContents lists the direct children of a folder
// GET /api/files/folder/{folderId}
func (h *FileHandler) ListFolderContents(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	contents, err := h.fileService.ListFolderContents(r.Context(), userID, r.PathValue("folderId"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "contents", contents)
}

// GetFile retrieves a single node with its content
// GET /api/files/{id}
func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.GetFile(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "file", file)
}

// UpdateFile renames, moves or rewrites a node
// PUT /api/files/{id}
func (h *FileHandler) UpdateFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req playgroundSvc.UpdateFileRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	file, err := h.fileService.UpdateFile(r.Context(), userID, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, "file", file)
}

// DeleteFile deletes a node; folders take their subtree with them
// DELETE /api/files/{id}
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	file, err := h.fileService.DeleteFile(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccessWithFields(w, http.StatusOK, fmt.Sprintf("%s deleted successfully", file.Type), nil)
}
