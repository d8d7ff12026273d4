package playground

import (
	"context"

	"cipherstudio/internal/domain/models/playground"
	"cipherstudio/internal/httputil"
)

// CreateFileRequest represents a file or folder creation request
type CreateFileRequest struct {
	UserID    string              `json:"-"` // Set from auth context
	ProjectID string              `json:"projectId"`
	ParentID  *string             `json:"parentId,omitempty"` // null or "" for root
	Name      string              `json:"name"`
	Type      playground.NodeType `json:"type"`
	Content   *string             `json:"content,omitempty"`
	Language  *string             `json:"language,omitempty"` // Overrides extension detection
}

// UpdateFileRequest represents a partial node update
type UpdateFileRequest struct {
	Name     *string                 `json:"name,omitempty"`    // rename
	Content  *string                 `json:"content,omitempty"` // ignored for folders
	ParentID httputil.OptionalString `json:"parentId"`          // move (null for root)
}

// FileService handles file tree business logic
type FileService interface {
	// CreateFile creates a file or folder
	CreateFile(ctx context.Context, req *CreateFileRequest) (*playground.FileNode, error)

	// GetFile retrieves a single node
	GetFile(ctx context.Context, userID, id string) (*playground.FileNode, error)

	// ListProjectFiles lists every node of a project, folders first then by name
	ListProjectFiles(ctx context.Context, userID, projectID string) ([]playground.FileNode, error)

	// ListFolderContents lists the direct children of a folder
	ListFolderContents(ctx context.Context, userID, folderID string) ([]playground.FileNode, error)

	// UpdateFile renames, moves or rewrites a node
	UpdateFile(ctx context.Context, userID, id string, req *UpdateFileRequest) (*playground.FileNode, error)

	// DeleteFile deletes a node; folders are deleted with their whole subtree.
	// Returns the deleted node.
	DeleteFile(ctx context.Context, userID, id string) (*playground.FileNode, error)
}
