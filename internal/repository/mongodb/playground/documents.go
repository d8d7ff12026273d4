package playground

import (
	"time"

	models "cipherstudio/internal/domain/models/playground"
)

type settingsDocument struct {
	Framework string `bson:"framework"`
	AutoSave  bool   `bson:"autoSave"`
}

type projectDocument struct {
	ID           string           `bson:"_id"`
	Slug         string           `bson:"projectSlug"`
	UserID       *string          `bson:"userId"`
	Name         string           `bson:"name"`
	Description  string           `bson:"description"`
	RootFolderID *string          `bson:"rootFolderId"`
	Settings     settingsDocument `bson:"settings"`
	CreatedAt    time.Time        `bson:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt"`
}

func toProjectDocument(p *models.Project) projectDocument {
	return projectDocument{
		ID:           p.ID,
		Slug:         p.Slug,
		UserID:       p.Owner.Ptr(),
		Name:         p.Name,
		Description:  p.Description,
		RootFolderID: p.RootFolderID,
		Settings: settingsDocument{
			Framework: p.Settings.Framework,
			AutoSave:  p.Settings.AutoSave,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d *projectDocument) toModel() *models.Project {
	return &models.Project{
		ID:           d.ID,
		Slug:         d.Slug,
		Owner:        models.OwnerFromPtr(d.UserID),
		Name:         d.Name,
		Description:  d.Description,
		RootFolderID: d.RootFolderID,
		Settings: models.ProjectSettings{
			Framework: d.Settings.Framework,
			AutoSave:  d.Settings.AutoSave,
		},
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// fileDocument keeps parentId even when nil so the sibling index sees root nodes
type fileDocument struct {
	ID          string    `bson:"_id"`
	ProjectID   string    `bson:"projectId"`
	ParentID    *string   `bson:"parentId"`
	Name        string    `bson:"name"`
	Type        string    `bson:"type"`
	S3Key       *string   `bson:"s3Key"`
	Content     string    `bson:"content"`
	Language    string    `bson:"language"`
	SizeInBytes int64     `bson:"sizeInBytes"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func toFileDocument(n *models.FileNode) fileDocument {
	return fileDocument{
		ID:          n.ID,
		ProjectID:   n.ProjectID,
		ParentID:    n.ParentID,
		Name:        n.Name,
		Type:        string(n.Type),
		S3Key:       n.S3Key,
		Content:     n.Content,
		Language:    n.Language,
		SizeInBytes: n.SizeInBytes,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func (d *fileDocument) toModel() models.FileNode {
	return models.FileNode{
		ID:          d.ID,
		ProjectID:   d.ProjectID,
		ParentID:    d.ParentID,
		Name:        d.Name,
		Type:        models.NodeType(d.Type),
		S3Key:       d.S3Key,
		Content:     d.Content,
		Language:    d.Language,
		SizeInBytes: d.SizeInBytes,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
