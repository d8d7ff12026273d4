package playground

import (
	"time"
)

const (
	DefaultFramework = "react"
	DefaultAutoSave  = true
)

type ProjectSettings struct {
	Framework string `json:"framework" db:"framework"`
	AutoSave  bool   `json:"autoSave" db:"auto_save"`
}

// DefaultSettings returns the settings applied to new projects
func DefaultSettings() ProjectSettings {
	return ProjectSettings{
		Framework: DefaultFramework,
		AutoSave:  DefaultAutoSave,
	}
}

type Project struct {
	ID           string          `json:"id" db:"id"`
	Slug         string          `json:"projectSlug" db:"project_slug"`
	Owner        Owner           `json:"userId" db:"user_id"` // null = unowned (public)
	Name         string          `json:"name" db:"name"`
	Description  string          `json:"description" db:"description"`
	RootFolderID *string         `json:"rootFolderId" db:"root_folder_id"` // Reserved, never populated
	Settings     ProjectSettings `json:"settings"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}
