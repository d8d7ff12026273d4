package playground

import (
	"sort"
	"time"
)

// NodeType distinguishes files from folders
type NodeType string

const (
	NodeTypeFile   NodeType = "file"
	NodeTypeFolder NodeType = "folder"
)

// Valid reports whether t is a known node type
func (t NodeType) Valid() bool {
	return t == NodeTypeFile || t == NodeTypeFolder
}

type FileNode struct {
	ID          string    `json:"id" db:"id"`
	ProjectID   string    `json:"projectId" db:"project_id"`
	ParentID    *string   `json:"parentId" db:"parent_id"` // NULL = project root
	Name        string    `json:"name" db:"name"`
	Type        NodeType  `json:"type" db:"type"`
	S3Key       *string   `json:"s3Key" db:"s3_key"` // Reserved for blob storage, never populated
	Content     string    `json:"content" db:"content"`
	Language    string    `json:"language" db:"language"`
	SizeInBytes int64     `json:"sizeInBytes" db:"size_in_bytes"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// IsFolder reports whether the node is a folder
func (n *FileNode) IsFolder() bool {
	return n.Type == NodeTypeFolder
}

// SetContent replaces the content of a file and recomputes its byte size.
// Folders never carry content.
func (n *FileNode) SetContent(content string) {
	if n.IsFolder() {
		return
	}
	n.Content = content
	n.SizeInBytes = int64(len(content))
}

// IsRoot reports whether the node sits at the project root
func (n *FileNode) IsRoot() bool {
	return n.ParentID == nil
}

// NodeLess orders folders before files, then by name (byte order).
// This matches the store-side sort {type: -1, name: 1}.
func NodeLess(a, b *FileNode) bool {
	if a.Type != b.Type {
		return a.Type > b.Type
	}
	return a.Name < b.Name
}

// SortNodes sorts nodes in listing order
func SortNodes(nodes []FileNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return NodeLess(&nodes[i], &nodes[j])
	})
}

// SameParent reports whether two nullable parent references are equal
func SameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
