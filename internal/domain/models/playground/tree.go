package playground

// TreeNode is a file or folder with its nested children and absolute path
type TreeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     NodeType    `json:"type"`
	Path     string      `json:"path"`
	ParentID *string     `json:"parentId"`
	Language string      `json:"language,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// SandboxFile is the shape the preview sandbox expects for each file
type SandboxFile struct {
	Code string `json:"code"`
}

// ProjectTree is the projected view of a project's flat node list
type ProjectTree struct {
	Tree  []*TreeNode            `json:"tree"`
	Files map[string]SandboxFile `json:"files"`
}
