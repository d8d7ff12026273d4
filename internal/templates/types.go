package templates

// StarterFile is a file seeded at the root of every new project
type StarterFile struct {
	Name     string `yaml:"name" json:"name"`
	Language string `yaml:"language" json:"language"`
	Content  string `yaml:"content" json:"content"`
}

// Template holds the starter files for one framework
type Template struct {
	Framework   string        `yaml:"framework" json:"framework"`
	DisplayName string        `yaml:"display_name" json:"display_name"`
	Files       []StarterFile `yaml:"files" json:"files"`
}
