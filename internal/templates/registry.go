package templates

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// DefaultFramework is used when a project asks for an unknown framework
const DefaultFramework = "react"

// Registry holds the starter templates, keyed by framework
type Registry struct {
	templates map[string]*Template
	mu        sync.RWMutex
}

// NewRegistry creates a registry and loads the embedded YAML templates
func NewRegistry() (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template),
	}

	entries, err := configFiles.ReadDir("config")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		if err := r.loadTemplateFile("config/" + entry.Name()); err != nil {
			return nil, err
		}
	}

	if _, ok := r.templates[DefaultFramework]; !ok {
		return nil, fmt.Errorf("missing %s template", DefaultFramework)
	}

	return r, nil
}

// loadTemplateFile loads one framework's template YAML file
func (r *Registry) loadTemplateFile(filename string) error {
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	if tmpl.Framework == "" {
		return fmt.Errorf("%s: framework is required", filename)
	}

	r.mu.Lock()
	r.templates[strings.ToLower(tmpl.Framework)] = &tmpl
	r.mu.Unlock()

	return nil
}

// StarterFiles returns the files seeded for framework.
// Unknown frameworks get the default template.
func (r *Registry) StarterFiles(framework string) []StarterFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[strings.ToLower(strings.TrimSpace(framework))]
	if !ok {
		tmpl = r.templates[DefaultFramework]
	}

	files := make([]StarterFile, len(tmpl.Files))
	copy(files, tmpl.Files)
	return files
}

// Frameworks returns the names of all registered templates
func (r *Registry) Frameworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	frameworks := make([]string, 0, len(r.templates))
	for name := range r.templates {
		frameworks = append(frameworks, name)
	}
	return frameworks
}
