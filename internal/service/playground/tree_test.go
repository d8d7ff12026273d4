package playground

import (
	"context"
	"testing"

	"cipherstudio/internal/domain"
	models "cipherstudio/internal/domain/models/playground"
	"cipherstudio/internal/templates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(id string, parent *string, name string, typ models.NodeType, content string) models.FileNode {
	return models.FileNode{ID: id, ParentID: parent, Name: name, Type: typ, Content: content}
}

func TestBuildPaths(t *testing.T) {
	nodes := []models.FileNode{
		node("src", nil, "src", models.NodeTypeFolder, ""),
		node("lib", ptr("src"), "lib", models.NodeTypeFolder, ""),
		node("util", ptr("lib"), "util.js", models.NodeTypeFile, ""),
		node("app", nil, "App.js", models.NodeTypeFile, ""),
		node("orphan", ptr("missing"), "lost.js", models.NodeTypeFile, ""),
		node("x", ptr("y"), "x", models.NodeTypeFolder, ""),
		node("y", ptr("x"), "y", models.NodeTypeFolder, ""),
	}

	paths := BuildPaths(nodes)

	assert.Equal(t, "/src", paths["src"])
	assert.Equal(t, "/src/lib", paths["lib"])
	assert.Equal(t, "/src/lib/util.js", paths["util"])
	assert.Equal(t, "/App.js", paths["app"])
	assert.Equal(t, "/lost.js", paths["orphan"])
	assert.Equal(t, "/y/x", paths["x"])
	assert.Equal(t, "/x/y", paths["y"])
}

func TestBuildTree(t *testing.T) {
	nodes := []models.FileNode{
		node("src", nil, "src", models.NodeTypeFolder, ""),
		node("app", nil, "App.js", models.NodeTypeFile, ""),
		node("util", ptr("src"), "util.js", models.NodeTypeFile, ""),
		node("orphan", ptr("missing"), "lost.js", models.NodeTypeFile, ""),
		node("x", ptr("y"), "x", models.NodeTypeFolder, ""),
		node("y", ptr("x"), "y", models.NodeTypeFolder, ""),
	}

	tree := BuildTree(nodes)
	require.Len(t, tree, 5)

	assert.Equal(t, "src", tree[0].Name)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "/src/util.js", tree[0].Children[0].Path)

	assert.Equal(t, "App.js", tree[1].Name)
	assert.Equal(t, "lost.js", tree[2].Name)

	// Nodes caught in a cycle surface at the root instead of nesting forever
	assert.Equal(t, "x", tree[3].Name)
	assert.Empty(t, tree[3].Children)
	assert.Equal(t, "y", tree[4].Name)
	assert.Empty(t, tree[4].Children)
}

func TestSandboxFiles(t *testing.T) {
	fallback := []templates.StarterFile{{Name: "App.js", Content: "app"}, {Name: "index.js", Content: "index"}}

	nodes := []models.FileNode{
		node("src", nil, "src", models.NodeTypeFolder, ""),
		node("util", ptr("src"), "util.js", models.NodeTypeFile, "export {}"),
	}
	files := SandboxFiles(nodes, fallback)
	assert.Equal(t, map[string]models.SandboxFile{"/src/util.js": {Code: "export {}"}}, files)

	onlyFolders := []models.FileNode{node("src", nil, "src", models.NodeTypeFolder, "")}
	files = SandboxFiles(onlyFolders, fallback)
	assert.Equal(t, map[string]models.SandboxFile{
		"/App.js":   {Code: "app"},
		"/index.js": {Code: "index"},
	}, files)
}

func TestGetProjectTree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createProject(t, alice, "demo")
	src := env.createNode(t, alice, p.ID, nil, "src", models.NodeTypeFolder)
	env.createNode(t, alice, p.ID, &src.ID, "util.js", models.NodeTypeFile)

	tree, err := env.trees.GetProjectTree(ctx, alice, p.ID)
	require.NoError(t, err)

	require.Len(t, tree.Tree, 3)
	assert.Equal(t, "/src", tree.Tree[0].Path)
	require.Len(t, tree.Tree[0].Children, 1)
	assert.Equal(t, "/src/util.js", tree.Tree[0].Children[0].Path)

	assert.Contains(t, tree.Files, "/App.js")
	assert.Contains(t, tree.Files, "/index.js")
	assert.Contains(t, tree.Files, "/src/util.js")

	_, err = env.trees.GetProjectTree(ctx, bob, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
