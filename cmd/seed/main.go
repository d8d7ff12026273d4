package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"cipherstudio/internal/config"
	models "cipherstudio/internal/domain/models/playground"
	playgroundSvc "cipherstudio/internal/domain/services/playground"
	"cipherstudio/internal/repository"
	authSvc "cipherstudio/internal/service/auth"
	"cipherstudio/internal/service/playground"
	"cipherstudio/internal/templates"

	"github.com/joho/godotenv"
)

// seedNode describes one node of the demo tree; parent is the name of a
// folder created earlier in the list, empty for the root
type seedNode struct {
	parent  string
	name    string
	typ     models.NodeType
	content string
}

var demoTree = []seedNode{
	{name: "components", typ: models.NodeTypeFolder},
	{parent: "components", name: "Counter.jsx", typ: models.NodeTypeFile, content: `import { useState } from "react";

export default function Counter() {
  const [count, setCount] = useState(0);
  return <button onClick={() => setCount(count + 1)}>Clicked {count} times</button>;
}`},
	{name: "styles.css", typ: models.NodeTypeFile, content: `body {
  font-family: sans-serif;
}`},
	{name: "README.md", typ: models.NodeTypeFile, content: "# Demo App\n\nSeeded by cmd/seed.\n"},
}

func main() {
	// Parse command-line flags
	userID := flag.String("user", "demo-user", "Identity that will own the demo project")
	name := flag.String("name", "Demo App", "Demo project name")
	reset := flag.Bool("reset", false, "Wipe all stored data before seeding (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *reset {
		log.Fatalf("BLOCKED: Cannot run --reset in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log.Printf("Seeding %s storage (environment: %s)", cfg.StorageDriver, cfg.Environment)

	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer store.Close()

	if *reset {
		log.Println("Wiping existing data...")
		if err := store.Reset(ctx); err != nil {
			log.Fatalf("Failed to reset storage: %v", err)
		}
	}

	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	guard := authSvc.NewOwnerGuard(store.Projects, store.Files)
	projectService := playground.NewProjectService(store.Projects, store.Files, store.TxManager, guard, registry, logger)
	fileService := playground.NewFileService(store.Files, store.TxManager, guard, logger)

	project, err := projectService.CreateProject(ctx, &playgroundSvc.CreateProjectRequest{
		UserID: *userID,
		Name:   *name,
	})
	if err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}
	log.Printf("Created project %q (ID: %s, slug: %s)", project.Name, project.ID, project.Slug)

	folders := make(map[string]string)
	for i, n := range demoTree {
		req := &playgroundSvc.CreateFileRequest{
			UserID:    *userID,
			ProjectID: project.ID,
			Name:      n.name,
			Type:      n.typ,
		}
		if n.parent != "" {
			parentID := folders[n.parent]
			req.ParentID = &parentID
		}
		if n.typ == models.NodeTypeFile {
			content := n.content
			req.Content = &content
		}

		node, err := fileService.CreateFile(ctx, req)
		if err != nil {
			log.Printf("Failed to create %s: %v", n.name, err)
			continue
		}
		if node.Type == models.NodeTypeFolder {
			folders[node.Name] = node.ID
		}

		log.Printf("Created %s %d/%d: %s (ID: %s)", node.Type, i+1, len(demoTree), node.Name, node.ID)
	}

	log.Println("Seeding complete!")
}
