package server

import (
	"log/slog"
	"net/http"
	"strings"

	"cipherstudio/internal/auth"
	"cipherstudio/internal/handler"
	"cipherstudio/internal/middleware"

	"github.com/rs/cors"
)

// Dependencies are the pieces the router wires together
type Dependencies struct {
	Projects    *handler.ProjectHandler
	Files       *handler.FileHandler
	Verifier    auth.JWTVerifier
	RateLimiter *middleware.RateLimiter
	CORSOrigins string
	Logger      *slog.Logger
}

// NewRouter registers every route and wraps the mux in the middleware chain
func NewRouter(deps Dependencies) http.Handler {
	// Go 1.22+ enhanced patterns
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)

	// Project routes
	mux.HandleFunc("POST /api/projects", deps.Projects.CreateProject)
	mux.HandleFunc("GET /api/projects/user/{userId}", deps.Projects.ListProjects)
	mux.HandleFunc("GET /api/projects/{id}", deps.Projects.GetProject)
	mux.HandleFunc("PUT /api/projects/{id}", deps.Projects.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", deps.Projects.DeleteProject)

	// File routes
	mux.HandleFunc("POST /api/files", deps.Files.CreateFile)
	mux.HandleFunc("GET /api/files/project/{projectId}", deps.Files.ListProjectFiles)
	mux.HandleFunc("GET /api/files/project/{projectId}/tree", deps.Files.GetProjectTree)
	mux.HandleFunc("GET /api/files/folder/{folderId}", deps.Files.ListFolderContents)
	mux.HandleFunc("GET /api/files/{id}", deps.Files.GetFile)
	mux.HandleFunc("PUT /api/files/{id}", deps.Files.UpdateFile)
	mux.HandleFunc("DELETE /api/files/{id}", deps.Files.DeleteFile)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Auth → RateLimit → Routes
	var h http.Handler = mux
	if deps.RateLimiter != nil {
		h = middleware.RateLimit(deps.RateLimiter, deps.Logger)(h)
	}
	h = middleware.Auth(deps.Verifier, deps.Logger)(h)
	h = middleware.Recovery(deps.Logger)(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   splitOrigins(deps.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	return corsHandler.Handler(h)
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
