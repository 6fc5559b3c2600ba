package handlers

import (
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
)

type PageHandler struct {
	logger    arbor.ILogger
	templates *template.Template
}

func NewPageHandler(logger arbor.ILogger) *PageHandler {
	pagesDir := findPagesDir()

	templates := template.Must(template.ParseGlob(filepath.Join(pagesDir, "*.html")))

	return &PageHandler{
		logger:    logger,
		templates: templates,
	}
}

// findPagesDir locates the pages directory
func findPagesDir() string {
	dirs := []string{
		"./pages",  // Running from project root
		"../pages", // Running from bin/
		".",        // Current directory (for deployed bin/)
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); err == nil {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

// ServePage creates a handler function for serving a specific page template
func (h *PageHandler) ServePage(templateName string, pageName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"Page": pageName,
		}

		if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
			h.logger.Error().
				Err(err).
				Str("template", templateName).
				Msg("Failed to render page")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
	}
}

// StaticFileHandler serves static files (CSS, JS, images)
func (h *PageHandler) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	pagesDir := findPagesDir()
	staticDir := filepath.Join(pagesDir, "static")

	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	// Keep traversal inside the static directory
	if rel, err := filepath.Rel(staticDir, fullPath); err != nil || rel == ".." || filepath.IsAbs(rel) || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, fullPath)
}
