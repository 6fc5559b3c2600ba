package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// UI page routes (HTML templates)
	mux.HandleFunc("/", s.app.PageHandler.ServePage("index.html", "home"))

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", s.app.PageHandler.StaticFileHandler)

	// API routes - Research
	mux.HandleFunc("/api/research", s.app.ResearchHandler.DeepDiveHandler) // POST - run deep dive

	// API routes - Market views
	mux.HandleFunc("/api/trending", s.app.MarketsHandler.TrendingHandler) // GET ?filter=general|volume|price
	mux.HandleFunc("/api/calendar", s.app.MarketsHandler.CalendarHandler) // GET - weekly earnings calendar

	// API routes - Watchlist
	mux.HandleFunc("/api/watchlist", s.app.WatchlistHandler.Handle) // GET (list), POST (toggle)

	// API routes - Report history
	mux.HandleFunc("/api/reports", s.app.ReportsHandler.ListHandler)  // GET ?ticker= or ?limit=
	mux.HandleFunc("/api/reports/", s.app.ReportsHandler.ItemHandler) // GET/DELETE /{id}

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
