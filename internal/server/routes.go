package server

import "github.com/go-chi/chi/v5"

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Group(func(r chi.Router) {
		r.Use(s.basicAuth)

		r.Handle("/metrics", s.metrics.handler())

		r.Route("/api", func(r chi.Router) {
			r.Get("/tags", s.handleTags)
			r.Get("/export", s.handleExport)
			r.Post("/import", s.handleImport)

			r.Route("/prompts", func(r chi.Router) {
				r.Get("/", s.handleListPrompts)
				r.Post("/", s.handleCreatePrompt)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", s.handleGetPrompt)
					r.Put("/", s.handleUpdatePrompt)
					r.Delete("/", s.handleDeletePrompt)
					r.Post("/favorite", s.handleToggleFavorite)
					r.Post("/duplicate", s.handleDuplicatePrompt)
					r.Get("/copy", s.handleCopyText)
				})
			})
		})
	})
}
