package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"deepread-backend/internal/handlers"
	"deepread-backend/internal/middleware"
)

func New(
	pdfHandler *handlers.PDFHandler,
	llmHandler *handlers.LLMHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Outbound completion calls are slow and metered; cap how fast a single
	// client can queue them.
	llmLimiter := middleware.NewRateLimiter(30, time.Minute)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to DeepRead AI Backend!"}`))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/pdf", func(r chi.Router) {
			r.Post("/extract-text", pdfHandler.ExtractText)

			r.Group(func(r chi.Router) {
				r.Use(llmLimiter.Middleware)
				r.Post("/generate_mindmap", llmHandler.GenerateMindmap)
			})
		})

		r.Route("/llm", func(r chi.Router) {
			r.Use(llmLimiter.Middleware)
			r.Post("/summarize", llmHandler.Summarize)
			r.Post("/chat_with_context", llmHandler.ChatWithContext)
			r.Post("/chat_with_context/stream", llmHandler.ChatWithContextStream)
		})
	})

	return r
}
