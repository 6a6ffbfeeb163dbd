package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/studyme-ai/studyme/internal/api/handlers"
	appMiddleware "github.com/studyme-ai/studyme/internal/api/middlewares"
	"github.com/studyme-ai/studyme/internal/config"
	"github.com/studyme-ai/studyme/internal/core"
	"github.com/studyme-ai/studyme/internal/ratelimit"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
}

// NewServer builds and wires all routes. The rate limiter runs before every
// handler, so an over-limit client gets its 429 without any pipeline work.
func NewServer(
	cfg *config.Config,
	log *zap.Logger,
	limiter *ratelimit.Limiter,
	processor core.DocumentProcessor,
	summarizer core.Summarizer,
	explainer core.Explainer,
	flashcards core.FlashcardGenerator,
	extractor core.DocumentExtractor,
) *Server {
	docHandler := handlers.NewDocumentHandler(processor)
	textHandler := handlers.NewTextHandler(summarizer, explainer, flashcards, extractor)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appMiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Use(appMiddleware.RateLimit(limiter))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "StudyMe API running"}`))
	})

	r.Route("/api", func(api chi.Router) {
		api.Post("/documents/process", docHandler.ProcessDocument)

		api.Post("/parse-pdf", textHandler.ParsePDF)
		api.Post("/parse-docx", textHandler.ParseDocx)
		api.Post("/parse-pptx", textHandler.ParsePptx)

		api.Post("/summarize", textHandler.Summarize)
		api.Post("/explain", textHandler.Explain)
		api.Post("/flashcards", textHandler.Flashcards)
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv, log: log}
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
