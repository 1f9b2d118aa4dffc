package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/clearledger/recon-backend/internal/api/handlers"
	"github.com/clearledger/recon-backend/internal/api/middleware"
	"github.com/clearledger/recon-backend/internal/application/service"
	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server the dashboard talks to.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	svc        *service.MutationService
}

// NewServer creates a new API server.
func NewServer(cfg Config, svc *service.MutationService, repo storage.Repository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		router: chi.NewRouter(),
		logger: logger,
		repo:   repo,
		svc:    svc,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	s.router.Route("/api", func(r chi.Router) {
		// Transactions
		txnHandler := handlers.NewTransactionsHandler(s.svc)
		r.Get("/transactions", txnHandler.List)
		r.Post("/transactions", txnHandler.Create)
		r.Put("/transactions/{id}", txnHandler.Update)
		r.Delete("/transactions/{id}", txnHandler.Delete)
		r.Get("/transactions/{id}/balance", txnHandler.Balance)
		r.Get("/transactions/{id}/similar", txnHandler.Similar)

		// Matching mutations
		matchingHandler := handlers.NewMatchingHandler(s.svc)
		r.Post("/transactions/{id}/adjustment", matchingHandler.Adjustment)
		r.Post("/transactions/{id}/unlink", matchingHandler.Unlink)
		r.Post("/transactions/{id}/matches", matchingHandler.AddMatch)
		r.Delete("/transactions/{id}/matches/{docID}", matchingHandler.RemoveMatch)

		// Reconciliation views
		reconHandler := handlers.NewReconciliationHandler(s.svc, s.repo)
		r.Get("/statements/{id}/reconciliation", reconHandler.Get)
		r.Get("/statements/{id}/snapshots", reconHandler.Snapshots)

		// Liabilities pass-through
		liabilitiesHandler := handlers.NewLiabilitiesHandler(s.svc)
		r.Get("/liabilities", liabilitiesHandler.Get)

		// Mutation journal
		auditHandler := handlers.NewAuditHandler(s.repo)
		r.Get("/mutations", auditHandler.List)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
