package web

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/crete-bi/account-linkage/internal/config"
	"github.com/crete-bi/account-linkage/internal/web/handlers"
	"github.com/crete-bi/account-linkage/internal/web/middleware"
)

// Server is the read-only review server over persisted match results.
type Server struct {
	cfg        config.WebConfig
	db         *sql.DB
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a review server over an open database connection.
func NewServer(cfg config.WebConfig, db *sql.DB) *Server {
	s := &Server{cfg: cfg, db: db}
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	resultsHandler := &handlers.ResultsHandler{DB: s.db}
	statsHandler := &handlers.StatsHandler{DB: s.db}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/results", resultsHandler.ListResults).Methods("GET")
	api.HandleFunc("/customers/{id}/candidates", resultsHandler.GetCandidates).Methods("GET")
	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting review server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	fmt.Println("Server stopped")
	return nil
}
