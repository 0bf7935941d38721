// Package api provides HTTP API capabilities for the statement parser.
// This is a capability module that can be enabled via the CLI or used programmatically.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/maplebudget/mapleparse/parser"
	"github.com/maplebudget/mapleparse/parser/common"
	"github.com/maplebudget/mapleparse/parser/reconcile"
)

// Config holds the API server configuration
type Config struct {
	Port      string
	LogPrefix string
}

// DefaultConfig returns the default API configuration
func DefaultConfig() Config {
	return Config{
		Port:      ":8080",
		LogPrefix: "API: ",
	}
}

// Server represents the HTTP API server
type Server struct {
	config Config
	engine *parser.Engine
	mux    *http.ServeMux
}

// New creates a new API server. A nil store disables duplicate detection;
// every parsed transaction is then reported as new.
func New(cfg Config, store reconcile.Store) *Server {
	s := &Server{
		config: cfg,
		engine: parser.New(store),
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// registerRoutes sets up the API endpoints
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/parse", s.handleParse)
	s.mux.HandleFunc("/health", s.handleHealth)
}

// Handler returns the http.Handler for the server
// This allows the server to be used with custom http.Server configurations
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the HTTP server (blocking)
func (s *Server) Start() error {
	log.Printf("%sStarting server on %s", s.config.LogPrefix, s.config.Port)
	return http.ListenAndServe(s.config.Port, s.mux)
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleParse handles statement parsing requests
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	log.Printf("%sReceived request from %s", s.config.LogPrefix, r.RemoteAddr)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Parse multipart form with 32MB max memory
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("%sError parsing multipart form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not parse multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Printf("%sError getting file from form: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not get uploaded file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("%sError reading file bytes: %v", s.config.LogPrefix, err)
		http.Error(w, "Could not read file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	userID := coalesce(r.FormValue("user_id"), r.URL.Query().Get("user_id"))

	result, err := s.engine.ParseBankStatement(r.Context(), fileBytes, userID, handler.Filename)
	if err != nil {
		var extractionErr *common.ExtractionError
		if errors.As(err, &extractionErr) {
			// Scanned or otherwise unreadable PDFs are a client problem, not a
			// server failure.
			log.Printf("%sExtraction failed for %s: %v", s.config.LogPrefix, handler.Filename, err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Printf("%sError parsing %s: %v", s.config.LogPrefix, handler.Filename, err)
		http.Error(w, "Could not parse statement: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// coalesce returns the first non-empty string
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
