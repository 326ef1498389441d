// File path: internal/api/server.go
package api

import (
	"encoding/json"
	"net/http"
	"time"

	chi "github.com/go-chi/chi/v5"

	"wreslscan/internal/catalog"
	"wreslscan/internal/common"
)

// Server exposes variable dependency analysis over HTTP. The catalog is
// optional; when absent, persistence endpoints report the capability as
// unavailable but ad-hoc analysis still works.
type Server struct {
	router  chi.Router
	catalog *catalog.Store
	study   string
}

// NewServer builds the HTTP surface. study is the default study directory
// used when a request does not name one; catalog may be nil.
func NewServer(study string, store *catalog.Store) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		catalog: store,
		study:   study,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	logger := common.Logger()
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "dur", time.Since(start), "remote", r.RemoteAddr)
		})
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Get("/v1/analyze", s.handleAnalyze)
	s.router.Get("/v1/runs", s.handleRuns)
	s.router.Get("/v1/runs/{id}/findings", s.handleFindings)
	s.router.Get("/v1/logs", s.handleLogs)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
