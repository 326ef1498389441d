// File path: internal/api/runs_handler.go
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	chi "github.com/go-chi/chi/v5"

	"wreslscan/internal/common"
)

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("catalog not configured"))
		return
	}
	runs, err := s.catalog.ListRuns(r.Context(), r.URL.Query().Get("var"))
	if err != nil {
		common.Logger().Error("api: list runs failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"runs": runs})
}

func (s *Server) handleFindings(w http.ResponseWriter, r *http.Request) {
	if s.catalog == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Errorf("catalog not configured"))
		return
	}
	runID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid run id"))
		return
	}
	var categories []string
	if v := strings.TrimSpace(r.URL.Query().Get("category")); v != "" {
		for _, cat := range strings.Split(v, ",") {
			if cat = strings.TrimSpace(cat); cat != "" {
				categories = append(categories, cat)
			}
		}
	}
	findings, err := s.catalog.FindingsForRun(r.Context(), runID, categories...)
	if err != nil {
		common.Logger().Error("api: list findings failed", "run", runID, "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"findings": findings})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": common.LogEntries()})
}
