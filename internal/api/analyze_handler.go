// File path: internal/api/analyze_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"wreslscan/internal/common"
	"wreslscan/internal/corpus"
	"wreslscan/internal/report"
	"wreslscan/internal/resolver"
)

type analyzeResponse struct {
	Result *resolver.Result `json:"result"`
	Report string           `json:"report,omitempty"`
	RunID  int64            `json:"run_id,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	variable := r.URL.Query().Get("var")
	if variable == "" {
		logger.Warn("api: analyze missing var parameter")
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing var parameter"))
		return
	}
	study := r.URL.Query().Get("study")
	if study == "" {
		study = s.study
	}
	if study == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing study parameter"))
		return
	}
	persist := false
	if v := r.URL.Query().Get("persist"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			persist = parsed
		}
	}
	logger.Info("api: analyze request", "study", study, "variable", variable, "persist", persist)

	c, err := corpus.Load(study)
	if err != nil {
		if errors.Is(err, corpus.ErrStudyNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		logger.Error("api: study load failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	result, err := resolver.Analyze(r.Context(), c, variable)
	if err != nil {
		logger.Error("api: analysis failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !result.Found() {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"result":  result,
			"message": report.NotFound(study, result.Variable),
		})
		return
	}
	resp := analyzeResponse{
		Result: result,
		Report: report.Render(study, result),
	}
	if persist {
		if s.catalog == nil {
			writeError(w, http.StatusServiceUnavailable, fmt.Errorf("catalog not configured"))
			return
		}
		runID, err := s.catalog.SaveResult(r.Context(), study, result)
		if err != nil {
			logger.Error("api: persist failed", "error", err)
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.RunID = runID
	}
	writeJSON(w, http.StatusOK, resp)
}
