package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "shift-scheduler/errors"
	"shift-scheduler/metrics"
	"shift-scheduler/models"
	"shift-scheduler/parser"
	"shift-scheduler/store"
)

// scheduleResponse is the output contract plus the stored id.
type scheduleResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	*models.GenerationResult
}

// errorBody is the envelope of every non-2xx response.
type errorBody struct {
	Success bool      `json:"success"`
	Error   errorInfo `json:"error"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) generate(w http.ResponseWriter, r *http.Request) {
	req, err := parser.ParseRequest(r.Body, parser.FormatJSON)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "INVALID_JSON", err.Error(), "")
		return
	}

	res, err := s.engine.Generate(req)
	if err != nil {
		var (
			verr  *apperrors.InputValidationError
			fault *apperrors.InternalFaultError
		)
		switch {
		case errors.As(err, &verr):
			s.writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", verr.Error(), verr.Field)
		case errors.As(err, &fault):
			metrics.InternalFaultsTotal.Inc()
			s.log.Errorf("internal fault team=%s week=%d/%d: %v", req.TeamID, req.WeekNumber, req.Year, fault)
			s.writeError(w, r, http.StatusInternalServerError, "INTERNAL_FAULT", "schedule generation failed an internal consistency check", "")
		default:
			s.internalServerError(w, r, err)
		}
		return
	}
	metrics.ObserveResult(res)

	rec := store.Record{ID: s.newID(), CreatedAt: time.Now().UTC(), Result: res}
	if err := s.store.Save(r.Context(), rec); err != nil {
		s.internalServerError(w, r, err)
		return
	}

	s.log.Debugw("schedule generated", map[string]any{
		"id":          rec.ID,
		"team":        res.TeamID,
		"feasible":    res.Feasible,
		"violations":  len(res.Violations),
		"candidates":  res.Diagnostics.CandidatesEvaluated,
		"variant":     res.Diagnostics.Variant,
		"elapsed_ms":  res.ExecutionTimeMs,
		"budget_hit":  res.Diagnostics.BudgetExhausted,
		"total_hours": res.Stats.TotalHours,
	})
	s.writeJSON(w, r, http.StatusOK, scheduleResponse{ID: rec.ID, CreatedAt: rec.CreatedAt, GenerationResult: res})
}

func (s *Server) getSchedule(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	s.writeRecord(w, r, rec, err)
}

func (s *Server) latestSchedule(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "year must be an integer", "year")
		return
	}
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "week must be an integer", "week")
		return
	}
	rec, err := s.store.Latest(r.Context(), chi.URLParam(r, "teamId"), year, week)
	s.writeRecord(w, r, rec, err)
}

func (s *Server) writeRecord(w http.ResponseWriter, r *http.Request, rec store.Record, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, "NOT_FOUND", err.Error(), "")
	case err != nil:
		s.internalServerError(w, r, err)
	default:
		s.writeJSON(w, r, http.StatusOK, scheduleResponse{ID: rec.ID, CreatedAt: rec.CreatedAt, GenerationResult: rec.Result})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Errorf("encode response %s %s: %v", r.Method, r.URL.Path, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code, msg, field string) {
	s.writeJSON(w, r, status, errorBody{Error: errorInfo{Code: code, Message: msg, Field: field}})
}

func (s *Server) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.Errorf("internal error %s %s: %v", r.Method, r.URL.Path, err)
	s.writeError(w, r, http.StatusInternalServerError, "INTERNAL", "internal server error", "")
}
