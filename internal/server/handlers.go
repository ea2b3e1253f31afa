package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/mentorque/skillmatch/internal/compare"
	"github.com/mentorque/skillmatch/internal/fetch"
)

// CompareRequest represents the request body for /v1/compare. Exactly one of
// job_description_text or job_url must be provided.
type CompareRequest struct {
	JobDescriptionText string   `json:"job_description_text,omitempty"`
	JobURL             string   `json:"job_url,omitempty"`
	UserSkills         []string `json:"user_skills,omitempty"`
	IncludeTrace       bool     `json:"include_trace,omitempty"`
}

// HealthResponse represents the response for /health.
type HealthResponse struct {
	Status string `json:"status"`
	Engine string `json:"engine"`
	Detail string `json:"detail,omitempty"`
}

// handleCompare runs one comparison.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.JobDescriptionText != "" && req.JobURL != "" {
		s.errorResponse(w, http.StatusBadRequest, "job_description_text and job_url are mutually exclusive")
		return
	}

	text := req.JobDescriptionText
	if text == "" && req.JobURL != "" {
		fetched, err := fetch.JobPosting(r.Context(), req.JobURL, s.useBrowser)
		if err != nil {
			s.log.Warn("job posting fetch failed", zap.String("url", req.JobURL), zap.Error(err))
			s.errorResponse(w, http.StatusBadGateway, err.Error())
			return
		}
		text = fetched
	}

	report, err := s.compare.Compare(r.Context(), &compare.Request{
		JobDescriptionText: text,
		UserSkills:         req.UserSkills,
		IncludeTrace:       req.IncludeTrace,
	})
	if err != nil {
		s.errorResponse(w, httpStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report)
}

// handleHistory returns recent comparison records.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "history is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errorResponse(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(parsed, 100)
	}

	records, err := s.history.ListRecent(r.Context(), limit)
	if err != nil {
		s.log.Error("listing history", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to list history")
		return
	}

	s.jsonResponse(w, http.StatusOK, records)
}

// handleHealth reports service and engine health. The engine probe goes
// through the supervisor cache, so polling this endpoint stays cheap.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.supervisor.Status(r.Context()); err != nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "degraded",
			Engine: "unavailable",
			Detail: err.Error(),
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, HealthResponse{Status: "ok", Engine: "healthy"})
}
