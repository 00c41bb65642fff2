package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/ppiankov/truthlens/internal/model"
	"github.com/ppiankov/truthlens/internal/store"
	"github.com/ppiankov/truthlens/internal/validate"
)

const maxBodyBytes = 1 << 20

type analyzeResponse struct {
	Success    bool                  `json:"success"`
	AnalysisID string                `json:"analysisId"`
	Message    string                `json:"message"`
	Result     *model.AnalysisResult `json:"result"`
}

type resultResponse struct {
	Success bool                  `json:"success"`
	Result  *model.AnalysisResult `json:"result"`
}

type healthResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Success bool                      `json:"success"`
	Message string                    `json:"message"`
	Errors  validate.ValidationErrors `json:"errors,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Success:   true,
		Message:   "TruthLens API is running",
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	var in model.AnalysisInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Message: "Invalid input",
			Errors:  validate.ValidationErrors{{Field: "body", Message: "Malformed JSON body"}},
		})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), in)
	if err != nil {
		var verrs validate.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Invalid input", Errors: verrs})
		case errors.Is(err, context.Canceled):
			logger.Debug().Msg("client went away during analysis")
		default:
			logger.Error().Err(err).Msg("analysis failed")
			writeError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:    true,
		AnalysisID: result.ID,
		Message:    "Analysis completed successfully",
		Result:     result,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	result, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Success: true, Result: result})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, ok := s.lookup(w, r)
	if !ok {
		return
	}

	body, err := s.renderer.HTML(result)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("id", result.ID).Msg("render report failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// lookup resolves {id} and writes the error response when it fails
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*model.AnalysisResult, bool) {
	id := mux.Vars(r)["id"]

	result, err := s.analyzer.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Analysis result not found")
			return nil, false
		}
		zerolog.Ctx(r.Context()).Error().Err(err).Str("id", id).Msg("load analysis failed")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return nil, false
	}
	return result, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Message: message})
}
