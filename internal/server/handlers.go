package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/rationals"
	"github.com/agbru/ratcount/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func (s *Server) handleAlgorithms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"algorithms": s.factory.List(),
		"default":    DefaultAlgorithm,
	})
}

// handleCount serves GET /count?n=<bound>&algo=<counter>.
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, err := parseBound(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}
	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = DefaultAlgorithm
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	count, err := s.service.Count(ctx, algo, n)
	duration := time.Since(start)

	if status, msg, ok := s.classifyError(err); ok {
		s.writeErrorResponse(w, status, msg)
		return
	}

	resp := CountResponse{N: n, Duration: duration.String(), Algorithm: algo}
	status := http.StatusOK
	if err != nil {
		resp.Error = err.Error()
		status = http.StatusInternalServerError
		if apperrors.IsContextError(err) {
			status = http.StatusGatewayTimeout
		}
	} else {
		resp.Count = count
	}
	s.writeJSONResponse(w, status, resp)
}

// handleCompare serves GET /compare?n=<bound>, running every counter.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	n, err := parseBound(r)
	if err != nil {
		s.writeParamError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	outcomes, err := s.service.CountAll(ctx, n)
	if status, msg, ok := s.classifyError(err); ok {
		s.writeErrorResponse(w, status, msg)
		return
	}
	if apperrors.IsContextError(err) {
		s.writeErrorResponse(w, http.StatusGatewayTimeout, err.Error())
		return
	}
	if err != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	for _, o := range outcomes {
		if status, msg, ok := s.classifyError(o.Err); ok && status == http.StatusBadRequest {
			s.writeErrorResponse(w, status, msg)
			return
		}
	}

	resp := CompareResponse{N: n, Results: make([]CompareEntry, len(outcomes)), Consistent: service.Consistent(outcomes)}
	for i, o := range outcomes {
		entry := CompareEntry{Algorithm: o.Algorithm, Duration: o.Duration.String()}
		if o.Err != nil {
			entry.Error = o.Err.Error()
		} else {
			entry.Count = o.Count
		}
		resp.Results[i] = entry
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// classifyError maps client errors to an HTTP status. ok is false for nil
// and for server-side failures.
func (s *Server) classifyError(err error) (status int, message string, ok bool) {
	var unknown *rationals.UnknownCounterError
	switch {
	case err == nil:
		return 0, "", false
	case errors.Is(err, service.ErrMaxValueExceeded):
		return http.StatusBadRequest, fmt.Sprintf("Value of 'n' exceeds maximum allowed (%d).", s.maxN), true
	case errors.Is(err, rationals.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error(), true
	case errors.As(err, &unknown):
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}

// parseBound reads the required integer query parameter n. Negative values
// parse successfully and are rejected by the counters.
func parseBound(r *http.Request) (int64, error) {
	nStr := r.URL.Query().Get("n")
	if nStr == "" {
		return 0, apperrors.NewValidationError("n", "Missing 'n' parameter", nStr)
	}
	n, err := strconv.ParseInt(nStr, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("n", "Invalid 'n' parameter: must be an integer", nStr)
	}
	return n, nil
}

// writeParamError answers 400 with the validation message.
func (s *Server) writeParamError(w http.ResponseWriter, err error) {
	var ve apperrors.ValidationError
	if errors.As(err, &ve) {
		s.writeErrorResponse(w, http.StatusBadRequest, ve.Message)
		return
	}
	s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
