package server

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/quiz-solver/internal/types"
)

// maxRequestBody caps the trigger payload size.
const maxRequestBody = 1 << 20

// internalErrorMessage is the only failure detail exposed to callers.
const internalErrorMessage = "Internal error during quiz solving"

// handleQuiz validates the trigger request and runs a session to completion.
func (s *Server) handleQuiz(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeTrigger(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id := req.Identity()
	if err := s.checkSecret(id.Secret); err != nil {
		log.Printf("[SERVER] Rejected trigger for %s: %v", id.Email, err)
		s.errorResponse(w, HTTPStatus(err), "Forbidden")
		return
	}

	deadline := time.Now().Add(s.sessionDeadline)
	startURL := req.StartURL()
	summary, err := s.runner.Run(r.Context(), id, startURL, deadline)
	if err != nil {
		log.Printf("[SERVER] Session for %s failed: %v", startURL, err)
		s.errorResponse(w, http.StatusInternalServerError, internalErrorMessage)
		return
	}

	log.Printf("[SERVER] Session %s finished: %d iterations (%s)", summary.ID, summary.Iterations, summary.EndReason)
	s.jsonResponse(w, http.StatusOK, types.StatusResponse{Status: "ok"})
}

// decodeTrigger parses and validates the request body.
func (s *Server) decodeTrigger(w http.ResponseWriter, r *http.Request) (*types.TriggerRequest, error) {
	var req types.TriggerRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ErrValidation{Field: typeErr.Field, Message: "must be a string"}
		}
		return nil, &ErrValidation{Message: "Invalid JSON"}
	}

	if err := req.Validate(); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, &ErrValidation{Field: strings.ToLower(fieldErrs[0].Field()), Message: "is required and must be a string"}
		}
		return nil, &ErrValidation{Message: err.Error()}
	}

	return &req, nil
}

// checkSecret compares the supplied secret with the configured one in constant time.
func (s *Server) checkSecret(secret string) error {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return &ErrForbidden{}
	}
	return nil
}
