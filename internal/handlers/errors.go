package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"tinymath/internal/service"
	"tinymath/internal/validation"
)

// errorResponse is the JSON error body: a human-readable message only,
// internal detail stays in the logs
type errorResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondWithError writes a JSON error response and logs the underlying error
func respondWithError(w http.ResponseWriter, status int, userMsg string, err error) {
	if err != nil {
		log.Printf("%s: %v", userMsg, err)
	}
	respondJSON(w, status, errorResponse{Message: userMsg})
}

// respondServiceError maps service-layer failures onto the HTTP error
// contract: 400 for validation, credential, code and conflict failures,
// 404 for missing entities, 500 for email delivery and store failures.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr validation.ValidationError
	if errors.As(err, &validationErr) {
		respondWithError(w, http.StatusBadRequest, validationErr.Message, nil)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		respondWithError(w, http.StatusBadRequest, "User already exists", nil)
	case errors.Is(err, service.ErrUserNotFound):
		respondWithError(w, http.StatusNotFound, "User not found", nil)
	case errors.Is(err, service.ErrChildNotFound):
		respondWithError(w, http.StatusNotFound, "Child not found", nil)
	case errors.Is(err, service.ErrAlreadyVerified):
		respondWithError(w, http.StatusBadRequest, "User already verified", nil)
	case errors.Is(err, service.ErrInvalidCode):
		respondWithError(w, http.StatusBadRequest, "Invalid or expired code", nil)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondWithError(w, http.StatusBadRequest, "Invalid credentials", nil)
	case errors.Is(err, service.ErrNotVerified):
		respondWithError(w, http.StatusBadRequest, "Account not verified", nil)
	case errors.Is(err, service.ErrVerificationResent):
		respondWithError(w, http.StatusBadRequest, "Account not verified. A new code has been sent to your email.", nil)
	case errors.Is(err, service.ErrEmailDelivery):
		respondWithError(w, http.StatusInternalServerError, "Failed to send email", err)
	default:
		respondWithError(w, http.StatusInternalServerError, "Server error", err)
	}
}
