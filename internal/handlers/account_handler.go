package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"tinymath/internal/service"
)

// AccountHandler handles profile and progress HTTP requests for parent accounts
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// GetUser returns the sanitized account for a path identifier. Malformed
// identifiers (including the literal "undefined"/"null" a broken client
// sends) are rejected before any query.
func (h *AccountHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	user, err := h.accountService.GetUser(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newUserResponse(user))
}

type updateProfileRequest struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
	Region      string `json:"region"`
	DateOfBirth string `json:"dateOfBirth"`
}

type updateProfileResponse struct {
	Message string       `json:"message"`
	User    userResponse `json:"user"`
}

// UpdateProfile updates the editable profile fields of an account
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.accountService.UpdateProfile(req.ID, req.FullName, req.Gender, req.Phone, req.Nationality, req.Region, req.DateOfBirth)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, updateProfileResponse{
		Message: "Profile updated successfully",
		User:    newUserResponse(user),
	})
}

type updateProgressRequest struct {
	ID           int64 `json:"id"`
	Stars        int   `json:"stars"`
	CurrentLevel int   `json:"currentLevel"`
}

// UpdateProgress sets the account's game progress
func (h *AccountHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	var req updateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.accountService.UpdateProgress(req.ID, req.Stars, req.CurrentLevel)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newUserResponse(user))
}

// parseID parses a positive numeric identifier from a path segment
func parseID(s string) (int64, bool) {
	if s == "" || s == "undefined" || s == "null" {
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
