package handlers

import (
	"encoding/json"
	"net/http"

	"tinymath/internal/service"
)

// ChildHandler handles child profile HTTP requests
type ChildHandler struct {
	childService *service.ChildService
}

// NewChildHandler creates a new child handler
func NewChildHandler(childService *service.ChildService) *ChildHandler {
	return &ChildHandler{childService: childService}
}

type addChildRequest struct {
	ParentID int64  `json:"parentId"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
}

// AddChild creates a child profile; the starting level follows the age tier
func (h *ChildHandler) AddChild(w http.ResponseWriter, r *http.Request) {
	var req addChildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	child, err := h.childService.AddChild(req.ParentID, req.Name, req.Age)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newChildResponse(child))
}

// GetChildren lists the child profiles owned by a parent account
func (h *ChildHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	parentID, ok := parseID(r.PathValue("parentId"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid parent ID", nil)
		return
	}

	children, err := h.childService.GetChildren(parentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newChildResponses(children))
}

type updateChildProgressRequest struct {
	ID           int64 `json:"id"`
	Stars        int   `json:"stars"`
	CurrentLevel int   `json:"currentLevel"`

	// HighScore is optional-merge: absent leaves the stored value, an
	// explicit value (including 0) overwrites it
	HighScore *int `json:"highScore"`
}

// UpdateChildProgress sets a child's game progress
func (h *ChildHandler) UpdateChildProgress(w http.ResponseWriter, r *http.Request) {
	var req updateChildProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	child, err := h.childService.UpdateProgress(req.ID, req.Stars, req.CurrentLevel, req.HighScore)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newChildResponse(child))
}

// DeleteChild removes a child profile by its path identifier
func (h *ChildHandler) DeleteChild(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.PathValue("id"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid child ID", nil)
		return
	}

	if err := h.childService.DeleteChild(id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Child profile deleted successfully"})
}
