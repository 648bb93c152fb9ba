package handlers

import (
	"tinymath/internal/models"
)

// userResponse is the sanitized account representation: no password hash,
// no pending code or expiry, ever
type userResponse struct {
	ID           int64  `json:"id"`
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Gender       string `json:"gender"`
	Verified     bool   `json:"isVerified"`
	Phone        string `json:"phone,omitempty"`
	Nationality  string `json:"nationality,omitempty"`
	Region       string `json:"region,omitempty"`
	DateOfBirth  string `json:"dateOfBirth,omitempty"`
	CurrentLevel int    `json:"currentLevel"`
	Stars        int    `json:"stars"`
}

// newUserResponse strips secrets from an account for transport
func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		Gender:       u.Gender,
		Verified:     u.Verified,
		Phone:        u.Phone,
		Nationality:  u.Nationality,
		Region:       u.Region,
		DateOfBirth:  u.DateOfBirth,
		CurrentLevel: u.CurrentLevel,
		Stars:        u.Stars,
	}
}

// childResponse is the child profile representation
type childResponse struct {
	ID           int64  `json:"id"`
	ParentID     int64  `json:"parentId"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	CurrentLevel int    `json:"currentLevel"`
	Stars        int    `json:"stars"`
	HighScore    int    `json:"highScore"`
}

func newChildResponse(c *models.Child) childResponse {
	return childResponse{
		ID:           c.ID,
		ParentID:     c.ParentID,
		Name:         c.Name,
		Age:          c.Age,
		CurrentLevel: c.CurrentLevel,
		Stars:        c.Stars,
		HighScore:    c.HighScore,
	}
}

func newChildResponses(children []models.Child) []childResponse {
	responses := make([]childResponse, 0, len(children))
	for i := range children {
		responses = append(responses, newChildResponse(&children[i]))
	}
	return responses
}
