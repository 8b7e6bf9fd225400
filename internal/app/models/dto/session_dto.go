package dto

import "github.com/etchegaray/integria-connect/internal/app/models"

// CreateSessionRequest adds one session to a course by hand, outside
// the bulk schedule generation path.
type CreateSessionRequest struct {
	SessionDate string `json:"sessionDate" binding:"required" example:"2025-03-03"`
	StartTime   string `json:"startTime" binding:"required" example:"10:00"`
	EndTime     string `json:"endTime" binding:"required" example:"12:00"`
	Location    string `json:"location,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

// UpdateSessionRequest partially updates a session. Nil fields are
// left untouched.
type UpdateSessionRequest struct {
	SessionDate *string `json:"sessionDate,omitempty" example:"2025-03-05"`
	StartTime   *string `json:"startTime,omitempty" example:"10:00"`
	EndTime     *string `json:"endTime,omitempty" example:"12:00"`
	Location    *string `json:"location,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	IsCancelled *bool   `json:"isCancelled,omitempty"`
}

// GenerateSessionsResponse reports the outcome of bulk generation.
type GenerateSessionsResponse struct {
	Generated int               `json:"generated"`
	Sessions  []*models.Session `json:"sessions"`
}
