package domain

import "time"

// AnnouncementAllRoles targets every user regardless of role.
const AnnouncementAllRoles = "All"

type Announcement struct {
	AnnouncementID string    `json:"id" dynamodbav:"announcement_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Message        string    `json:"message" dynamodbav:"message"`
	Role           string    `json:"role" dynamodbav:"role"` // target role or "All"
	CreatedBy      string    `json:"createdBy,omitempty" dynamodbav:"createdBy"`
	CreatedAt      time.Time `json:"createdAt" dynamodbav:"created_at"`
}

type AnnouncementInput struct {
	Title   string `json:"title" validate:"required"`
	Message string `json:"message" validate:"required"`
	Role    string `json:"role"`
}
