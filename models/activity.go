// File: models/activity.go
package models

import "time"

// Limits enforced by the compose form.
const (
	MaxImageBytes        = 5 * 1024 * 1024
	MaxTitleLength       = 100
	MaxDescriptionLength = 300
	MaxCommentLength     = 200
)

// ----------------------- activity model -----------------------

// Activity is a photo posted to a club's feed.
type Activity struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"club_id"`
	ImageURL    string    `json:"image_url"` // data URI or remote URL
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewActivity is the insert payload for an activity; id and created_at are assigned by the gateway.
type NewActivity struct {
	ClubID      string `json:"club_id"`
	ImageURL    string `json:"image_url"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description"`
}
