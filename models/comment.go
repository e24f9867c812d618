// File: models/comment.go
package models

import "time"

// ----------------------- comment model -----------------------

// Comment is a short reply on an activity.
type Comment struct {
	ID          string    `json:"id"`
	ActivityID  string    `json:"activity_id"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewComment is the insert payload for a comment.
type NewComment struct {
	ActivityID  string `json:"activity_id"`
	CommentText string `json:"comment_text"`
}
