// Package services implements the club hub's stores and workflows.
// file: services/errors.go
package services

import (
	"errors"

	"english-hub/gateway"
)

// Validation errors are raised before any gateway call.
var (
	ErrUnknownClub      = errors.New("unknown club")
	ErrNoImage          = errors.New("no image selected")
	ErrImageTooLarge    = errors.New("image exceeds the 5MB limit")
	ErrNotAnImage       = errors.New("file is not an image")
	ErrTitleRequired    = errors.New("post title is required")
	ErrEmptyComment     = errors.New("comment is empty")
	ErrCommentTooLong   = errors.New("comment exceeds 200 characters")
	ErrUploadClosed     = errors.New("upload panel is closed")
	ErrUploadInProgress = errors.New("upload already in progress")
)

// ErrEncoding wraps failures reading or encoding a selected file.
var ErrEncoding = errors.New("could not read image")

// IsValidation reports whether err was raised by client-side validation.
func IsValidation(err error) bool {
	for _, v := range []error{ErrUnknownClub, ErrNoImage, ErrImageTooLarge, ErrNotAnImage,
		ErrTitleRequired, ErrEmptyComment, ErrCommentTooLong} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// UserMessage turns an error into the text shown inline next to a form.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrImageTooLarge):
		return "File size must be less than 5MB"
	case errors.Is(err, ErrNotAnImage):
		return "Please choose an image file (PNG, JPG, GIF)"
	case errors.Is(err, ErrNoImage):
		return "Please select an image"
	case errors.Is(err, ErrTitleRequired):
		return "Please enter a post title"
	case errors.Is(err, ErrUnknownClub):
		return "Club not found"
	case errors.Is(err, ErrEmptyComment):
		return "Comment cannot be empty"
	case errors.Is(err, ErrCommentTooLong):
		return "Comments are limited to 200 characters"
	case errors.Is(err, ErrUploadInProgress):
		return "Posting..."
	case errors.Is(err, gateway.ErrGateway):
		return "Upload failed: " + err.Error()
	default:
		return "Upload failed"
	}
}
