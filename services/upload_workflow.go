// file: services/upload_workflow.go
package services

import (
	"context"
	"strings"
	"sync"

	"english-hub/logger"
	"english-hub/models"
)

// UploadState is a step of the post-picture flow.
type UploadState int

const (
	UploadClosed UploadState = iota
	UploadSelecting
	UploadComposing
	UploadSubmitting
)

func (s UploadState) String() string {
	switch s {
	case UploadClosed:
		return "closed"
	case UploadSelecting:
		return "selecting"
	case UploadComposing:
		return "composing"
	case UploadSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// AssetSink receives a copy of each submitted image before the activity insert.
type AssetSink interface {
	UploadAsync(clubID string, img ImageFile)
}

// UploadOptions configures an UploadWorkflow.
type UploadOptions struct {
	RequireTitle bool
	Assets       AssetSink // optional
}

// UploadSnapshot is a read-only view of the workflow for rendering.
type UploadSnapshot struct {
	ClubID      string
	State       UploadState
	FileName    string
	Preview     string // data URI
	Title       string
	Description string
	Error       string
	CanSubmit   bool
}

// UploadWorkflow drives the post-picture panel of one club page.
type UploadWorkflow struct {
	clubID string
	feed   *FeedStore
	opts   UploadOptions

	mu          sync.Mutex
	state       UploadState
	file        ImageFile
	preview     string
	title       string
	description string
	errMsg      string
	// submitGen identifies the newest submit; older completions are ignored.
	submitGen uint64
}

// NewUploadWorkflow creates a closed workflow posting into feed for clubID.
func NewUploadWorkflow(clubID string, feed *FeedStore, opts UploadOptions) *UploadWorkflow {
	return &UploadWorkflow{clubID: clubID, feed: feed, opts: opts}
}

// ClubID is the club this workflow posts to.
func (w *UploadWorkflow) ClubID() string { return w.clubID }

// Open shows the panel, waiting for a file.
func (w *UploadWorkflow) Open() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == UploadClosed {
		w.state = UploadSelecting
		w.errMsg = ""
	}
}

// Close hides the panel and drops the draft. An in-flight submit is not cancelled.
func (w *UploadWorkflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *UploadWorkflow) resetLocked() {
	w.state = UploadClosed
	w.file = ImageFile{}
	w.preview = ""
	w.title = ""
	w.description = ""
	w.errMsg = ""
}

// SelectFile validates img and replaces any existing preview with it.
// A rejected file leaves the current state and preview untouched.
func (w *UploadWorkflow) SelectFile(img ImageFile) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != UploadSelecting && w.state != UploadComposing {
		return ErrUploadClosed
	}

	preview, err := EncodeDataURI(img)
	if err != nil {
		w.errMsg = UserMessage(err)
		return err
	}

	w.file = img
	w.preview = preview
	w.state = UploadComposing
	w.errMsg = ""
	return nil
}

// RejectFile shows err against the picker when a file was refused before it could be
// read. State and preview are unchanged.
func (w *UploadWorkflow) RejectFile(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != UploadSelecting && w.state != UploadComposing {
		return
	}
	w.errMsg = UserMessage(err)
}

// ChangeImage drops the preview and goes back to file selection.
func (w *UploadWorkflow) ChangeImage() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != UploadComposing {
		return
	}
	w.file = ImageFile{}
	w.preview = ""
	w.state = UploadSelecting
}

// SetTitle updates the draft title, clipped to the form limit.
func (w *UploadWorkflow) SetTitle(title string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.title = clipRunes(title, models.MaxTitleLength)
}

// SetDescription updates the draft description, clipped to the form limit.
func (w *UploadWorkflow) SetDescription(description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.description = clipRunes(description, models.MaxDescriptionLength)
}

// guardLocked explains why the draft cannot be submitted, or returns nil.
func (w *UploadWorkflow) guardLocked() error {
	switch {
	case w.state == UploadSubmitting:
		return ErrUploadInProgress
	case w.state == UploadClosed:
		return ErrUploadClosed
	case w.preview == "":
		return ErrNoImage
	case w.opts.RequireTitle && strings.TrimSpace(w.title) == "":
		return ErrTitleRequired
	}
	return nil
}

// CanSubmit reports whether the submit action is enabled.
func (w *UploadWorkflow) CanSubmit() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.guardLocked() == nil
}

// Submit posts the draft. Success closes the panel; failure returns to composing with
// the error shown inline.
func (w *UploadWorkflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if err := w.guardLocked(); err != nil {
		if err != ErrUploadInProgress && err != ErrUploadClosed {
			w.errMsg = UserMessage(err)
		}
		w.mu.Unlock()
		return err
	}
	w.state = UploadSubmitting
	w.errMsg = ""
	w.submitGen++
	gen := w.submitGen
	file, title, description := w.file, w.title, w.description
	w.mu.Unlock()

	if w.opts.Assets != nil {
		w.opts.Assets.UploadAsync(w.clubID, file)
	}

	err := w.feed.Submit(ctx, w.clubID, file, title, description)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != UploadSubmitting || w.submitGen != gen {
		// closed or superseded while in flight; nothing to show
		return err
	}
	if err != nil {
		logger.Warn.Printf("UploadWorkflow.Submit: post to club %s failed: %v", w.clubID, err)
		w.state = UploadComposing
		w.errMsg = UserMessage(err)
		return err
	}
	w.resetLocked()
	return nil
}

// Snapshot returns the current draft for rendering.
func (w *UploadWorkflow) Snapshot() UploadSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return UploadSnapshot{
		ClubID:      w.clubID,
		State:       w.state,
		FileName:    w.file.Name,
		Preview:     w.preview,
		Title:       w.title,
		Description: w.description,
		Error:       w.errMsg,
		CanSubmit:   w.guardLocked() == nil,
	}
}
