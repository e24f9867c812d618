// file: services/comment_threads.go
package services

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"english-hub/gateway"
	"english-hub/logger"
	"english-hub/models"
	"english-hub/observability"
)

// ThreadEntry is the cached state of one activity's comment thread.
type ThreadEntry struct {
	Loaded   bool
	Expanded bool
	Comments []models.Comment
}

// Count is the number of cached comments.
func (e ThreadEntry) Count() int { return len(e.Comments) }

// CommentThreads caches comment threads, oldest comment first. A thread is fetched
// on its first expansion and kept for the lifetime of the store.
type CommentThreads struct {
	gw gateway.Gateway

	mu      sync.Mutex
	threads map[string]*ThreadEntry
}

// NewCommentThreads creates an empty thread cache.
func NewCommentThreads(gw gateway.Gateway) *CommentThreads {
	return &CommentThreads{
		gw:      gw,
		threads: make(map[string]*ThreadEntry),
	}
}

// entry returns the entry for activityID, creating it collapsed. Caller holds mu.
func (t *CommentThreads) entry(activityID string) *ThreadEntry {
	e, ok := t.threads[activityID]
	if !ok {
		e = &ThreadEntry{}
		t.threads[activityID] = e
	}
	return e
}

// Thread returns a copy of the entry for activityID.
func (t *CommentThreads) Thread(activityID string) ThreadEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.entry(activityID)
	return ThreadEntry{
		Loaded:   e.Loaded,
		Expanded: e.Expanded,
		Comments: append([]models.Comment(nil), e.Comments...),
	}
}

// Toggle expands or collapses a thread. Expanding a thread that was never loaded fetches it.
func (t *CommentThreads) Toggle(ctx context.Context, activityID string) (ThreadEntry, error) {
	t.mu.Lock()
	e := t.entry(activityID)
	e.Expanded = !e.Expanded
	needsLoad := e.Expanded && !e.Loaded
	t.mu.Unlock()

	var err error
	if needsLoad {
		_, err = t.Load(ctx, activityID)
	}
	return t.Thread(activityID), err
}

// Load fetches a thread and replaces its cached comments. On failure the prior
// comments are kept and the thread stays unloaded so the next expansion retries.
func (t *CommentThreads) Load(ctx context.Context, activityID string) ([]models.Comment, error) {
	comments, err := t.gw.ListComments(ctx, activityID)
	if err != nil {
		logger.Error.Printf("CommentThreads.Load: failed to load comments for activity %s: %v", activityID, err)
		observability.RecordGatewayFailure("ListComments")
		return t.Thread(activityID).Comments, err
	}

	t.mu.Lock()
	e := t.entry(activityID)
	e.Comments = comments
	e.Loaded = true
	t.mu.Unlock()

	return append([]models.Comment(nil), comments...), nil
}

// Post inserts a trimmed comment and reloads the thread. Blank text is a no-op.
func (t *CommentThreads) Post(ctx context.Context, activityID, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyComment
	}
	if utf8.RuneCountInString(text) > models.MaxCommentLength {
		return ErrCommentTooLong
	}

	row, err := t.gw.InsertComment(ctx, models.NewComment{ActivityID: activityID, CommentText: text})
	if err != nil {
		logger.Error.Printf("CommentThreads.Post: failed to post comment on activity %s: %v", activityID, err)
		observability.RecordGatewayFailure("InsertComment")
		return err
	}
	logger.Info.Printf("CommentThreads.Post: comment %s posted on activity %s", row.ID, activityID)
	observability.RecordCommentPosted()

	_, _ = t.Load(ctx, activityID)
	return nil
}
