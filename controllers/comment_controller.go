// file: controllers/comment_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"english-hub/logger"
	"english-hub/services"
)

// CommentController expands threads and posts comments. Forms carry the club id so
// the viewer lands back on the page they came from.
type CommentController struct{}

// NewCommentController creates a CommentController.
func NewCommentController() *CommentController {
	return &CommentController{}
}

func backToActivity(c *gin.Context, activityID string) {
	c.Redirect(http.StatusSeeOther, clubPath(c.PostForm("clubId"))+"#activity-"+activityID)
}

// ToggleComments expands or collapses a thread, loading it on first expansion.
func (cc *CommentController) ToggleComments(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	activityID := c.Param("activityID")

	if _, err := ws.Threads.Toggle(c.Request.Context(), activityID); err != nil {
		addFlash(c, commentFlashKey, "Could not load comments. Please try again.")
	}
	backToActivity(c, activityID)
}

// PostComment adds a comment. A blank comment is ignored.
func (cc *CommentController) PostComment(c *gin.Context) {
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	activityID := c.Param("activityID")

	ctx, cancel := detachedContext(c)
	defer cancel()
	err := ws.Threads.Post(ctx, activityID, c.PostForm("comment"))
	switch {
	case err == nil, errors.Is(err, services.ErrEmptyComment):
	case services.IsValidation(err):
		addFlash(c, commentFlashKey, services.UserMessage(err))
	default:
		logger.Error.Printf("PostComment: activity %s: %v", activityID, err)
		addFlash(c, commentFlashKey, "Could not post comment. Please try again.")
	}
	backToActivity(c, activityID)
}
