// Package controllers holds the gin handlers of the web surface.
// file: controllers/helpers.go
package controllers

import (
	"context"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"english-hub/logger"
	"english-hub/middleware"
	"english-hub/models"
	"english-hub/workspace"
)

const commentFlashKey = "comment"

// writeTimeout bounds inserts that outlive their request.
const writeTimeout = 30 * time.Second

// detachedContext keeps the request's values but not its cancellation, so a viewer
// leaving the page never aborts an insert.
func detachedContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request.Context()), writeTimeout)
}

// clubPath is the page URL of a club; unknown ids fall back to home.
func clubPath(clubID string) string {
	if _, ok := models.LookupClub(clubID); !ok {
		return "/"
	}
	return "/clubs/" + clubID
}

// safeImageURL lets html/template emit data:image URIs and http(s) links in src attributes.
func safeImageURL(u string) template.URL {
	switch {
	case strings.HasPrefix(u, "data:image/"),
		strings.HasPrefix(u, "https://"),
		strings.HasPrefix(u, "http://"):
		return template.URL(u) // #nosec G203 -- scheme checked above
	}
	return ""
}

// requireWorkspace fetches the viewer workspace or fails the request.
func requireWorkspace(c *gin.Context) (*workspace.Workspace, bool) {
	ws := middleware.CurrentWorkspace(c)
	if ws == nil {
		logger.Error.Printf("requireWorkspace: no workspace attached to %s", c.Request.URL.Path)
		c.String(http.StatusInternalServerError, "Internal error, please try again.")
		return nil, false
	}
	return ws, true
}

// requireClub resolves :clubID or renders the not-found page.
func requireClub(c *gin.Context) (models.Club, bool) {
	clubID := c.Param("clubID")
	club, ok := models.LookupClub(clubID)
	if !ok {
		logger.Warn.Printf("requireClub: unknown club %q", clubID)
		c.HTML(http.StatusNotFound, "not_found.html", gin.H{"ClubID": clubID})
		return models.Club{}, false
	}
	return club, true
}

func addFlash(c *gin.Context, key, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg, key)
	if err := s.Save(); err != nil {
		logger.Error.Printf("addFlash: failed to save session: %v", err)
	}
}

func takeFlashes(c *gin.Context, key string) []string {
	s := sessions.Default(c)
	raw := s.Flashes(key)
	if len(raw) == 0 {
		return nil
	}
	if err := s.Save(); err != nil {
		logger.Error.Printf("takeFlashes: failed to save session: %v", err)
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
