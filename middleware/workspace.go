// File: middleware/workspace.go
package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"english-hub/logger"
	"english-hub/workspace"
)

const (
	// WorkspaceSessionKey holds the viewer's workspace id in the cookie session.
	WorkspaceSessionKey = "workspaceID"
	workspaceContextKey = "workspace"
)

// Workspace attaches the viewer's workspace to the request, issuing a new id on first visit.
func Workspace(reg *workspace.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := sessions.Default(c)
		id, _ := s.Get(WorkspaceSessionKey).(string)
		if id == "" {
			id = uuid.NewString()
			s.Set(WorkspaceSessionKey, id)
			if err := s.Save(); err != nil {
				logger.Error.Printf("Workspace: failed to save workspace id: %v", err)
				c.String(http.StatusInternalServerError, "Internal error, please try again.")
				c.Abort()
				return
			}
			logger.Debug.Printf("Workspace: issued workspace=%s", id)
		}

		c.Set(workspaceContextKey, reg.Acquire(id))
		c.Next()
	}
}

// CurrentWorkspace returns the workspace attached by Workspace, or nil.
func CurrentWorkspace(c *gin.Context) *workspace.Workspace {
	v, ok := c.Get(workspaceContextKey)
	if !ok {
		return nil
	}
	w, _ := v.(*workspace.Workspace)
	return w
}
