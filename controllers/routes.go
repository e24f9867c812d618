// file: controllers/routes.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"english-hub/middleware"
	"english-hub/workspace"
)

// Routes bundles everything RegisterRoutes wires up.
type Routes struct {
	Auth     *AuthController
	Pages    *PageController
	Uploads  *UploadController
	Comments *CommentController
	Registry *workspace.Registry

	FeedUpdates http.HandlerFunc // optional websocket endpoint
	Metrics     http.Handler     // optional /metrics endpoint
}

// RegisterRoutes installs the public and protected routes. The engine must already
// carry the sessions middleware.
func RegisterRoutes(router *gin.Engine, r Routes) {
	router.GET("/health", Health)
	if r.Metrics != nil {
		router.GET("/metrics", gin.WrapH(r.Metrics))
	}

	// Public routes
	router.GET("/login", r.Auth.ShowLoginPage)
	router.POST("/login", r.Auth.PerformLogin)
	router.GET("/logout", r.Auth.Logout)

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired, middleware.Workspace(r.Registry))
	{
		protected.GET("/", r.Pages.Home)
		protected.GET("/clubs/:clubID", r.Pages.ClubPage)
		protected.GET("/clubs/:clubID/qrcode", r.Pages.ClubQRCode)

		protected.GET("/clubs/:clubID/upload", r.Uploads.OpenUpload)
		protected.POST("/clubs/:clubID/upload", r.Uploads.SubmitActivity)
		protected.POST("/clubs/:clubID/upload/file", r.Uploads.SelectFile)
		protected.POST("/clubs/:clubID/upload/change", r.Uploads.ChangeImage)
		protected.POST("/clubs/:clubID/upload/cancel", r.Uploads.CancelUpload)

		protected.POST("/activities/:activityID/comments/toggle", r.Comments.ToggleComments)
		protected.POST("/activities/:activityID/comments", r.Comments.PostComment)

		if r.FeedUpdates != nil {
			protected.GET("/feed-updates", gin.WrapF(r.FeedUpdates))
		}
	}
}
