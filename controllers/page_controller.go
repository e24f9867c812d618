// file: controllers/page_controller.go
package controllers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"english-hub/logger"
	"english-hub/models"
	"english-hub/services"
)

// PageController renders the home and club pages.
type PageController struct {
	ApplicationURL string
	WebsocketURL   string
	QREncoder      services.QRCodeEncoder // nil uses go-qrcode
}

// NewPageController creates a PageController.
func NewPageController(appURL, wsURL string) *PageController {
	logger.Debug.Printf("NewPageController: ApplicationURL=%s, WebsocketURL=%s", appURL, wsURL)
	return &PageController{ApplicationURL: appURL, WebsocketURL: wsURL}
}

// activityView is one feed entry plus its comment thread.
type activityView struct {
	models.Activity
	Image    template.URL
	PostedOn string
	Thread   services.ThreadEntry
}

// uploadView is the compose panel.
type uploadView struct {
	services.UploadSnapshot
	PreviewURL template.URL
	Open       bool
	Composing  bool
	Submitting bool
}

// Health reports liveness.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Home lists the clubs.
func (pc *PageController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Clubs": models.Clubs(),
	})
}

// ClubPage loads the club's feed and renders it with the viewer's threads and upload panel.
func (pc *PageController) ClubPage(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}

	// A failed load is logged by the store; the prior list is shown as is.
	activities, _ := ws.Feed.Load(c.Request.Context(), club.ID)

	views := make([]activityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, activityView{
			Activity: a,
			Image:    safeImageURL(a.ImageURL),
			PostedOn: a.CreatedAt.Local().Format("Jan 2, 2006 3:04 PM"),
			Thread:   ws.Threads.Thread(a.ID),
		})
	}

	description, err := services.RenderMarkdown(club.Description)
	if err != nil {
		logger.Warn.Printf("ClubPage: markdown render failed for %s: %v", club.ID, err)
		description = template.HTML(template.HTMLEscapeString(club.Description)) // #nosec G203 -- escaped
	}

	snap := ws.Upload(club.ID).Snapshot()
	c.HTML(http.StatusOK, "club.html", gin.H{
		"Club":          club,
		"Description":   description,
		"Activities":    views,
		"CommentErrors": takeFlashes(c, commentFlashKey),
		"Upload": uploadView{
			UploadSnapshot: snap,
			PreviewURL:     safeImageURL(snap.Preview),
			Open:           snap.State != services.UploadClosed,
			Composing:      snap.State == services.UploadComposing,
			Submitting:     snap.State == services.UploadSubmitting,
		},
		"MaxTitle":       models.MaxTitleLength,
		"MaxDescription": models.MaxDescriptionLength,
		"MaxComment":     models.MaxCommentLength,
		"WebsocketURL":   pc.WebsocketURL,
	})
}

// ClubQRCode serves a PNG QR code linking to the club page.
func (pc *PageController) ClubQRCode(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}

	url := strings.TrimRight(pc.ApplicationURL, "/") + clubPath(club.ID)
	qrBytes, err := services.GenerateClubQRCode(url, 300, pc.QREncoder)
	if err != nil {
		logger.Error.Printf("ClubQRCode: Error generating QR code: %v", err)
		c.String(http.StatusInternalServerError, "QR generation failed")
		return
	}

	c.Header("Content-Disposition", "inline; filename=\""+club.ID+".png\"")
	c.Data(http.StatusOK, "image/png", qrBytes)
}
