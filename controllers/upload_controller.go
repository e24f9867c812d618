// file: controllers/upload_controller.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"english-hub/logger"
	"english-hub/models"
	"english-hub/services"
)

// requests past this are cut off before the form is parsed; smaller oversize files
// are rejected from their declared size
const maxUploadBody = 4 * models.MaxImageBytes

// UploadController drives the viewer's post-picture panel.
type UploadController struct{}

// NewUploadController creates an UploadController.
func NewUploadController() *UploadController {
	return &UploadController{}
}

func redirectToUpload(c *gin.Context, clubID string) {
	c.Redirect(http.StatusSeeOther, clubPath(clubID)+"#upload")
}

// OpenUpload shows the panel.
func (uc *UploadController) OpenUpload(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	ws.Upload(club.ID).Open()
	redirectToUpload(c, club.ID)
}

// SelectFile reads the "image" form file into the draft.
func (uc *UploadController) SelectFile(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	w := ws.Upload(club.ID)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	fh, err := c.FormFile("image")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			w.RejectFile(services.ErrImageTooLarge)
		} else {
			w.RejectFile(services.ErrNoImage)
		}
		logger.Warn.Printf("SelectFile: no usable file for club %s: %v", club.ID, err)
		redirectToUpload(c, club.ID)
		return
	}

	f, err := fh.Open()
	if err != nil {
		w.RejectFile(services.ErrEncoding)
		redirectToUpload(c, club.ID)
		return
	}
	defer f.Close()

	img, err := services.ReadImage(f, fh.Filename, fh.Header.Get("Content-Type"), fh.Size)
	if err != nil {
		w.RejectFile(err)
		redirectToUpload(c, club.ID)
		return
	}
	if err := w.SelectFile(img); err != nil {
		logger.Debug.Printf("SelectFile: %q rejected: %v", fh.Filename, err)
	}
	redirectToUpload(c, club.ID)
}

// ChangeImage discards the preview.
func (uc *UploadController) ChangeImage(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	ws.Upload(club.ID).ChangeImage()
	redirectToUpload(c, club.ID)
}

// SubmitActivity stores the title and description fields and posts the draft.
func (uc *UploadController) SubmitActivity(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	w := ws.Upload(club.ID)
	w.SetTitle(c.PostForm("title"))
	w.SetDescription(c.PostForm("description"))

	ctx, cancel := detachedContext(c)
	defer cancel()
	if err := w.Submit(ctx); err != nil {
		logger.Warn.Printf("SubmitActivity: club %s: %v", club.ID, err)
		redirectToUpload(c, club.ID)
		return
	}
	c.Redirect(http.StatusSeeOther, clubPath(club.ID))
}

// CancelUpload closes the panel and drops the draft.
func (uc *UploadController) CancelUpload(c *gin.Context) {
	club, ok := requireClub(c)
	if !ok {
		return
	}
	ws, ok := requireWorkspace(c)
	if !ok {
		return
	}
	ws.Upload(club.ID).Close()
	c.Redirect(http.StatusSeeOther, clubPath(club.ID))
}
