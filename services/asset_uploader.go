// file: services/asset_uploader.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"english-hub/logger"
)

// AssetUploader posts images to the hosted asset function.
type AssetUploader struct {
	url     string
	token   string
	client  *http.Client
	timeout time.Duration
}

// NewAssetUploader creates an uploader for the function at url, authorised with token.
func NewAssetUploader(url, token string) *AssetUploader {
	return &AssetUploader{
		url:     url,
		token:   token,
		client:  &http.Client{},
		timeout: 30 * time.Second,
	}
}

// Upload sends img as multipart form data (file, clubId).
func (u *AssetUploader) Upload(ctx context.Context, clubID string, img ImageFile) error {
	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, img.Name))
	header.Set("Content-Type", mediaType(img))
	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(img.Data); err != nil {
		return err
	}
	if err := form.WriteField("clubId", clubID); err != nil {
		return err
	}
	if err := form.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.url, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", form.FormDataContentType())
	if u.token != "" {
		req.Header.Set("Authorization", "Bearer "+u.token)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("asset function returned %s", resp.Status)
	}
	return nil
}

// UploadAsync fires Upload in the background and only logs the outcome.
func (u *AssetUploader) UploadAsync(clubID string, img ImageFile) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
		defer cancel()
		if err := u.Upload(ctx, clubID, img); err != nil {
			logger.Warn.Printf("AssetUploader.UploadAsync: upload of %q for club %s failed: %v", img.Name, clubID, err)
			return
		}
		logger.Debug.Printf("AssetUploader.UploadAsync: uploaded %q for club %s", img.Name, clubID)
	}()
}
