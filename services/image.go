// file: services/image.go
package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"english-hub/models"
)

// ImageFile is a locally selected image.
type ImageFile struct {
	Name        string
	ContentType string // as reported by the picker; may be empty
	Data        []byte
}

// Size returns the file size in bytes.
func (f ImageFile) Size() int { return len(f.Data) }

// checkSize rejects empty and oversized files.
func checkSize(size int64) error {
	if size <= 0 {
		return ErrNoImage
	}
	if size > models.MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}

// ReadImage reads a picked file. A declared size over the limit is rejected without reading.
func ReadImage(r io.Reader, name, contentType string, declaredSize int64) (ImageFile, error) {
	if declaredSize > models.MaxImageBytes {
		return ImageFile{}, ErrImageTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(r, models.MaxImageBytes+1))
	if err != nil {
		return ImageFile{}, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if err := checkSize(int64(len(data))); err != nil {
		return ImageFile{}, err
	}
	return ImageFile{Name: name, ContentType: contentType, Data: data}, nil
}

// mediaType resolves the file's MIME type, sniffing the content when the picker gave none.
func mediaType(f ImageFile) string {
	ct := strings.TrimSpace(f.ContentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = mimetype.Detect(f.Data).String()
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return strings.ToLower(ct)
}

// EncodeDataURI validates f and encodes it as data:<mime>;base64,<payload>.
func EncodeDataURI(f ImageFile) (string, error) {
	if err := checkSize(int64(f.Size())); err != nil {
		return "", err
	}
	mt := mediaType(f)
	if !strings.HasPrefix(mt, "image/") {
		return "", ErrNotAnImage
	}
	return "data:" + mt + ";base64," + base64.StdEncoding.EncodeToString(f.Data), nil
}
