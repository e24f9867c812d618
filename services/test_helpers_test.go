// file: services/test_helpers_test.go
package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngBytes returns a valid PNG padded with trailing zero bytes to at least size bytes.
func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	data := buf.Bytes()
	if len(data) < size {
		data = append(data, make([]byte, size-len(data))...)
	}
	return data
}

// pngFile wraps pngBytes as an ImageFile with the picker's content type.
func pngFile(t *testing.T, size int) ImageFile {
	return ImageFile{Name: "photo.png", ContentType: "image/png", Data: pngBytes(t, size)}
}
