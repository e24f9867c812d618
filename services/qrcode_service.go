// services/qrcode_service.go
package services

import (
	"errors"

	"github.com/skip2/go-qrcode"
)

// QRCodeEncoder matches qrcode.Encode so tests can substitute it.
type QRCodeEncoder func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)

// GenerateClubQRCode renders a PNG QR code pointing at a club page.
func GenerateClubQRCode(clubURL string, size int, encode QRCodeEncoder) ([]byte, error) {
	if size <= 0 {
		return nil, errors.New("invalid size: must be positive")
	}
	if clubURL == "" {
		return nil, errors.New("missing club URL")
	}
	if encode == nil {
		encode = qrcode.Encode
	}

	png, err := encode(clubURL, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	return png, nil
}
