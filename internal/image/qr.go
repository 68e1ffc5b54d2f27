package imagepkg

import (
	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text.
// size is clamped to a sane range; zero selects DefaultQRSize.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	switch {
	case size == 0:
		size = DefaultQRSize
	case size < minQRSize:
		size = minQRSize
	case size > maxQRSize:
		size = maxQRSize
	}
	return qrcode.Encode(text, qrcode.Medium, size)
}
