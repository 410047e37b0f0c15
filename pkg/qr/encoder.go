package qr

import (
	qrcode "github.com/skip2/go-qrcode"
)

// Encode renders data as a size x size pixel PNG QR image. Medium error
// recovery keeps the code scannable from a printed page.
func Encode(data string, size int) ([]byte, error) {
	return qrcode.Encode(data, qrcode.Medium, size)
}
