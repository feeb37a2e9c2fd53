package utils

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// TicketQRURL derives the display URL for a ticket's QR code. Purely a
// convenience link, nothing cryptographic.
func TicketQRURL(ticketId uint) string {
	return fmt.Sprintf("https://api.qrserver.com/v1/create-qr-code/?data=%d", ticketId)
}

// GenerateQRCode renders content as a PNG of size x size pixels.
func GenerateQRCode(content string, size int) ([]byte, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, qr.Image(size)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
