package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTicketQRURL(t *testing.T) {
	assert.Equal(t, "https://api.qrserver.com/v1/create-qr-code/?data=42", TicketQRURL(42))
}

func TestTicketQRURL_Deterministic(t *testing.T) {
	assert.Equal(t, TicketQRURL(7), TicketQRURL(7))
	assert.NotEqual(t, TicketQRURL(7), TicketQRURL(8))
}

func TestGenerateQRCode(t *testing.T) {
	png, err := GenerateQRCode(TicketQRURL(1), 256)

	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
