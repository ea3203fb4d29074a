package services_test

import (
	"bytes"
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/models"
	"github.com/clinicpass/clinicpass-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestQRPublicURL(t *testing.T) {
	svc := services.NewQRService(nil, "https://app.clinicpass.example")
	qr := &models.QRCode{ShortCode: "K7XMP2RW"}
	assert.Equal(t, "https://app.clinicpass.example/f/K7XMP2RW", svc.PublicURL(qr))
}

func TestQRPNG(t *testing.T) {
	svc := services.NewQRService(nil, "https://app.clinicpass.example")
	qr := &models.QRCode{ShortCode: "K7XMP2RW"}

	png, err := svc.PNG(qr, 0) // zero size falls back to the default
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))

	large, err := svc.PNG(qr, 1024)
	require.NoError(t, err)
	assert.True(t, len(large) > 0)
}
