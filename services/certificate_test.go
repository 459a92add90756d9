package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

func TestNewCertificateNumber(t *testing.T) {
	studentID := uuid.New()
	number := NewCertificateNumber(studentID)

	assert.True(t, strings.HasPrefix(number, "STEM-"))
	assert.Contains(t, number, strings.ToUpper(studentID.String()[:8]))
}

func TestNewVerificationCode(t *testing.T) {
	code := NewVerificationCode()
	assert.Len(t, code, 32) // 16 bytes hex-encoded

	// Codes must not repeat.
	assert.NotEqual(t, code, NewVerificationCode())
}

func TestRenderCertificatePDF(t *testing.T) {
	cert := models.Certificate{
		CertificateNo:    "STEM-1700000000-ABCD1234",
		VerificationCode: "deadbeefdeadbeefdeadbeefdeadbeef",
		CertificateType:  models.CertStemOrg,
		IssuedAt:         time.Now(),
	}

	pdfBytes, err := RenderCertificatePDF(cert, "Asha Kumar", "Line Bot")
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)
	assert.True(t, strings.HasPrefix(string(pdfBytes), "%PDF"))
}
