package services

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/Lottie128/stem-mentor-platform-sub000/models"
)

// NewCertificateNumber derives a human-readable certificate number from the
// issue timestamp and a fragment of the student id.
func NewCertificateNumber(studentID uuid.UUID) string {
	return fmt.Sprintf("STEM-%d-%s", time.Now().Unix(), strings.ToUpper(studentID.String()[:8]))
}

// NewVerificationCode returns 16 random bytes hex-encoded.
func NewVerificationCode() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the process is in serious trouble anyway
		panic(err)
	}
	return hex.EncodeToString(b)
}

// RenderCertificatePDF draws a landscape A4 certificate for download.
func RenderCertificatePDF(cert models.Certificate, studentName, projectTitle string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFillColor(245, 247, 250)
	pdf.Rect(0, 0, 297, 210, "F")
	pdf.SetDrawColor(30, 64, 175)
	pdf.SetLineWidth(1.5)
	pdf.Rect(10, 10, 277, 190, "D")

	pdf.SetFont("Helvetica", "B", 30)
	pdf.SetTextColor(30, 64, 175)
	pdf.SetY(40)
	pdf.CellFormat(0, 14, "Certificate of Completion", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(10)
	pdf.CellFormat(0, 8, "This certificate is proudly presented to", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(4)
	pdf.CellFormat(0, 12, studentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 14)
	pdf.SetTextColor(60, 60, 60)
	pdf.Ln(4)
	pdf.CellFormat(0, 8, "for successfully completing the project", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 20, 20)
	pdf.Ln(2)
	pdf.CellFormat(0, 10, projectTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetY(160)
	pdf.CellFormat(0, 6, fmt.Sprintf("Certificate No: %s", cert.CertificateNo), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issued on: %s", cert.IssuedAt.Format("02 Jan 2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Verify with code: %s", cert.VerificationCode), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
