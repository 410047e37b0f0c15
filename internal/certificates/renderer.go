package certificates

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/jung-kurt/gofpdf"

	"mnch-training-tracker/certificates-backend/pkg/qr"
)

// RenderInput is everything the certificate layout needs. Values are the
// point-in-time copies captured at issuance, not live references.
type RenderInput struct {
	CertificateID  string
	TraineeName    string
	TrainingTitle  string
	CompletionDate time.Time
	Venue          string
	DurationLabel  string
}

// qrPayload is embedded in the verification code so a scanner can confirm
// the certificate offline, without a lookup call.
type qrPayload struct {
	CertificateID  string `json:"certificate_id"`
	TraineeName    string `json:"trainee_name"`
	TrainingTitle  string `json:"training_title"`
	CompletionDate string `json:"completion_date"`
}

// pdfEpoch pins the document creation date so identical inputs produce
// identical bytes.
var pdfEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const (
	qrImageX     = 80.0
	qrImageY     = 200.0
	qrImageWidth = 50.0
	qrPixels     = 256
	dateLayout   = "2006-01-02"
)

// Renderer composes the fixed single-page certificate document. It touches
// no clock, network or store: output depends only on the input.
type Renderer struct {
	encodeQR func(data string, size int) ([]byte, error)
}

func NewRenderer() *Renderer {
	return &Renderer{encodeQR: qr.Encode}
}

// Render produces the certificate PDF. The verification code is best effort:
// if encoding fails the document is still returned, with the textual
// certificate ID as the fallback proof. Any other composition failure is
// fatal and reported as ErrRenderingFailed.
func (r *Renderer) Render(in RenderInput) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(pdfEpoch)
	pdf.SetModificationDate(pdfEpoch)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 24)
	pdf.CellFormat(0, 20, "CERTIFICATE OF COMPLETION", "", 1, "C", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 10, "This is to certify that", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 20)
	pdf.CellFormat(0, 10, in.TraineeName, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 16)
	pdf.CellFormat(0, 10, "has successfully completed the training", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, in.TrainingTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Completed on: %s", in.CompletionDate.Format(dateLayout)), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Venue: %s", in.Venue), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Duration: %s", in.DurationLabel), "", 1, "C", false, 0, "")
	pdf.Ln(15)

	pdf.CellFormat(0, 10, fmt.Sprintf("Certificate ID: %s", in.CertificateID), "", 1, "C", false, 0, "")

	if png, err := r.verificationCode(in); err != nil {
		log.Printf("certificates: verification code skipped for %s: %v", in.CertificateID, err)
	} else {
		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		name := "qr-" + in.CertificateID
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, qrImageX, qrImageY, qrImageWidth, 0, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRenderingFailed, err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) verificationCode(in RenderInput) ([]byte, error) {
	payload, err := json.Marshal(qrPayload{
		CertificateID:  in.CertificateID,
		TraineeName:    in.TraineeName,
		TrainingTitle:  in.TrainingTitle,
		CompletionDate: in.CompletionDate.Format(dateLayout),
	})
	if err != nil {
		return nil, err
	}
	return r.encodeQR(string(payload), qrPixels)
}
