package certificates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleRenderInput() RenderInput {
	return RenderInput{
		CertificateID:  "CERT-ABCDEF123456",
		TraineeName:    "Abebe Kebede",
		TrainingTitle:  "Emergency Obstetric Care",
		CompletionDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Venue:          "Adama Hospital",
		DurationLabel:  "5 days",
	}
}

func TestRenderProducesPDF(t *testing.T) {
	r := NewRenderer()

	doc, err := r.Render(sampleRenderInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
	assert.Contains(t, string(doc), "Certificate ID: CERT-ABCDEF123456")
	assert.Contains(t, string(doc), "Abebe Kebede")
	assert.Contains(t, string(doc), "Emergency Obstetric Care")
}

func TestRenderDeterministic(t *testing.T) {
	r := NewRenderer()
	in := sampleRenderInput()

	first, err := r.Render(in)
	assert.NoError(t, err)

	// Repeated renders guard against unsorted object emission and any
	// wall-clock metadata sneaking into the document.
	for i := 0; i < 20; i++ {
		next, err := r.Render(in)
		assert.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestRenderSurvivesQRFailure(t *testing.T) {
	r := NewRenderer()
	r.encodeQR = func(data string, size int) ([]byte, error) {
		return nil, errors.New("encoder down")
	}

	doc, err := r.Render(sampleRenderInput())

	assert.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Contains(t, string(doc), "Certificate ID: CERT-ABCDEF123456")
}

func TestRenderEmbedsQRWhenAvailable(t *testing.T) {
	r := NewRenderer()
	withQR, err := r.Render(sampleRenderInput())
	assert.NoError(t, err)

	r.encodeQR = func(data string, size int) ([]byte, error) {
		return nil, errors.New("encoder down")
	}
	withoutQR, err := r.Render(sampleRenderInput())
	assert.NoError(t, err)

	assert.Greater(t, len(withQR), len(withoutQR))
}
