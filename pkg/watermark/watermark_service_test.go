package watermark

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
)

func samplePDF(t *testing.T, pages int) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		pdf.AddPage()
		pdf.Cell(40, 10, "Recibo de sueldo")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("failed to build sample pdf: %v", err)
	}
	return buf.Bytes()
}

func TestStampKeepsPageCount(t *testing.T) {
	raw := samplePDF(t, 3)

	stamped, err := Stamp(raw)
	assert.Nil(t, err)
	assert.True(t, bytes.HasPrefix(stamped, []byte("%PDF")))
	assert.NotEqual(t, raw, stamped)

	pages, err := api.PageCount(bytes.NewReader(stamped), nil)
	assert.Nil(t, err)
	assert.Equal(t, 3, pages)
}

func TestStampRejectsGarbage(t *testing.T) {
	_, err := Stamp([]byte("not a pdf"))
	assert.NotNil(t, err)
}

func TestStampForViewing(t *testing.T) {
	raw := samplePDF(t, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	svc := NewWatermarkService()
	stamped, err := svc.StampForViewing(context.Background(), srv.URL)
	assert.Nil(t, err)
	assert.True(t, bytes.HasPrefix(stamped, []byte("%PDF")))
	// transient copy only: larger than the original because of the stamps
	assert.NotEqual(t, raw, stamped)
}

func TestStampForViewingFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewWatermarkService()
	_, err := svc.StampForViewing(context.Background(), srv.URL)
	assert.NotNil(t, err)
}
