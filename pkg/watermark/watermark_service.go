package watermark

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const warningText = "DOCUMENTO NO VÁLIDO"

// stampSpots is the fixed constellation drawn on every page: six instances
// of the warning, each anchored to a page-relative position with an offset.
var stampSpots = []struct {
	pos string
	dx  int
	dy  int
}{
	{"tl", 25, -20},
	{"tr", -25, -20},
	{"l", 20, 0},
	{"r", -20, 0},
	{"bl", 25, 20},
	{"br", -25, 20},
}

type (
	WatermarkService interface {
		StampForViewing(ctx context.Context, pdfURL string) ([]byte, error)
	}

	watermarkService struct {
		httpClient *http.Client
	}
)

func NewWatermarkService() WatermarkService {
	return &watermarkService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// StampForViewing fetches the stored PDF and returns a transient copy with
// the warning stamped across every page. The stored file is never modified;
// nothing is written back to storage.
func (s *watermarkService) StampForViewing(ctx context.Context, pdfURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pdf: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return Stamp(raw)
}

// Stamp applies the warning constellation to every page of the given PDF.
func Stamp(raw []byte) ([]byte, error) {
	conf := model.NewDefaultConfiguration()

	current := raw
	for _, spot := range stampSpots {
		desc := fmt.Sprintf(
			"fontname:Helvetica-Bold, points:22, scale:0.5 abs, rot:45, op:0.3, fillcolor:#C00000, pos:%s, off:%d %d",
			spot.pos, spot.dx, spot.dy,
		)

		wm, err := api.TextWatermark(warningText, desc, true, false, types.POINTS)
		if err != nil {
			return nil, fmt.Errorf("build watermark: %w", err)
		}

		var out bytes.Buffer
		if err := api.AddWatermarks(bytes.NewReader(current), &out, nil, wm, conf); err != nil {
			return nil, fmt.Errorf("stamp watermark: %w", err)
		}
		current = out.Bytes()
	}

	return current, nil
}
