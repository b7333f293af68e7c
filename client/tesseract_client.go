package client

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"log"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient wraps Tesseract OCR for recognizing receipt images. The
// backend is probed once on first use; if the probe fails the client stays
// unavailable for the rest of the process lifetime and recognition calls
// return an error the pipeline treats as "no text".
type TesseractClient struct {
	dataPath  string
	probeOnce sync.Once
	available bool
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// Available reports whether the OCR backend initialized successfully. The
// probe result is cached; a failed probe is never retried.
func (tc *TesseractClient) Available() bool {
	tc.probeOnce.Do(func() {
		client := gosseract.NewClient()
		defer client.Close()

		client.SetTessdataPrefix(tc.dataPath)
		if err := client.SetLanguage("eng"); err != nil {
			log.Printf("Tesseract unavailable, OCR disabled: %v", err)
			return
		}
		tc.available = true
	})
	return tc.available
}

// Recognize runs OCR over a single image and returns the recognized text as
// trimmed, non-empty line segments in recognition order.
func (tc *TesseractClient) Recognize(img image.Image) ([]string, error) {
	if !tc.Available() {
		return nil, fmt.Errorf("OCR backend unavailable")
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	client.SetTessdataPrefix(tc.dataPath)
	if err := client.SetLanguage("eng"); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text: %w", err)
	}

	var segments []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			segments = append(segments, line)
		}
	}
	return segments, nil
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
