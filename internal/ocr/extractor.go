// Package ocr extracts text from question-attached images. The engine
// never sees images; extracted text is appended to the question string
// at the transport boundary.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Extractor turns image bytes into text.
type Extractor interface {
	Extract(ctx context.Context, image []byte) (string, error)
}

// Tesseract shells out to the tesseract binary. Keeping OCR as an
// external process avoids a cgo dependency and isolates crashes.
type Tesseract struct {
	bin    string
	logger *zap.Logger
}

// NewTesseract creates an extractor using the given tesseract binary.
func NewTesseract(bin string, logger *zap.Logger) *Tesseract {
	return &Tesseract{bin: bin, logger: logger}
}

// Extract writes the image to a temp file and runs tesseract over it.
func (t *Tesseract) Extract(ctx context.Context, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "askta-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(image); err != nil {
		return "", fmt.Errorf("write temp image: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.bin, tmp.Name(), "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.logger.Warn("tesseract failed",
			zap.Error(err),
			zap.String("stderr", strings.TrimSpace(stderr.String())),
		)
		return "", fmt.Errorf("run tesseract: %w", err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
