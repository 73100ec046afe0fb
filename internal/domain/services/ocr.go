package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"cyberguard-lab/pkg/logger"
)

// TextExtractor pulls text out of an uploaded evidence image. The
// extracted text joins the narrative as risk engine input.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename string, image io.Reader) (string, error)
}

// ExtractionResult is the per-file outcome of an OCR pass
type ExtractionResult struct {
	Filename string `json:"filename"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
	TextLen  int    `json:"text_length,omitempty"`
}

var supportedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tiff": true,
	".webp": true,
}

// UploadedImage pairs a filename with its content
type UploadedImage struct {
	Filename string
	Content  io.Reader
}

// ExtractFromImages runs the extractor over every uploaded image,
// skipping unsupported formats. OCR failures are recorded per file and
// never fail the batch.
func ExtractFromImages(ctx context.Context, extractor TextExtractor, images []UploadedImage, log *logger.Logger) (string, []ExtractionResult) {
	var combined strings.Builder
	results := make([]ExtractionResult, 0, len(images))

	for _, img := range images {
		if img.Filename == "" {
			continue
		}

		ext := strings.ToLower(filepath.Ext(img.Filename))
		if !supportedImageExtensions[ext] {
			results = append(results, ExtractionResult{
				Filename: img.Filename,
				Status:   "skipped",
				Reason:   "unsupported format",
			})
			continue
		}

		text, err := extractor.ExtractText(ctx, img.Filename, img.Content)
		if err != nil {
			log.Error().Err(err).Str("filename", img.Filename).Msg("ocr extraction failed")
			results = append(results, ExtractionResult{
				Filename: img.Filename,
				Status:   "error",
				Reason:   err.Error(),
			})
			continue
		}

		text = strings.TrimSpace(text)
		results = append(results, ExtractionResult{
			Filename: img.Filename,
			Status:   "success",
			TextLen:  len(text),
		})
		if text != "" {
			if combined.Len() > 0 {
				combined.WriteString(" ")
			}
			combined.WriteString(text)
		}
	}

	return combined.String(), results
}

// TesseractExtractor shells out to the tesseract binary. The image is
// written to a temp file because tesseract reads from a path, and
// "stdout" makes it print the recognized text instead of writing a file.
type TesseractExtractor struct {
	cmd    string
	logger *logger.Logger
}

// NewTesseractExtractor builds an extractor using the given command,
// falling back to "tesseract" on PATH
func NewTesseractExtractor(cmd string, log *logger.Logger) *TesseractExtractor {
	if cmd == "" {
		cmd = "tesseract"
	}
	return &TesseractExtractor{
		cmd:    cmd,
		logger: log.WithComponent("ocr"),
	}
}

func (t *TesseractExtractor) ExtractText(ctx context.Context, filename string, image io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "evidence-*"+filepath.Ext(filename))
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.cmd, tmp.Name(), "stdout")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w (%s)", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}

// NoopExtractor is used when OCR is disabled in configuration
type NoopExtractor struct{}

func (NoopExtractor) ExtractText(context.Context, string, io.Reader) (string, error) {
	return "", nil
}
