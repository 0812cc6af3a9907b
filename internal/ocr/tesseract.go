package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ProgressFunc receives fractional progress in [0,1]. It may be called zero or more times.
type ProgressFunc func(p float64)

// Extractor recognizes text in an image.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader, progress ProgressFunc) (string, error)
}

var ErrEngineMissing = errors.New("ocr: tesseract not found in PATH")

type TesseractOCR struct {
	Bin     string
	Lang    string
	Timeout time.Duration
}

func NewTesseractOCR(lang string, timeout time.Duration) *TesseractOCR {
	if lang == "" {
		lang = "jpn+eng"
	}
	return &TesseractOCR{Bin: "tesseract", Lang: lang, Timeout: timeout}
}

func (t *TesseractOCR) Extract(ctx context.Context, r io.Reader, progress ProgressFunc) (string, error) {
	report(progress, 0)
	f, err := os.CreateTemp("", "snap-*.img")
	if err != nil {
		return "", fmt.Errorf("ocr: temp file: %w", err)
	}
	defer func() { f.Close(); os.Remove(f.Name()) }()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("ocr: spool image: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("ocr: spool image: %w", err)
	}
	text, err := t.exec(ctx, f.Name())
	if err != nil {
		return "", err
	}
	report(progress, 1)
	return text, nil
}

func (t *TesseractOCR) exec(ctx context.Context, inPath string) (string, error) {
	bin := t.Bin
	if bin == "" {
		bin = "tesseract"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return "", ErrEngineMissing
	}
	args := []string{inPath, "stdout"}
	if t.Lang != "" {
		args = append(args, "-l", t.Lang)
	}
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("ocr: %w", ctx.Err())
		}
		return "", fmt.Errorf("ocr: tesseract: %s", strings.TrimSpace(stderr.String()))
	}
	return out.String(), nil
}

func report(fn ProgressFunc, p float64) {
	if fn != nil {
		fn(p)
	}
}
