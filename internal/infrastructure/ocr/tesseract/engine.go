// Package tesseract implements the OCR engine by shelling out to the
// tesseract binary. The invocation is the one out-of-process stage boundary
// in the pipeline, so it runs under the resilience executor: bounded retry
// with exponential backoff plus a circuit breaker that degrades fast when
// the binary is missing or consistently failing.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/resilience"
)

type Config struct {
	Binary   string // binary name or absolute path; empty means "tesseract"
	Language string // default "eng"
	PSM      int    // page segmentation mode; 6 suits uniform text blocks
	TempDir  string // scratch space for input images; empty uses os.TempDir
}

type Engine struct {
	cfg    Config
	runner Runner
	exec   *resilience.Executor
	logger *slog.Logger
}

func NewEngine(cfg Config, exec *resilience.Executor, logger *slog.Logger) *Engine {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PSM <= 0 {
		cfg.PSM = 6
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{cfg: cfg, runner: execRunner{}, exec: exec, logger: logger}
}

// Recognize writes the document content to a scratch file and runs
// tesseract over it, returning the recognized plain text.
func (e *Engine) Recognize(ctx context.Context, doc domain.Document) (string, error) {
	input, err := e.writeScratch(doc)
	if err != nil {
		return "", fmt.Errorf("stage ocr input: %w", err)
	}
	defer os.Remove(input)

	var text string
	runErr := e.exec.Do(ctx, "ocr_recognize", func(ctx context.Context) error {
		stdout, stderr, err := e.runner.Run(ctx, e.cfg.Binary,
			input, "stdout",
			"-l", e.cfg.Language,
			"--psm", fmt.Sprintf("%d", e.cfg.PSM),
		)
		if err != nil {
			return fmt.Errorf("tesseract: %w: %s", err, truncate(string(stderr), 512))
		}
		text = strings.TrimSpace(string(stdout))
		return nil
	}, classifyOCRError)
	if runErr != nil {
		if resilience.IsCircuitOpen(runErr) {
			return "", domain.WrapError(domain.ErrTemporary, "ocr recognize", runErr)
		}
		return "", runErr
	}
	return text, nil
}

func (e *Engine) writeScratch(doc domain.Document) (string, error) {
	ext := doc.Extension()
	if ext == "" {
		ext = "png"
	}
	f, err := os.CreateTemp(e.cfg.TempDir, "ocr-*."+ext)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(doc.Content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func classifyOCRError(err error) resilience.Classification {
	if err == nil {
		return resilience.Classification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.Classification{Retryable: false, RecordFailure: false}
	}
	// A missing binary will not appear between attempts; let the breaker
	// learn about it instead of retrying.
	if errors.Is(err, exec.ErrNotFound) {
		return resilience.Classification{Retryable: false, RecordFailure: true}
	}
	return resilience.Classification{Retryable: true, RecordFailure: true}
}
