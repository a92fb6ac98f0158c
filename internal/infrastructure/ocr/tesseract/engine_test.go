package tesseract

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/manifoldfrs/doc-classifier/internal/core/domain"
	"github.com/manifoldfrs/doc-classifier/internal/infrastructure/resilience"
)

type fakeRunner struct {
	stdout   string
	errs     []error // popped per call; nil entry means success
	calls    int
	lastArgs []string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, []byte, error) {
	f.calls++
	f.lastArgs = args
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return nil, []byte("boom"), err
		}
	}
	return []byte(f.stdout), nil, nil
}

func testEngine(runner Runner) *Engine {
	exec := resilience.NewExecutor(resilience.Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     time.Millisecond,
		Multiplier:     2,
		BreakerEnabled: false,
	}, nil)
	e := NewEngine(Config{TempDir: ""}, exec, nil)
	e.runner = runner
	return e
}

func imageDoc() domain.Document {
	return domain.Document{
		ID:       "img-1",
		Filename: "scan.png",
		MimeType: "image/png",
		Size:     4,
		Content:  []byte{0x89, 0x50, 0x4e, 0x47},
	}
}

func TestRecognizeReturnsTrimmedText(t *testing.T) {
	runner := &fakeRunner{stdout: "  invoice total due 42\n"}
	e := testEngine(runner)

	text, err := e.Recognize(context.Background(), imageDoc())
	if err != nil {
		t.Fatal(err)
	}
	if text != "invoice total due 42" {
		t.Fatalf("got %q", text)
	}
	if runner.lastArgs[1] != "stdout" {
		t.Fatalf("expected stdout output target, got args %v", runner.lastArgs)
	}
	if !strings.HasSuffix(runner.lastArgs[0], ".png") {
		t.Fatalf("expected scratch file with image extension, got %q", runner.lastArgs[0])
	}
}

func TestRecognizeRetriesTransientExecFailure(t *testing.T) {
	runner := &fakeRunner{
		stdout: "bank statement",
		errs:   []error{errors.New("exit status 1"), nil},
	}
	e := testEngine(runner)

	text, err := e.Recognize(context.Background(), imageDoc())
	if err != nil {
		t.Fatal(err)
	}
	if text != "bank statement" {
		t.Fatalf("got %q", text)
	}
	if runner.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", runner.calls)
	}
}

func TestRecognizeGivesUpAfterMaxAttempts(t *testing.T) {
	failure := errors.New("exit status 1")
	runner := &fakeRunner{errs: []error{failure, failure, failure}}
	e := testEngine(runner)

	_, err := e.Recognize(context.Background(), imageDoc())
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if runner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", runner.calls)
	}
}
