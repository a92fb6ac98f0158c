package tesseract

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Runner lets tests stub the external tesseract invocation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		slog.Warn("exec_failed",
			"cmd", name,
			"args", strings.Join(args, " "),
			"duration_ms", time.Since(start).Milliseconds(),
			"stderr", truncate(errb.String(), 4<<10),
			"error", err,
		)
	}
	return out.Bytes(), errb.Bytes(), err
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
