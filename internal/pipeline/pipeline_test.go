package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestPipelineErrorFormatting(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PipelineError{Stage: "fetch", Message: "fetch news", Err: cause}

	if got := err.Error(); got != "[fetch] fetch news: connection refused" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("cause not preserved through Unwrap")
	}

	bare := &PipelineError{Stage: "assembly", Message: "no segments"}
	if got := bare.Error(); got != "[assembly] no segments" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRunFailsWithoutPersonas(t *testing.T) {
	dir := t.TempDir()
	err := Run(context.Background(), Options{
		PersonasPath: filepath.Join(dir, "missing.json"),
		OutputDir:    filepath.Join(dir, "out"),
		Minutes:      5,
		Logger:       slog.New(slog.DiscardHandler),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *PipelineError
	if !errors.As(err, &perr) || perr.Stage != "setup" {
		t.Errorf("expected setup-stage PipelineError, got %v", err)
	}
}

func TestServiceLabels(t *testing.T) {
	if got := modelLabel("claude"); got != "Anthropic Claude" {
		t.Errorf("modelLabel(claude) = %q", got)
	}
	if got := modelLabel("openai"); !strings.Contains(got, "OpenAI") {
		t.Errorf("modelLabel(openai) = %q", got)
	}
	if got := ttsLabel("google"); got != "Google Cloud TTS" {
		t.Errorf("ttsLabel(google) = %q", got)
	}
	if got := ttsLabel("cartesia"); got != "Cartesia TTS" {
		t.Errorf("ttsLabel(cartesia) = %q", got)
	}
}
