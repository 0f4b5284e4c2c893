package tts

import (
	"context"
	"errors"
	"testing"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/script"
)

func TestWithRetry(t *testing.T) {
	t.Run("non-retryable error returned immediately", func(t *testing.T) {
		fatal := errors.New("bad request")
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return fatal
		})
		if !errors.Is(err, fatal) {
			t.Errorf("got %v, want %v", err, fatal)
		}
		if calls != 1 {
			t.Errorf("fn called %d times, want 1", calls)
		}
	})

	t.Run("succeeds without retry", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return nil
		})
		if err != nil || calls != 1 {
			t.Errorf("err=%v calls=%d", err, calls)
		}
	})

	t.Run("retryable error exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(context.Background(), func() error {
			calls++
			return &RetryableError{StatusCode: 503, Body: "overloaded"}
		})
		var retryable *RetryableError
		if !errors.As(err, &retryable) {
			t.Fatalf("expected RetryableError, got %v", err)
		}
		if calls != defaultMaxAttempts {
			t.Errorf("fn called %d times, want %d", calls, defaultMaxAttempts)
		}
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := WithRetry(ctx, func() error {
			return &RetryableError{StatusCode: 503}
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	})
}

func TestMapVoices(t *testing.T) {
	hosts, err := script.NewHostPair([]script.Persona{
		{Name: "Ben", VoiceID: "persona-voice-ben"},
		{Name: "Jerry"},
	})
	if err != nil {
		t.Fatal(err)
	}
	p := NewCartesiaProvider()

	t.Run("persona voice id beats provider default", func(t *testing.T) {
		voices := MapVoices(hosts, "", "", p)
		if voices["Ben"].ID != "persona-voice-ben" {
			t.Errorf("Ben voice = %q", voices["Ben"].ID)
		}
		if voices["Jerry"].ID != cartesiaDefaultVoice2 {
			t.Errorf("Jerry should fall back to provider default, got %q", voices["Jerry"].ID)
		}
	})

	t.Run("cli override beats persona voice id", func(t *testing.T) {
		voices := MapVoices(hosts, "cli-voice", "", p)
		if voices["Ben"].ID != "cli-voice" {
			t.Errorf("Ben voice = %q", voices["Ben"].ID)
		}
	})
}

func TestNewProviderUnknown(t *testing.T) {
	if _, err := NewProvider("espeak"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestAvailableVoicesCoverBothHosts(t *testing.T) {
	for _, name := range []string{"cartesia", "elevenlabs", "google"} {
		voices, err := AvailableVoices(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		defaults := map[string]bool{}
		for _, v := range voices {
			if v.DefaultFor != "" {
				defaults[v.DefaultFor] = true
			}
		}
		if !defaults["Host 1"] || !defaults["Host 2"] {
			t.Errorf("%s catalog missing a default host voice: %v", name, defaults)
		}
	}
}
